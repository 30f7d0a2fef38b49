package main

import (
	"fmt"

	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/chuanjin/elmlink/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var readCmd = &cobra.Command{
	Use:   "read [label...]",
	Short: "Run commands and report their values",
	Long:  `Opens the adapter, turns echo off and runs each labelled command in order. Without arguments the engine RPM is read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{elm.EngineRPM.Label()}
		}
		cmds := make([]elm.Command, 0, len(args))
		for _, label := range args {
			c, ok := table.Lookup(label)
			if !ok {
				return fmt.Errorf("unknown command %q, see 'elmlink list'", label)
			}
			cmds = append(cmds, c)
		}

		session, err := openSession()
		if err != nil {
			return err
		}
		defer func() {
			if err := session.Close(); err != nil {
				logger.Error("Failed to close connection", zap.Error(err))
			}
		}()

		return elm.RunAndReport(session, elm.LogReporter{Log: logger.Named("report")}, cmds...)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
