package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the known commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range table.Commands() {
			fmt.Fprintf(out, "%-12s %s\n", c.Label(), strings.TrimSuffix(string(c.Wire()), "\r"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
