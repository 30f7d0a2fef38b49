package main

import (
	"os"
	"os/signal"

	"github.com/chuanjin/elmlink/internal/logger"
	"github.com/chuanjin/elmlink/internal/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the command table over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		table, err := loadTable()
		if err != nil {
			return err
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

		server := mcp.NewServer(table, mcp.NewSerialRunner(session), version)
		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
