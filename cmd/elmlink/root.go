package main

import (
	"fmt"
	"os"
	"time"

	"github.com/chuanjin/elmlink/internal/config"
	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/chuanjin/elmlink/internal/logger"
	"github.com/chuanjin/elmlink/internal/script"
	"github.com/chuanjin/elmlink/internal/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	cfg     *config.Config
	envFile string

	flagPort    string
	flagBaud    int
	flagTimeout time.Duration
	flagReadCap int
	flagScripts string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "elmlink",
	Short:         "Talk to an ELM327 OBD-II adapter",
	Long:          `elmlink sends commands to an ELM327 adapter over a serial port or tcp:// address and decodes the replies.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var envFiles []string
		if envFile != "" {
			envFiles = append(envFiles, envFile)
		}

		c, err := config.Load(envFiles...)
		if err != nil {
			return err
		}
		applyFlags(cmd, c)
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = c

		return logger.Init(cfg.Debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("elmlink failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&envFile, "env-file", "", "env file to load instead of .env")
	f.StringVarP(&flagPort, "port", "p", "", "serial device or tcp://host:port (ELM_PORT)")
	f.IntVarP(&flagBaud, "baud", "b", 0, "baud rate (ELM_BAUD)")
	f.DurationVarP(&flagTimeout, "timeout", "t", 0, "read window per reply (ELM_READ_TIMEOUT)")
	f.IntVar(&flagReadCap, "read-cap", 0, "maximum reply size in bytes (ELM_READ_CAP)")
	f.StringVar(&flagScripts, "scripts", "", "directory of decoder scripts (ELM_SCRIPT_DIR)")
	f.BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging (ELM_DEBUG)")
}

// applyFlags overrides environment values with flags set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("port") {
		c.Port = flagPort
	}
	if f.Changed("baud") {
		c.Baud = flagBaud
	}
	if f.Changed("timeout") {
		c.ReadTimeout = flagTimeout
	}
	if f.Changed("read-cap") {
		c.ReadCap = flagReadCap
	}
	if f.Changed("scripts") {
		c.ScriptDir = flagScripts
	}
	if f.Changed("debug") {
		c.Debug = flagDebug
	}
}

// loadTable returns the built-in commands plus any scripted ones.
func loadTable() (*elm.Table, error) {
	cmds := []elm.Command{elm.EchoOff, elm.EngineRPM}
	if cfg.ScriptDir != "" {
		scripted, err := script.NewLoader(script.NewEngine()).Load(cfg.ScriptDir)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, scripted...)
	}
	return elm.NewTable(cmds...)
}

// openSession connects to the adapter and turns echo off.
func openSession() (*elm.Session, error) {
	conn, err := transport.Open(transport.Config{
		Port:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, &elm.TransportError{Op: "open", Err: err}
	}

	session, err := elm.Initialize(conn,
		elm.WithReadCap(cfg.ReadCap),
		elm.WithLogger(logger.Named("session")),
	)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("Set up ELM327 OBD-II connection", zap.String("port", cfg.Port))
	return session, nil
}
