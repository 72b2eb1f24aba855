package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// errCommandFailed signals a failed invocation whose result was already printed
var errCommandFailed = errors.New("command failed")

var (
	configPath string
	devMode    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "editorshell",
	Short: "Workspace file service for the editor shell",
	Long: `editorshell serves the workspace file commands of the desktop editor shell:
directory listing, content reads and writes, file and directory creation,
deletion, path inspection and gated shell execution.

Commands are reachable over HTTP, over a WebSocket invoke channel, or
in-process through the invoke subcommand.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file overlaying environment settings")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode (colored logs, debug level)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd, invokeCmd, commandsCmd)
}

// loadConfig reads env and file settings, then applies global flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dev") {
		cfg.Logging.Development = devMode
		if devMode && logLevel == "" {
			cfg.Logging.Level = "debug"
		}
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}
