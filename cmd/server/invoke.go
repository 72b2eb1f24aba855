package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/EditorShell/backend/internal/server"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var (
	invokeParams []string
	invokeJSON   string
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command>",
	Short: "Run one command in-process and print the result",
	Long: `Run one command without starting a server and print its result as JSON.

Parameters are given as --param key=value (repeatable) or as a JSON object
with --params. The exit status is 1 when the command fails.`,
	Example: `  editorshell invoke list_tree --param path=.
  editorshell invoke write_content --params '{"path":"a.txt","content":"hi"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringArrayVarP(&invokeParams, "param", "p", nil, "Parameter as key=value (repeatable)")
	invokeCmd.Flags().StringVar(&invokeJSON, "params", "", "Parameters as a JSON object")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && !cfg.Logging.Development {
		cfg.Logging.Level = "warn"
	}

	params, err := parseParams(invokeJSON, invokeParams)
	if err != nil {
		return err
	}

	logger := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	defer logger.Close()

	registry, err := server.NewRegistry(cfg, command.Options{Logger: logger.ForCommand(args[0])})
	if err != nil {
		return err
	}

	result, _ := registry.Execute(cmd.Context(), args[0], params)

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))

	if !result.Success {
		return errCommandFailed
	}
	return nil
}

// parseParams merges a JSON object with key=value pairs, pairs winning
func parseParams(raw string, pairs []string) (map[string]any, error) {
	params := map[string]any{}
	if raw != "" {
		if err := sonic.UnmarshalString(raw, &params); err != nil {
			return nil, fmt.Errorf("invalid --params: %w", err)
		}
		if params == nil {
			params = map[string]any{}
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
