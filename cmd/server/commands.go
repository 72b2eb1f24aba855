package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/server"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var commandsJSON bool

type commandListing struct {
	Commands       []types.CommandDefinition `json:"commands"`
	Classification types.Classification      `json:"classification"`
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the available commands",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Print definitions and extension tables as JSON")
}

func runCommands(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry, err := server.NewRegistry(cfg, command.Options{})
	if err != nil {
		return err
	}
	defs := registry.List()

	if commandsJSON {
		out, err := sonic.ConfigStd.MarshalIndent(commandListing{
			Commands:       defs,
			Classification: command.Classification(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARAMS\tERRORS\tDESCRIPTION")
	for _, def := range defs {
		names := make([]string, 0, len(def.Parameters))
		for _, p := range def.Parameters {
			names = append(names, p.Name)
		}
		shape := string(def.ErrorShape)
		if def.ErrorCode != "" {
			shape = def.ErrorCode
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, strings.Join(names, ","), shape, def.Description)
	}
	return w.Flush()
}
