package command

import (
	"context"

	"github.com/GriffinCanCode/EditorShell/backend/internal/executor"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/types"
	"github.com/GriffinCanCode/EditorShell/backend/internal/workspace"
)

// Command names understood by the frontend
const (
	ListTree        = "list_tree"
	ReadContent     = "read_content"
	WriteContent    = "write_content"
	CreateFile      = "create_file"
	CreateDirectory = "create_directory"
	DeletePath      = "delete_path"
	InspectPath     = "inspect_path"
	ExecuteCommand  = "execute_command"
)

type handlerFunc func(ctx context.Context, params Params) (any, error)

type funcCommand struct {
	def types.CommandDefinition
	run handlerFunc
}

func (c *funcCommand) Definition() types.CommandDefinition { return c.def }

func (c *funcCommand) Execute(ctx context.Context, params Params) (any, error) {
	return c.run(ctx, params)
}

// New wraps a function as a Command
func New(def types.CommandDefinition, run func(ctx context.Context, params Params) (any, error)) Command {
	return &funcCommand{def: def, run: run}
}

var pathParam = types.Parameter{
	Name:        "path",
	Type:        "string",
	Description: "Absolute or working-directory relative path",
	Required:    true,
}

// Classification reports the extension tables read_content applies
func Classification() types.Classification {
	return types.Classification{
		Binary:    workspace.BinaryExtensions(),
		Languages: workspace.LanguageTable(),
	}
}

// RegisterWorkspace registers the file commands backed by ws
func RegisterWorkspace(r *Registry, ws *workspace.Service) error {
	commands := []Command{
		New(types.CommandDefinition{
			Name:        ListTree,
			Description: "Recursively list visible entries below a directory",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "array of {name, path, entry_type}",
			ErrorShape:  types.ErrorShapeMessage,
		}, func(ctx context.Context, p Params) (any, error) {
			root, err := p.Path()
			if err != nil {
				return nil, err
			}
			entries, err := ws.ListTree(ctx, root)
			if err != nil {
				return nil, err
			}
			if r.metrics != nil {
				r.metrics.ObserveTreeSize(len(entries))
			}
			return entries, nil
		}),

		New(types.CommandDefinition{
			Name:        ReadContent,
			Description: "Read a file as text with a language tag, or as base64 when binary",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "{content, language}",
			ErrorShape:  types.ErrorShapeMessage,
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			content, err := ws.ReadContent(path)
			if err != nil {
				return nil, err
			}
			if r.metrics != nil {
				r.metrics.AddBytesRead(len(content.Payload))
			}
			return content, nil
		}),

		New(types.CommandDefinition{
			Name:        WriteContent,
			Description: "Replace a file's contents, creating it if missing",
			Parameters: []types.Parameter{pathParam, {
				Name:        "content",
				Type:        "string",
				Description: "Full new contents",
				Required:    true,
			}},
			ErrorShape: types.ErrorShapeCoded,
			ErrorCode:  string(workspace.CodeWrite),
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			content, err := p.String("content")
			if err != nil {
				return nil, err
			}
			if err := ws.Write(path, content); err != nil {
				return nil, err
			}
			if r.metrics != nil {
				r.metrics.AddBytesWritten(len(content))
			}
			return nil, nil
		}),

		New(types.CommandDefinition{
			Name:        CreateFile,
			Description: "Create an empty file, truncating an existing one",
			Parameters:  []types.Parameter{pathParam},
			ErrorShape:  types.ErrorShapeCoded,
			ErrorCode:   string(workspace.CodeCreate),
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			return nil, ws.CreateFile(path)
		}),

		New(types.CommandDefinition{
			Name:        CreateDirectory,
			Description: "Create a directory and any missing parents",
			Parameters:  []types.Parameter{pathParam},
			ErrorShape:  types.ErrorShapeCoded,
			ErrorCode:   string(workspace.CodeCreateDir),
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			return nil, ws.CreateDirectory(path)
		}),

		New(types.CommandDefinition{
			Name:        DeletePath,
			Description: "Delete a file, or a directory with everything below it",
			Parameters:  []types.Parameter{pathParam},
			ErrorShape:  types.ErrorShapeCoded,
			ErrorCode:   string(workspace.CodeDelete),
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			return nil, ws.Delete(path)
		}),

		New(types.CommandDefinition{
			Name:        InspectPath,
			Description: "Describe a path: size, kind, MIME type, language and charset",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "path info object",
			ErrorShape:  types.ErrorShapeMessage,
		}, func(_ context.Context, p Params) (any, error) {
			path, err := p.Path()
			if err != nil {
				return nil, err
			}
			return ws.Inspect(path)
		}),
	}

	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// RegisterExecutor registers execute_command backed by runner
func RegisterExecutor(r *Registry, runner executor.Runner) error {
	return r.Register(New(types.CommandDefinition{
		Name:        ExecuteCommand,
		Description: "Run a shell command line and return its stdout",
		Parameters: []types.Parameter{{
			Name:        "command",
			Type:        "string",
			Description: "Command line passed to the shell",
			Required:    true,
		}},
		Returns:    "stdout as string",
		ErrorShape: types.ErrorShapeMessage,
	}, func(ctx context.Context, p Params) (any, error) {
		line, err := p.NonEmpty("command")
		if err != nil {
			return nil, err
		}
		return runner.Run(ctx, line)
	}))
}
