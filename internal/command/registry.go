package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/EditorShell/backend/internal/executor"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/types"
	"github.com/GriffinCanCode/EditorShell/backend/internal/workspace"
	"go.uber.org/zap"
)

// ErrUnknownCommand is returned for names that are not registered
var ErrUnknownCommand = errors.New("unknown command")

// Failure codes recorded in metrics for errors that carry no code of their own
const (
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInvalidParams  = "INVALID_PARAMS"
	CodeRead           = "READ_ERROR"
	CodeExecDenied     = "EXEC_DENIED"
	CodeExitStatus     = "EXIT_STATUS"
	CodeInternal       = "INTERNAL_ERROR"
)

// UnknownLabel is the metrics label shared by every unregistered name, so
// caller-supplied names never become series of their own
const UnknownLabel = "unknown"

// Command is a named operation
type Command interface {
	Definition() types.CommandDefinition
	Execute(ctx context.Context, params Params) (any, error)
}

// Options configures a Registry
type Options struct {
	Metrics *monitoring.Metrics
	Tracer  *tracing.Tracer
	Logger  *zap.Logger
}

// Registry manages command registration and dispatch
type Registry struct {
	commands sync.Map
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		logger:  logger.Named("command"),
	}
}

// Register adds a command. Names must be unique.
func (r *Registry) Register(cmd Command) error {
	name := cmd.Definition().Name
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, loaded := r.commands.LoadOrStore(name, cmd); loaded {
		return fmt.Errorf("command already registered: %s", name)
	}
	return nil
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	val, ok := r.commands.Load(name)
	if !ok {
		return nil, false
	}
	return val.(Command), true
}

// List returns all definitions sorted by name
func (r *Registry) List() []types.CommandDefinition {
	defs := []types.CommandDefinition{}
	r.commands.Range(func(_, value any) bool {
		defs = append(defs, value.(Command).Definition())
		return true
	})
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Execute runs the named command. Command failures are reported in the
// Result. The returned error is non-nil only when the name is unknown.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (*types.Result, error) {
	cmd, ok := r.Get(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		monitoring.NewTimer(r.metrics, UnknownLabel).Stop(CodeUnknownCommand)
		r.logger.Warn("unknown command", zap.String("command", name))
		return types.Failure(err.Error()), err
	}

	timer := monitoring.NewTimer(r.metrics, name)

	var span *tracing.Span
	if r.tracer != nil {
		span, ctx = r.tracer.StartSpan(ctx, "command "+name)
		span.SetTag("command", name)
	}

	data, err := r.run(ctx, cmd, params)

	var (
		result *types.Result
		code   string
	)
	if err != nil {
		result, code = failure(err)
	} else {
		result = types.Ok(data)
	}
	duration := timer.Stop(code)

	if span != nil {
		if err != nil {
			span.SetTag("code", code)
			span.SetError(err)
		}
		span.Finish()
		r.tracer.Submit(span)
	}

	if err != nil {
		r.logger.Warn("command failed",
			zap.String("command", name),
			zap.String("code", code),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		r.logger.Debug("command completed",
			zap.String("command", name),
			zap.Duration("duration", duration))
	}

	return result, nil
}

// run executes cmd, turning a panic into an error
func (r *Registry) run(ctx context.Context, cmd Command, params map[string]any) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("command panicked",
				zap.String("command", cmd.Definition().Name),
				zap.Any("panic", rec),
				zap.Stack("stack"))
			data, err = nil, fmt.Errorf("internal error: %v", rec)
		}
	}()

	if params == nil {
		params = Params{}
	}
	return cmd.Execute(ctx, Params(params))
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]any {
	shapes := make(map[string]int)
	total := 0
	r.commands.Range(func(_, value any) bool {
		total++
		shapes[string(value.(Command).Definition().ErrorShape)]++
		return true
	})
	return map[string]any{
		"total_commands": total,
		"error_shapes":   shapes,
	}
}

// failure maps an error onto its wire shape and a metrics code. Mutation
// errors keep their {message, code} object, everything else becomes a bare
// message.
func failure(err error) (*types.Result, string) {
	var opErr *workspace.OperationError
	if errors.As(err, &opErr) {
		return types.Fail(opErr), string(opErr.Code)
	}

	code := CodeInternal
	var (
		paramErr *ParamError
		readErr  *workspace.ReadError
		cmdErr   *executor.CommandError
	)
	switch {
	case errors.As(err, &paramErr):
		code = CodeInvalidParams
	case errors.As(err, &readErr):
		code = CodeRead
	case errors.Is(err, executor.ErrDisabled), errors.Is(err, executor.ErrNotAllowed), errors.Is(err, executor.ErrEmptyCommand):
		code = CodeExecDenied
	case errors.As(err, &cmdErr):
		code = CodeExitStatus
	}
	return types.Failure(err.Error()), code
}
