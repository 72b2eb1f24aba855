package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/resilience"
	"go.uber.org/zap"
)

// Runner runs a command line and returns its output
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// CommandError reports a command that ran and exited non-zero. Its message
// is the command's stderr.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	return e.Stderr
}

const waitDelay = 500 * time.Millisecond

// ErrUnavailable is returned while repeated spawn failures keep the shell
// circuit open
var ErrUnavailable = errors.New("command execution temporarily unavailable")

// Executor runs command lines through a shell
type Executor struct {
	policy  Policy
	logger  *zap.Logger
	breaker *resilience.Breaker
}

// New creates an executor. The policy's allow-list is validated up front.
func New(policy Policy, logger *zap.Logger) (*Executor, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("executor")

	return &Executor{
		policy: policy,
		logger: logger,
		breaker: resilience.New(policy.shell(), resilience.Settings{
			Threshold: policy.BreakerThreshold,
			Cooldown:  policy.BreakerCooldown,
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("shell circuit changed state",
					zap.String("shell", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
			},
		}),
	}, nil
}

// Run executes command with "<shell> -c". On a zero exit it returns stdout.
// On a non-zero exit it returns a *CommandError carrying stderr. Any other
// failure (policy, spawn, timeout) is returned as is. Repeated spawn
// failures open a circuit and yield ErrUnavailable until it recovers.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	if err := e.policy.Check(command); err != nil {
		e.logger.Warn("command denied",
			zap.String("program", Program(command)),
			zap.Error(err))
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.policy.timeout())
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.policy.shell(), "-c", command)
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren may hold the output pipes open after the shell is killed
	cmd.WaitDelay = waitDelay

	e.logger.Debug("running command", zap.String("command", command))

	err := e.breaker.Do(cmd.Run, func(err error) bool {
		var exitErr *exec.ExitError
		return ctx.Err() == nil && !errors.As(err, &exitErr)
	})
	if errors.Is(err, resilience.ErrOpen) {
		return "", ErrUnavailable
	}
	if err == nil {
		return lossy(stdout.Bytes()), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		e.logger.Warn("command interrupted",
			zap.String("program", Program(command)),
			zap.Error(ctxErr))
		return "", ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.logger.Debug("command failed",
			zap.String("program", Program(command)),
			zap.Int("exit_code", exitErr.ExitCode()))
		return "", &CommandError{
			Command:  command,
			Stderr:   lossy(stderr.Bytes()),
			ExitCode: exitErr.ExitCode(),
		}
	}

	e.logger.Warn("command failed to start",
		zap.String("program", Program(command)),
		zap.Error(err))
	return "", err
}

func lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
