package executor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrDisabled is returned when command execution is switched off
	ErrDisabled = errors.New("command execution is disabled")
	// ErrNotAllowed is returned when a command is outside the allow-list
	ErrNotAllowed = errors.New("command not allowed")
	// ErrEmptyCommand is returned for a blank command line
	ErrEmptyCommand = errors.New("command is empty")
)

// DefaultTimeout bounds a command when the policy sets none
const DefaultTimeout = 60 * time.Second

// DefaultShell interprets command lines
const DefaultShell = "sh"

// Policy decides which command lines may run
type Policy struct {
	Enabled bool
	// Allow holds doublestar patterns matched against the first word of the
	// command line. Empty allows any command.
	Allow   []string
	Timeout time.Duration
	Shell   string
	// BreakerThreshold consecutive spawn failures open the shell circuit for
	// BreakerCooldown. Zero values use the resilience defaults.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// Validate checks the allow-list patterns
func (p Policy) Validate() error {
	for _, pattern := range p.Allow {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid allow pattern %q", pattern)
		}
	}
	return nil
}

// Check reports whether command may run under the policy
func (p Policy) Check(command string) error {
	if !p.Enabled {
		return ErrDisabled
	}

	program := Program(command)
	if program == "" {
		return ErrEmptyCommand
	}
	if len(p.Allow) == 0 {
		return nil
	}

	for _, pattern := range p.Allow {
		if ok, _ := doublestar.Match(pattern, program); ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotAllowed, program)
}

func (p Policy) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p Policy) shell() string {
	if p.Shell == "" {
		return DefaultShell
	}
	return p.Shell
}

// Program returns the first word of a command line
func Program(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
