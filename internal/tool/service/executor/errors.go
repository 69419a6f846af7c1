package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a command exceeds its timeout.
	ErrTimeout         = errors.New("command timeout")
	ErrEmptyCommand    = errors.New("command cannot be empty")
	ErrTimeoutRequired = errors.New("command timeout must be positive")
)

// CommandError represents a command that could not be run.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
