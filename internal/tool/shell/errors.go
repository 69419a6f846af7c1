package shell

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/codeagent/internal/tool/service/executor"
)

var ErrCommandRequired = errors.New("command cannot be empty")

// TimeoutError is returned when a shell command exceeds its timeout.
// The partial ShellResponse is returned alongside it.
type TimeoutError struct {
	Command  []string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("shell command %q timed out after %v", strings.Join(e.Command, " "), e.Duration)
}

func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Unwrap() error { return executor.ErrTimeout }

// EnvFileReadError is returned when reading an env file fails.
type EnvFileReadError struct {
	Path  string
	Cause error
}

func (e *EnvFileReadError) Error() string {
	return fmt.Sprintf("failed to read env file %s: %v", e.Path, e.Cause)
}

func (e *EnvFileReadError) Unwrap() error { return e.Cause }

func (e *EnvFileReadError) IOError() bool { return true }

// NegativeTimeoutError is returned when a timeout is negative.
type NegativeTimeoutError struct {
	Value int
}

func (e *NegativeTimeoutError) Error() string {
	return fmt.Sprintf("timeout_seconds cannot be negative: %d", e.Value)
}

func (e *NegativeTimeoutError) InvalidInput() bool { return true }
