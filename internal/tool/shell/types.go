package shell

import (
	"time"

	"github.com/Cyclone1070/codeagent/internal/config"
)

// ShellRequest is one argv to execute at the workspace root.
type ShellRequest struct {
	Command        []string
	TimeoutSeconds int               // 0 means shell.timeout_seconds
	Env            map[string]string // overrides EnvFiles and the process environment
	EnvFiles       []string          // dotenv files, relative to the workspace root
}

// Validate validates the ShellRequest.
func (r ShellRequest) Validate(cfg *config.Config) error {
	if len(r.Command) == 0 || r.Command[0] == "" {
		return ErrCommandRequired
	}
	if r.TimeoutSeconds < 0 {
		return &NegativeTimeoutError{Value: r.TimeoutSeconds}
	}
	return nil
}

// timeout returns the effective timeout for the request.
func (r ShellRequest) timeout(cfg *config.Config) time.Duration {
	if r.TimeoutSeconds > 0 {
		return time.Duration(r.TimeoutSeconds) * time.Second
	}
	return time.Duration(cfg.Shell.TimeoutSeconds) * time.Second
}

// ShellResponse represents the result of a local command execution.
type ShellResponse struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
	Duration  time.Duration
}
