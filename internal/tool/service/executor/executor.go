package executor

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/sirupsen/logrus"
)

// Command is one subprocess invocation. Argv is passed to the OS as a
// discrete argument vector; no shell ever sees it.
type Command struct {
	Argv    []string
	Dir     string
	Env     []string // nil inherits the current environment
	Timeout time.Duration
}

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
	Duration  time.Duration
}

// OSCommandExecutor runs commands with os/exec.
type OSCommandExecutor struct {
	maxOutputBytes int
	grace          time.Duration
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{
		maxOutputBytes: int(cfg.Shell.MaxOutputBytes),
		grace:          time.Duration(cfg.Shell.GracefulShutdownMs) * time.Millisecond,
	}
}

// Run executes cmd and waits for it, bounded by cmd.Timeout.
//
// A command that runs and exits non-zero is not an error: the exit code is in
// the Result. Errors are reserved for commands that could not start
// (*CommandError), ran past their timeout (ErrTimeout, after an interrupt and
// a grace period before kill) or were cancelled through ctx. Signals go to
// the whole process group, so children the command spawned stop with it.
func (e *OSCommandExecutor) Run(ctx context.Context, cmd Command) (*Result, error) {
	if len(cmd.Argv) == 0 || cmd.Argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	if cmd.Timeout <= 0 {
		return nil, ErrTimeoutRequired
	}

	log := logrus.WithFields(logrus.Fields{"argv": cmd.Argv, "dir": cmd.Dir, "timeout": cmd.Timeout})

	stdout := newCollector(e.maxOutputBytes, binarySampleSize)
	stderr := newCollector(e.maxOutputBytes, binarySampleSize)

	c := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdin = nil
	c.Stdout = stdout
	c.Stderr = stderr
	startInGroup(c)
	// Bounds how long Wait blocks on output pipes held open by grandchildren.
	c.WaitDelay = e.grace

	start := time.Now()
	if err := c.Start(); err != nil {
		log.WithError(err).Debug("command failed to start")
		return nil, &CommandError{Cmd: cmd.Argv[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Wait()
	}()

	timer := time.NewTimer(cmd.Timeout)
	defer timer.Stop()

	var execErr error
	select {
	case execErr = <-done:
	case <-ctx.Done():
		_ = killGroup(c.Process)
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = interruptGroup(c.Process)
		grace := time.NewTimer(e.grace)
		select {
		case <-done:
		case <-grace.C:
			_ = killGroup(c.Process)
			<-done
		}
		grace.Stop()
		// Background jobs ignore SIGINT and outlive the shell that started them.
		_ = killGroup(c.Process)
		execErr = ErrTimeout
	}

	code := -1
	if c.ProcessState != nil && !errors.Is(execErr, ErrTimeout) {
		code = c.ProcessState.ExitCode()
	}

	result := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  code,
		Truncated: stdout.Truncated() || stderr.Truncated(),
		Duration:  time.Since(start),
	}
	log.WithFields(logrus.Fields{"exit_code": result.ExitCode, "duration": result.Duration}).Debug("command finished")

	var exitErr *exec.ExitError
	if execErr == nil || errors.As(execErr, &exitErr) {
		return result, nil
	}
	if errors.Is(execErr, exec.ErrWaitDelay) {
		return result, nil
	}
	return result, execErr
}
