package testrunner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/tool/shell"
	"github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

// pytestNoTestsCollected is pytest's exit status when collection finds nothing.
const pytestNoTestsCollected = 5

// nonInteractiveEnv keeps watch-mode test runners and linters from waiting
// on a terminal.
var nonInteractiveEnv = map[string]string{"CI": "true"}

// TestRunner runs the project's test command through the shell tool.
type TestRunner struct {
	shell  shellRunner
	config *config.Config
}

// NewTestRunner creates a new TestRunner with injected dependencies.
func NewTestRunner(shell shellRunner, cfg *config.Config) *TestRunner {
	if shell == nil {
		panic("shell is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &TestRunner{shell: shell, config: cfg}
}

// Command returns the configured test command split into an argv. The
// loader fills tests.command from project detection, so an empty value
// here means the caller built the config by hand.
func (r *TestRunner) Command() ([]string, error) {
	raw := strings.TrimSpace(r.config.Tests.Command)
	if raw == "" {
		return nil, ErrNoTestCommand
	}
	return splitCommand(raw)
}

// Linters returns tests.linters split into argvs, in configured order.
func (r *TestRunner) Linters() ([][]string, error) {
	linters := make([][]string, 0, len(r.config.Tests.Linters))
	for _, raw := range r.config.Tests.Linters {
		argv, err := splitCommand(raw)
		if err != nil {
			return nil, err
		}
		linters = append(linters, argv)
	}
	return linters, nil
}

func splitCommand(raw string) ([]string, error) {
	argv, err := shellwords.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", raw, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// Run executes the test command argv and classifies the result by exit
// code. A timeout returns the partial result together with the shell's
// *TimeoutError.
func (r *TestRunner) Run(ctx context.Context, argv []string) (*TestResult, error) {
	return r.run(ctx, argv, true)
}

// Lint executes one linter argv. Any non-zero exit is a failure.
func (r *TestRunner) Lint(ctx context.Context, argv []string) (*TestResult, error) {
	return r.run(ctx, argv, false)
}

func (r *TestRunner) run(ctx context.Context, argv []string, tests bool) (*TestResult, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	resp, err := r.shell.Run(ctx, shell.ShellRequest{
		Command:        argv,
		TimeoutSeconds: r.config.Tests.TimeoutSeconds,
		Env:            nonInteractiveEnv,
		EnvFiles:       r.config.Shell.EnvFiles,
	})
	if resp == nil {
		return nil, err
	}

	result := &TestResult{
		Command:   argv,
		ExitCode:  resp.ExitCode,
		Stdout:    resp.Stdout,
		Stderr:    resp.Stderr,
		Truncated: resp.Truncated,
	}

	var timeoutErr *shell.TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		result.Status = StatusTimedOut
	case err != nil:
		return nil, err
	case resp.ExitCode == 0:
		result.Status = StatusPassed
	case tests && resp.ExitCode == pytestNoTestsCollected && isPytest(argv):
		result.Status = StatusNoTests
	default:
		result.Status = StatusFailed
	}

	logrus.WithFields(logrus.Fields{
		"argv":      argv,
		"exit_code": result.ExitCode,
		"status":    result.Status.String(),
	}).Debug("verification step finished")
	return result, err
}

// isPytest reports whether argv invokes pytest directly or as a module.
func isPytest(argv []string) bool {
	for _, arg := range argv {
		if filepath.Base(arg) == "pytest" {
			return true
		}
	}
	return false
}
