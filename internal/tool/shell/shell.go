package shell

import (
	"context"
	"errors"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/tool/service/executor"
	"github.com/sirupsen/logrus"
)

// ShellTool executes commands on the local machine.
type ShellTool struct {
	envFileOps      envFileReader
	commandExecutor commandExecutor
	config          *config.Config
	pathResolver    pathResolver
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(
	envFileOps envFileReader,
	commandExecutor commandExecutor,
	cfg *config.Config,
	pathResolver pathResolver,
) *ShellTool {
	if envFileOps == nil {
		panic("envFileOps is required")
	}
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &ShellTool{
		envFileOps:      envFileOps,
		commandExecutor: commandExecutor,
		config:          cfg,
		pathResolver:    pathResolver,
	}
}

// Run executes req.Command as a discrete argv at the workspace root, with env
// file support and a mandatory timeout. A non-zero exit is reported in the
// response, not as an error.
// NOTE: This tool does NOT enforce policy - the caller is responsible for policy checks.
func (t *ShellTool) Run(ctx context.Context, req ShellRequest) (*ShellResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	rootAbs, err := t.pathResolver.Abs(".")
	if err != nil {
		return nil, err
	}

	fileVars := make([]map[string]string, 0, len(req.EnvFiles))
	for _, envFile := range req.EnvFiles {
		envFilePath, err := t.pathResolver.Abs(envFile)
		if err != nil {
			return nil, err
		}
		vars, err := loadEnvFile(t.envFileOps, envFilePath)
		if err != nil {
			return nil, err
		}
		fileVars = append(fileVars, vars)
	}

	timeout := req.timeout(t.config)
	result, execErr := t.commandExecutor.Run(ctx, executor.Command{
		Argv:    req.Command,
		Dir:     rootAbs,
		Env:     buildEnv(fileVars, req.Env),
		Timeout: timeout,
	})
	if result == nil {
		result = &executor.Result{ExitCode: -1}
	}

	resp := &ShellResponse{
		Stdout:    result.Stdout,
		Stderr:    result.Stderr,
		ExitCode:  result.ExitCode,
		Truncated: result.Truncated,
		Duration:  result.Duration,
	}

	if execErr != nil {
		if errors.Is(execErr, executor.ErrTimeout) {
			logrus.WithField("argv", req.Command).Warn("shell command timed out")
			return resp, &TimeoutError{Command: req.Command, Duration: timeout}
		}
		return resp, execErr
	}
	return resp, nil
}
