package orchestrator

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/tool/directory"
	"github.com/Cyclone1070/codeagent/internal/tool/file"
	"github.com/Cyclone1070/codeagent/internal/tool/git"
	"github.com/Cyclone1070/codeagent/internal/tool/service/executor"
	"github.com/Cyclone1070/codeagent/internal/tool/service/path"
)

// classify maps an executor error onto the ErrorKind reported to the user.
func classify(err error) models.ErrorKind {
	if err == nil {
		return models.KindNone
	}

	var violation *PolicyViolationError
	var timeout interface{ Timeout() bool }
	var configuration interface{ Configuration() bool }

	switch {
	case errors.As(err, &violation):
		return models.KindPolicyViolation
	case errors.Is(err, git.ErrNoChanges):
		return models.KindNoChanges
	case errors.Is(err, file.ErrFileMissing),
		errors.Is(err, directory.ErrFileMissing),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, exec.ErrNotFound):
		return models.KindNotFound
	case errors.Is(err, file.ErrPermissionDenied),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, path.ErrOutsideWorkspace):
		return models.KindPermissionDenied
	case errors.Is(err, executor.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeout) && timeout.Timeout():
		return models.KindTimeout
	case errors.As(err, &configuration) && configuration.Configuration():
		return models.KindConfiguration
	default:
		return models.KindExecution
	}
}
