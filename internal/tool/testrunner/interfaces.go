package testrunner

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/tool/shell"
)

// shellRunner executes one argv in the workspace.
type shellRunner interface {
	Run(ctx context.Context, req shell.ShellRequest) (*shell.ShellResponse, error)
}
