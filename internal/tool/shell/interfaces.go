package shell

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/tool/service/executor"
)

// envFileReader defines the minimal filesystem interface needed for reading environment files.
type envFileReader interface {
	ReadFile(path string) ([]byte, error)
}

// pathResolver resolves workspace-relative paths to absolute ones.
type pathResolver interface {
	Abs(path string) (string, error)
}

// commandExecutor runs one argv to completion.
type commandExecutor interface {
	Run(ctx context.Context, cmd executor.Command) (*executor.Result, error)
}
