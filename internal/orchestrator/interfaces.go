package orchestrator

import (
	"context"
	"iter"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/tool/file"
	"github.com/Cyclone1070/codeagent/internal/tool/git"
	"github.com/Cyclone1070/codeagent/internal/tool/shell"
	"github.com/Cyclone1070/codeagent/internal/tool/testrunner"
)

type fileReader interface {
	Run(ctx context.Context, req *file.ReadFileRequest) (*file.ReadFileResponse, error)
}

type fileWriter interface {
	Run(ctx context.Context, req *file.WriteFileRequest) (*file.WriteFileResponse, error)
}

type fileLister interface {
	Walk(dir string) (iter.Seq2[string, error], error)
}

type shellRunner interface {
	Run(ctx context.Context, req shell.ShellRequest) (*shell.ShellResponse, error)
}

type testRunner interface {
	Command() ([]string, error)
	Linters() ([][]string, error)
	Run(ctx context.Context, argv []string) (*testrunner.TestResult, error)
	Lint(ctx context.Context, argv []string) (*testrunner.TestResult, error)
}

type gitTool interface {
	Status() (*git.StatusResponse, error)
	Commit(message string) (*git.CommitResponse, error)
}

// Tools groups the executors a Dispatcher drives. Every field is required.
type Tools struct {
	ReadFile  fileReader
	WriteFile fileWriter
	ListFiles fileLister
	Shell     shellRunner
	Tests     testRunner
	Git       gitTool
	Drafter   models.Drafter
}
