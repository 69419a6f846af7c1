package file

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/tool/service/fs"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileReader
	pathResolver pathResolver
	config       *config.Config
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, pathResolver pathResolver, cfg *config.Config) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ReadFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run reads a whole text file from the workspace.
// A missing path fails with ErrFileMissing; directories, binary files and
// files over tools.max_file_size are rejected.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	abs, rel, err := resolve(t.pathResolver, req.Path)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		return nil, wrapOSError("stat", rel, err)
	}
	if info.IsDir() {
		return nil, &PathError{Op: "read", Path: rel, Cause: ErrIsDirectory}
	}
	if limit := t.config.Tools.MaxFileSize; info.Size() > limit {
		return nil, &PathError{Op: "read", Path: rel, Cause: ErrFileTooLarge}
	}

	data, err := t.fileOps.ReadFile(abs)
	if err != nil {
		return nil, wrapOSError("read", rel, err)
	}
	if fs.IsBinary(data) {
		return nil, &PathError{Op: "read", Path: rel, Cause: ErrBinaryFile}
	}

	return &ReadFileResponse{
		Content:      string(data),
		AbsolutePath: abs,
		RelativePath: rel,
		Size:         info.Size(),
	}, nil
}
