package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/codeagent/internal/config"
	fsservice "github.com/Cyclone1070/codeagent/internal/tool/service/fs"
)

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps      fileWriter
	pathResolver pathResolver
	config       *config.Config
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter, pathResolver pathResolver, cfg *config.Config) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &WriteFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run creates or replaces a file in the workspace, creating parent
// directories as needed. The write is atomic (temp file + rename) and keeps
// the mode of a replaced file. The previous content is returned so callers
// can diff it.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req *WriteFileRequest) (*WriteFileResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	abs, rel, err := resolve(t.pathResolver, req.Path)
	if err != nil {
		return nil, err
	}

	content := []byte(req.Content)
	if fsservice.IsBinary(content) {
		return nil, &PathError{Op: "write", Path: rel, Cause: ErrBinaryFile}
	}

	perm := os.FileMode(0o644)
	created := true
	var previous string

	info, err := t.fileOps.Stat(abs)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, &PathError{Op: "write", Path: rel, Cause: ErrIsDirectory}
		}
		created = false
		perm = info.Mode().Perm()
		if info.Size() <= t.config.Tools.MaxFileSize {
			if old, err := t.fileOps.ReadFile(abs); err == nil && !fsservice.IsBinary(old) {
				previous = string(old)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, wrapOSError("stat", rel, err)
	}

	if err := t.fileOps.EnsureDirs(filepath.Dir(abs)); err != nil {
		return nil, wrapOSError("mkdir", rel, err)
	}

	if err := t.fileOps.WriteFileAtomic(abs, content, perm); err != nil {
		return nil, wrapOSError("write", rel, err)
	}

	return &WriteFileResponse{
		AbsolutePath: abs,
		RelativePath: rel,
		BytesWritten: len(content),
		Created:      created,
		Previous:     previous,
	}, nil
}
