package file

import (
	"strings"

	"github.com/Cyclone1070/codeagent/internal/config"
)

// -- Read File --

type ReadFileRequest struct {
	Path string
}

func (r *ReadFileRequest) Validate(cfg *config.Config) error {
	if strings.TrimSpace(r.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

type ReadFileResponse struct {
	Content      string
	AbsolutePath string
	RelativePath string
	Size         int64
}

// -- Write File --

// WriteFileRequest creates or replaces a file. Empty content is allowed.
type WriteFileRequest struct {
	Path    string
	Content string
}

func (r *WriteFileRequest) Validate(cfg *config.Config) error {
	if strings.TrimSpace(r.Path) == "" {
		return ErrPathRequired
	}
	if int64(len(r.Content)) > cfg.Tools.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

type WriteFileResponse struct {
	AbsolutePath string
	RelativePath string
	BytesWritten int
	Created      bool
	Previous     string // content before the write; empty when Created
}
