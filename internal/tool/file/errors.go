package file

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing      = errors.New("file or path does not exist")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBinaryFile       = errors.New("file is binary")
	ErrFileTooLarge     = errors.New("file too large")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrPathRequired     = errors.New("path is required")
)

// PathError ties a failed file operation to its path. Cause is one of the
// sentinels above, possibly wrapping the underlying OS error.
type PathError struct {
	Op    string // "stat", "read", "write", "mkdir"
	Path  string
	Cause error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}
func (e *PathError) Unwrap() error { return e.Cause }
