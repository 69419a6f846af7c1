package path

import (
	"errors"
	"fmt"
)

// WorkspaceRootError is returned when the workspace root is unusable.
// It is fatal at session start.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error       { return e.Cause }
func (e *WorkspaceRootError) Configuration() bool { return true }

var (
	// ErrOutsideWorkspace is reported to users as a permission failure.
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
