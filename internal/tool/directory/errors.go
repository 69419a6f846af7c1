package directory

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing   = errors.New("file or path does not exist")
	ErrNotADirectory = errors.New("not a directory")
)

// WalkError is yielded for a subdirectory that could not be read. The walk
// continues with its siblings.
type WalkError struct {
	Path  string
	Cause error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Path, e.Cause)
}
func (e *WalkError) Unwrap() error { return e.Cause }
func (e *WalkError) IOError() bool { return true }
