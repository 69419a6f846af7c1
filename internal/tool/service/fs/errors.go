package fs

import (
	"fmt"
)

// AtomicWriteError reports which step of an atomic write failed.
type AtomicWriteError struct {
	Path  string
	Stage string // "create temp", "write", "sync", "close", "chmod", "rename"
	Cause error
}

func (e *AtomicWriteError) Error() string {
	return fmt.Sprintf("atomic write of %s failed at %s: %v", e.Path, e.Stage, e.Cause)
}
func (e *AtomicWriteError) Unwrap() error { return e.Cause }
func (e *AtomicWriteError) IOError() bool { return true }
