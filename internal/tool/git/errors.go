package git

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChanges is returned by Commit when the working tree matches HEAD.
	ErrNoChanges       = errors.New("nothing to commit")
	ErrMessageRequired = errors.New("commit message is required")
)

// RepositoryError wraps a go-git failure with the operation that hit it.
type RepositoryError struct {
	Op    string
	Root  string
	Cause error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("git %s in %s: %v", e.Op, e.Root, e.Cause)
}
func (e *RepositoryError) Unwrap() error { return e.Cause }
