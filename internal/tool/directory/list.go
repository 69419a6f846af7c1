package directory

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"strings"
)

// ListFilesTool enumerates files under a workspace directory.
type ListFilesTool struct {
	fs           dirReader
	ignore       ignoreMatcher
	pathResolver pathResolver
}

// NewListFilesTool creates a new ListFilesTool with injected dependencies.
func NewListFilesTool(fs dirReader, ignore ignoreMatcher, pathResolver pathResolver) *ListFilesTool {
	if fs == nil {
		panic("fs is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &ListFilesTool{
		fs:           fs,
		ignore:       ignore,
		pathResolver: pathResolver,
	}
}

// Walk validates dir and returns a lazy sequence of the files beneath it.
//
// Paths are slash-separated and relative to the workspace root. The walk is
// depth-first with entries sorted by name. Hidden directories and ignored
// paths are skipped, and symlinked directories are listed but not followed,
// so the sequence is finite. Nothing is read until the sequence is ranged
// over, and every range starts a fresh walk. A subdirectory that cannot be
// read yields a *WalkError and the walk moves on.
func (t *ListFilesTool) Walk(dir string) (iter.Seq2[string, error], error) {
	if dir == "" {
		dir = "."
	}

	abs, err := t.pathResolver.Abs(dir)
	if err != nil {
		return nil, err
	}
	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, rel)
		}
		return nil, &WalkError{Path: rel, Cause: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, rel)
	}

	return func(yield func(string, error) bool) {
		t.walk(abs, rel, yield)
	}, nil
}

// walk reports false once the consumer stops ranging.
func (t *ListFilesTool) walk(dirAbs, dirRel string, yield func(string, error) bool) bool {
	entries, err := t.fs.ReadDir(dirAbs)
	if err != nil {
		return yield("", &WalkError{Path: dirRel, Cause: err})
	}

	for _, entry := range entries {
		name := entry.Name()
		rel := name
		if dirRel != "." {
			rel = path.Join(dirRel, name)
		}

		isDir := entry.IsDir()
		if isDir && strings.HasPrefix(name, ".") {
			continue
		}
		if t.ignore.ShouldIgnore(rel, isDir) {
			continue
		}

		if isDir {
			if !t.walk(filepath.Join(dirAbs, name), rel, yield) {
				return false
			}
			continue
		}
		if !yield(rel, nil) {
			return false
		}
	}
	return true
}
