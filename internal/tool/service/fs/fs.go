package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the whole file.
func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// The temp file is created in the same directory as the target so the rename
// never crosses filesystems.
func (fs *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &AtomicWriteError{Path: path, Stage: "create temp", Cause: err}
	}

	tmpPath := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &AtomicWriteError{Path: path, Stage: "write", Cause: err}
	}
	if err := tmpFile.Sync(); err != nil {
		return &AtomicWriteError{Path: path, Stage: "sync", Cause: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &AtomicWriteError{Path: path, Stage: "close", Cause: err}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return &AtomicWriteError{Path: path, Stage: "chmod", Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &AtomicWriteError{Path: path, Stage: "rename", Cause: err}
	}
	committed = true

	return nil
}

// EnsureDirs creates a directory and its parents if they don't exist.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// ReadDir lists a directory sorted by name.
func (fs *OSFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}
