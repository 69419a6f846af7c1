package directory

import (
	"os"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Rel(path string) (string, error)
}

// dirReader defines the filesystem operations needed for walking.
type dirReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
}

// ignoreMatcher decides which workspace-relative paths a listing skips.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
