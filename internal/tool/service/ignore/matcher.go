package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultDirs are skipped in every listing, with or without a .gitignore.
var DefaultDirs = []string{".git", "node_modules", "__pycache__", ".venv"}

// ReadError is returned when .gitignore exists but cannot be read.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }

// fileReader defines the minimal filesystem interface needed to load patterns.
type fileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Matcher matches workspace-relative paths against the built-in directory
// set and the root .gitignore, using go-git's gitignore semantics.
type Matcher struct {
	matcher gitignore.Matcher
}

// NewMatcher loads <workspaceRoot>/.gitignore. A missing file is not an error:
// the matcher then only applies DefaultDirs.
func NewMatcher(workspaceRoot string, files fileReader) (*Matcher, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if files == nil {
		panic("files is required")
	}

	patterns := make([]gitignore.Pattern, 0, len(DefaultDirs))
	for _, dir := range DefaultDirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}

	gitignorePath := filepath.Join(workspaceRoot, ".gitignore")
	data, err := files.ReadFile(gitignorePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, &ReadError{Path: gitignorePath, Cause: err}
	default:
		patterns = append(patterns, ParsePatterns(string(data))...)
	}

	return &Matcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ParsePatterns parses .gitignore content, skipping blanks and comments.
func ParsePatterns(content string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}

// ShouldIgnore reports whether a slash- or OS-separated relative path is ignored.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath normalizes separators and drops empty and "." segments.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
