package ignore

import (
	"errors"
	"os"
	"testing"
)

type mockFileReader struct {
	files   map[string][]byte
	readErr error
}

func (m *mockFileReader) ReadFile(path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func TestNewMatcher(t *testing.T) {
	workspaceRoot := "/workspace"

	t.Run("load gitignore from workspace root", func(t *testing.T) {
		fs := &mockFileReader{files: map[string][]byte{
			"/workspace/.gitignore": []byte("# build output\n*.log\n\ndist/\n"),
		}}

		matcher, err := NewMatcher(workspaceRoot, fs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !matcher.ShouldIgnore("test.log", false) {
			t.Error("expected test.log to be ignored")
		}
		if !matcher.ShouldIgnore("dist", true) {
			t.Error("expected dist/ to be ignored")
		}
		if matcher.ShouldIgnore("dist", false) {
			t.Error("expected a file named dist not to match a directory pattern")
		}
		if matcher.ShouldIgnore("test.txt", false) {
			t.Error("expected test.txt not to be ignored")
		}
	})

	t.Run("missing gitignore still skips default dirs", func(t *testing.T) {
		matcher, err := NewMatcher(workspaceRoot, &mockFileReader{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, dir := range DefaultDirs {
			if !matcher.ShouldIgnore(dir, true) {
				t.Errorf("expected %s to be ignored", dir)
			}
		}
		if !matcher.ShouldIgnore("web/node_modules/pkg/index.js", false) {
			t.Error("expected nested node_modules content to be ignored")
		}
		if matcher.ShouldIgnore("src/app.py", false) {
			t.Error("expected src/app.py not to be ignored")
		}
	})

	t.Run("read error", func(t *testing.T) {
		fs := &mockFileReader{readErr: errors.New("disk failure")}

		_, err := NewMatcher(workspaceRoot, fs)
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("expected ReadError, got %T: %v", err, err)
		}
	})
}

func TestShouldIgnore_Normalization(t *testing.T) {
	fs := &mockFileReader{files: map[string][]byte{
		"/workspace/.gitignore": []byte("*.log\r\nbuild\r\n"),
	}}
	matcher, err := NewMatcher("/workspace", fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !matcher.ShouldIgnore("app.log", false) {
		t.Error("failed to match pattern with CRLF")
	}
	if !matcher.ShouldIgnore("foo//bar.log", false) {
		t.Error("failed to ignore path with consecutive slashes")
	}
	if !matcher.ShouldIgnore("./baz.log", false) {
		t.Error("failed to ignore path with dot prefix")
	}
	if matcher.ShouldIgnore(".", true) {
		t.Error("workspace root must never be ignored")
	}
}
