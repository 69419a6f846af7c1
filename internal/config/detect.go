package config

import "path/filepath"

const (
	LanguagePython = "python"
	LanguageNode   = "node"
	LanguageGo     = "go"
)

var languageMarkers = []struct {
	file     string
	language string
}{
	{"pyproject.toml", LanguagePython},
	{"setup.py", LanguagePython},
	{"package.json", LanguageNode},
	{"go.mod", LanguageGo},
}

// DetectLanguage guesses the project language from marker files in root.
// Projects without a marker are treated as python.
func DetectLanguage(fs FileSystem, root string) string {
	for _, m := range languageMarkers {
		if _, err := fs.Stat(filepath.Join(root, m.file)); err == nil {
			return m.language
		}
	}
	return LanguagePython
}

// DefaultTestCommand returns the conventional test invocation for a language.
func DefaultTestCommand(language string) string {
	switch language {
	case LanguageNode:
		return "npm test --silent"
	case LanguageGo:
		return "go test ./..."
	default:
		return "pytest -q"
	}
}

// DefaultLinters returns the lint and type-check commands `init` seeds for a
// language.
func DefaultLinters(language string) []string {
	switch language {
	case LanguageNode:
		return []string{"npx eslint .", "npx tsc --noEmit"}
	case LanguageGo:
		return []string{"go vet ./..."}
	default:
		return []string{"ruff check .", "mypy ."}
	}
}
