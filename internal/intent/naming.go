package intent

import (
	"path"
	"strings"
	"unicode"

	"github.com/Cyclone1070/codeagent/internal/config"
)

// SnakeCase converts "Calculator", "HTTPServer" or "user service" to
// "calculator", "http_server" and "user_service".
func SnakeCase(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	underscore := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
	}

	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_':
			underscore()
		case unicode.IsUpper(r):
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				underscore()
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// CamelCase converts "calculator" or "user_service" to "Calculator" and
// "UserService".
func CamelCase(s string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// Extension returns the source file extension for a project language.
func Extension(language string) string {
	switch language {
	case config.LanguageGo:
		return ".go"
	case config.LanguageNode:
		return ".js"
	default:
		return ".py"
	}
}

// LanguageForPath infers the language of a file from its extension. Files
// without an extension take the project language; other extensions have
// no language and yield "".
func LanguageForPath(p, projectLanguage string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".py":
		return config.LanguagePython
	case ".go":
		return config.LanguageGo
	case ".js", ".mjs", ".cjs", ".ts", ".jsx", ".tsx":
		return config.LanguageNode
	case "":
		return projectLanguage
	default:
		return ""
	}
}
