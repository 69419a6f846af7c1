package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// APIKeyEnv names the credential read at session start.
const APIKeyEnv = "GEMINI_API_KEY"

// EnvFile is the project-local dotenv file consulted for credentials.
const EnvFile = ".env"

// ParseEnv parses dotenv content. It supports KEY=VALUE lines, # comments,
// blank lines, an optional "export " prefix and single or double quoted values.
// Multi-line values and variable expansion are not supported.
func ParseEnv(content []byte, path string) (map[string]string, error) {
	env := make(map[string]string)

	for i, rawLine := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &EnvFileParseError{Path: path, Line: i + 1, Content: line}
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		env[key] = value
	}

	return env, nil
}

// LoadAPIKey returns the provider credential. The process environment wins;
// otherwise <root>/.env is consulted. A missing key is a *ConfigurationError.
func (l *Loader) LoadAPIKey(root string, lookupEnv func(string) (string, bool)) (string, error) {
	if v, ok := lookupEnv(APIKeyEnv); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	envPath := filepath.Join(root, EnvFile)
	data, err := l.fs.ReadFile(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", &ConfigurationError{Path: envPath, Cause: err}
	}
	if err == nil {
		vars, err := ParseEnv(data, envPath)
		if err != nil {
			return "", &ConfigurationError{Path: envPath, Cause: err}
		}
		if v := strings.TrimSpace(vars[APIKeyEnv]); v != "" {
			return v, nil
		}
	}

	return "", &ConfigurationError{Cause: ErrMissingAPIKey}
}
