package config

import (
	"errors"
	"fmt"
)

// ConfigurationError is fatal to a session: it is raised before the REPL starts
// and aborts the process.
type ConfigurationError struct {
	Path  string
	Cause error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %v", e.Cause)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Cause)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

func (e *ConfigurationError) Configuration() bool { return true }

// EnvFileParseError is returned when an env file has an invalid line.
type EnvFileParseError struct {
	Path    string
	Line    int
	Content string
}

func (e *EnvFileParseError) Error() string {
	return fmt.Sprintf("invalid line %d in env file %s: %s", e.Line, e.Path, e.Content)
}

func (e *EnvFileParseError) InvalidInput() bool { return true }

// -- Sentinels --

var (
	ErrMissingAPIKey = errors.New("API key not set")
	ErrConfigExists  = errors.New("config file already exists")
)
