package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the project-local config file name.
const ConfigFile = "agent.yaml"

// FileSystem abstracts file operations for testability
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// ProjectFileReader implements FileSystem using the real OS for config loading
type ProjectFileReader struct{}

func (ProjectFileReader) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (ProjectFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ProjectFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads <root>/agent.yaml and merges it with defaults.
// Returns defaults when the file doesn't exist. Any other problem (unreadable
// file, bad YAML, unknown keys, wrong types, failed validation) is returned as
// a *ConfigurationError; it never falls back to a permissive config.
//
// Project language and test command are detected from marker files when the
// file leaves them empty.
func (l *Loader) Load(root string) (*Config, error) {
	cfg := DefaultConfig()
	configPath := filepath.Join(root, ConfigFile)

	data, err := l.fs.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// deny-by-default
	case err != nil:
		return nil, &ConfigurationError{Path: configPath, Cause: err}
	default:
		if err := decode(data, cfg); err != nil {
			return nil, &ConfigurationError{Path: configPath, Cause: err}
		}
	}

	if cfg.Project.Language == "" {
		cfg.Project.Language = DetectLanguage(l.fs, root)
	}
	if cfg.Tests.Command == "" {
		cfg.Tests.Command = DefaultTestCommand(cfg.Project.Language)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Path: configPath, Cause: err}
	}

	return cfg, nil
}

// decode parses YAML into a generic map first so mapstructure can reject
// unknown keys and mistyped values instead of silently ignoring them.
func decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil // empty file
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      cfg,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
