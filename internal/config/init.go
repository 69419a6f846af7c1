package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileFor returns the config `init` writes for a project: defaults with
// the detected language, its test command and linters, and an empty
// allow-list.
func ProjectFileFor(language string) *Config {
	cfg := DefaultConfig()
	cfg.Project.Language = language
	cfg.Tests.Command = DefaultTestCommand(language)
	cfg.Tests.Linters = DefaultLinters(language)
	return cfg
}

// Marshal renders cfg as agent.yaml content.
func Marshal(cfg *Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# codeagent project configuration.\n" +
		"# shell.allowed_commands is empty: no shell command may run until you list it here.\n" +
		"# tests.linters run before the tests on verify; allow them too or remove them.\n"
	return append([]byte(header), body...), nil
}

// WriteProjectFile writes agent.yaml into root. An existing file is kept
// unless force is set.
func WriteProjectFile(root string, cfg *Config, force bool) (string, error) {
	path := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, err
	}
	return path, nil
}
