package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
)

// shellMetacharacters are rejected in policy entries: an entry names an
// executable and its leading arguments, never a shell snippet.
const shellMetacharacters = ";&|<>`$()\n\\*?"

var knownLanguages = []string{LanguagePython, LanguageNode, LanguageGo}

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if c.Project.Language != "" && !slices.Contains(knownLanguages, c.Project.Language) {
		errs = append(errs, fmt.Sprintf("project.language must be one of %v", knownLanguages))
	}

	for i, entry := range c.Shell.AllowedCommands {
		if msg := validatePolicyEntry(entry); msg != "" {
			errs = append(errs, fmt.Sprintf("shell.allowed_commands[%d] %s", i, msg))
		}
	}
	for i, entry := range c.Shell.DeniedCommands {
		if msg := validatePolicyEntry(entry); msg != "" {
			errs = append(errs, fmt.Sprintf("shell.denied_commands[%d] %s", i, msg))
		}
	}
	for i, entry := range c.Shell.EnvFiles {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, fmt.Sprintf("shell.env_files[%d] must not be empty", i))
		}
	}
	if c.Shell.TimeoutSeconds < 1 {
		errs = append(errs, "shell.timeout_seconds must be >= 1")
	}
	if c.Shell.MaxOutputBytes < 1 {
		errs = append(errs, "shell.max_output_bytes must be >= 1")
	}
	if c.Shell.GracefulShutdownMs < 1 {
		errs = append(errs, "shell.graceful_shutdown_ms must be >= 1")
	}

	if c.Tests.Command != "" {
		if msg := validateCommandLine(c.Tests.Command); msg != "" {
			errs = append(errs, "tests.command "+msg)
		}
	}
	for i, entry := range c.Tests.Linters {
		if msg := validateCommandLine(entry); msg != "" {
			errs = append(errs, fmt.Sprintf("tests.linters[%d] %s", i, msg))
		}
	}
	if c.Tests.TimeoutSeconds < 0 {
		errs = append(errs, "tests.timeout_seconds must be >= 0")
	}

	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.MaxListResults < 1 {
		errs = append(errs, "tools.max_list_results must be >= 1")
	}

	if strings.TrimSpace(c.Git.AuthorName) == "" {
		errs = append(errs, "git.author_name must not be empty")
	}
	if !strings.Contains(c.Git.AuthorEmail, "@") {
		errs = append(errs, "git.author_email must be an email address")
	}

	if c.LLM.MaxOutputTokens < 1 {
		errs = append(errs, "llm.max_output_tokens must be >= 1")
	}
	if c.LLM.UseModelResolver && c.LLM.Model == "" {
		errs = append(errs, "llm.model is required when llm.use_model_resolver is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func validatePolicyEntry(entry string) string {
	switch {
	case strings.TrimSpace(entry) == "":
		return "must not be empty"
	case entry != strings.TrimSpace(entry):
		return "must not have leading or trailing whitespace"
	case strings.ContainsAny(entry, shellMetacharacters):
		return "must not contain shell metacharacters"
	}
	return ""
}

func validateCommandLine(line string) string {
	argv, err := shellwords.Parse(line)
	switch {
	case err != nil || len(argv) == 0:
		return "must be a plain command line"
	case strings.ContainsAny(line, ";&|<>`"):
		return "must not chain commands"
	}
	return ""
}
