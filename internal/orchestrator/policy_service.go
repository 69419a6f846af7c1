package orchestrator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
)

// PolicyViolationError is returned when a command is not permitted to run.
type PolicyViolationError struct {
	Argv []string
}

func (e *PolicyViolationError) Error() string {
	return "blocked by policy: " + strings.Join(e.Argv, " ")
}

func (e *PolicyViolationError) PolicyViolation() bool { return true }

// LoadPolicy builds the shell policy from configuration. Every entry is split
// on whitespace into an argv prefix. No allow entries means nothing may run.
func LoadPolicy(cfg *config.Config) (*models.Policy, error) {
	if cfg == nil {
		panic("cfg is required")
	}

	allow, err := parseRules(cfg.Shell.AllowedCommands, "shell.allowed_commands")
	if err != nil {
		return nil, err
	}
	deny, err := parseRules(cfg.Shell.DeniedCommands, "shell.denied_commands")
	if err != nil {
		return nil, err
	}
	return &models.Policy{Shell: models.ShellPolicy{Allow: allow, Deny: deny}}, nil
}

func parseRules(entries []string, key string) ([][]string, error) {
	rules := make([][]string, 0, len(entries))
	for i, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			return nil, &config.ConfigurationError{
				Path:  config.ConfigFile,
				Cause: fmt.Errorf("%s[%d]: entry cannot be empty", key, i),
			}
		}
		rules = append(rules, fields)
	}
	return rules, nil
}

// IsAllowed reports whether command with args may run under policy.
//
// Matching is exact and case-sensitive against argv prefixes. The command is
// compared as given: "/usr/bin/npm" or "./npm" only match an entry spelled
// with that same path. Deny rules win over allow rules, and a nil policy
// denies everything.
func IsAllowed(policy *models.Policy, command string, args []string) bool {
	if policy == nil || command == "" {
		return false
	}
	argv := append([]string{command}, args...)

	for _, rule := range policy.Shell.Deny {
		if hasPrefix(argv, rule) {
			return false
		}
	}
	for _, rule := range policy.Shell.Allow {
		if hasPrefix(argv, rule) {
			return true
		}
	}
	return false
}

// CheckShell returns a *PolicyViolationError when argv may not run.
func CheckShell(policy *models.Policy, argv []string) error {
	if len(argv) == 0 || !IsAllowed(policy, argv[0], argv[1:]) {
		return &PolicyViolationError{Argv: argv}
	}
	return nil
}

func hasPrefix(argv, rule []string) bool {
	if len(rule) == 0 || len(rule) > len(argv) {
		return false
	}
	return slices.Equal(argv[:len(rule)], rule)
}
