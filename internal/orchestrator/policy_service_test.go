package orchestrator

import (
	"testing"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyFor(t *testing.T, allow, deny []string) *models.Policy {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Shell.AllowedCommands = allow
	cfg.Shell.DeniedCommands = deny
	policy, err := LoadPolicy(cfg)
	require.NoError(t, err)
	return policy
}

func TestLoadPolicy(t *testing.T) {
	t.Run("default is deny-all", func(t *testing.T) {
		policy, err := LoadPolicy(config.DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, policy.Shell.Allow)
		assert.False(t, IsAllowed(policy, "ls", nil))
		assert.False(t, IsAllowed(policy, "echo", []string{"hi"}))
	})

	t.Run("entries become argv prefixes", func(t *testing.T) {
		policy := policyFor(t, []string{"pytest", "npm  test"}, []string{"go clean"})
		assert.Equal(t, [][]string{{"pytest"}, {"npm", "test"}}, policy.Shell.Allow)
		assert.Equal(t, [][]string{{"go", "clean"}}, policy.Shell.Deny)
	})

	t.Run("blank entry", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Shell.AllowedCommands = []string{"pytest", "  "}

		_, err := LoadPolicy(cfg)
		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "shell.allowed_commands[1]")
	})
}

func TestIsAllowed(t *testing.T) {
	policy := policyFor(t,
		[]string{"pytest", "npm test", "echo", "go", "/usr/local/bin/tool"},
		[]string{"go clean"},
	)

	tests := []struct {
		name    string
		command string
		args    []string
		want    bool
	}{
		{name: "single token entry", command: "pytest", args: []string{"-q"}, want: true},
		{name: "single token entry without args", command: "pytest", want: true},
		{name: "multi token prefix", command: "npm", args: []string{"test", "--silent"}, want: true},
		{name: "multi token prefix mismatch", command: "npm", args: []string{"install"}, want: false},
		{name: "prefix longer than argv", command: "npm", want: false},
		{name: "not listed", command: "rm", args: []string{"-rf", "."}, want: false},
		{name: "case sensitive", command: "Pytest", want: false},
		{name: "no substring matching", command: "pytest3", want: false},
		{name: "metacharacters are arguments", command: "echo", args: []string{"; rm -rf ."}, want: true},
		{name: "deny overrides allow", command: "go", args: []string{"clean", "-cache"}, want: false},
		{name: "allow beside deny", command: "go", args: []string{"test", "./..."}, want: true},
		{name: "path does not match bare entry", command: "/usr/bin/pytest", want: false},
		{name: "relative path does not match bare entry", command: "./pytest", want: false},
		{name: "exact path entry", command: "/usr/local/bin/tool", args: []string{"x"}, want: true},
		{name: "bare name does not match path entry", command: "tool", want: false},
		{name: "empty command", command: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(policy, tt.command, tt.args))
		})
	}
}

func TestIsAllowed_NilPolicy(t *testing.T) {
	assert.False(t, IsAllowed(nil, "echo", nil))
}

func TestIsAllowed_DoesNotMutateArgs(t *testing.T) {
	policy := policyFor(t, []string{"echo"}, nil)
	args := make([]string, 1, 4)
	args[0] = "a"

	IsAllowed(policy, "echo", args)
	assert.Equal(t, []string{"a"}, args)
}

func TestCheckShell(t *testing.T) {
	policy := policyFor(t, []string{"pytest"}, nil)

	assert.NoError(t, CheckShell(policy, []string{"pytest", "-q"}))

	err := CheckShell(policy, []string{"npm", "install"})
	var violation *PolicyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "blocked by policy: npm install", err.Error())
	assert.True(t, violation.PolicyViolation())

	assert.Error(t, CheckShell(policy, nil))
}
