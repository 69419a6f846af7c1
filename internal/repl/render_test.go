package repl

import (
	"bytes"
	"testing"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_PlainOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome models.Outcome
		want    string
	}{
		{
			name:    "failure with kind",
			outcome: models.Failed(models.KindPolicyViolation, "blocked by policy: npm install", nil),
			want:    "✘ blocked by policy: npm install [policy_violation]\n",
		},
		{
			name:    "content",
			outcome: models.Succeeded("read a.txt (5 bytes)", models.ContentArtifact{Path: "a.txt", Content: "hello"}),
			want:    "✔ read a.txt (5 bytes)\nhello\n",
		},
		{
			name: "diff",
			outcome: models.Succeeded("updated a.txt (+1 -1)", models.DiffArtifact{
				Path: "a.txt", Diff: "--- a/a.txt\n+++ b/a.txt\n@@ -1 +1 @@\n-old\n+new\n", Added: 1, Removed: 1,
			}),
			want: "✔ updated a.txt (+1 -1)\n--- a/a.txt\n+++ b/a.txt\n@@ -1 +1 @@\n-old\n+new\n",
		},
		{
			name: "output",
			outcome: models.Failed(models.KindNonZeroExit, "pytest exited with code 1", models.OutputArtifact{
				Command: []string{"pytest"}, Stdout: "1 failed", Stderr: "warning", ExitCode: 1, Truncated: true,
			}),
			want: "✘ pytest exited with code 1 [non_zero_exit]\n1 failed\nwarning\n(output truncated)\n",
		},
		{
			name: "listing",
			outcome: models.Succeeded("2 paths", models.ListingArtifact{
				Paths: []string{"a.py", "src/b.py"}, Truncated: true,
			}),
			want: "✔ 2 paths\na.py\nsrc/b.py\n(listing truncated after 2 entries)\n",
		},
		{
			name: "status",
			outcome: models.Succeeded("1 changed path", models.StatusArtifact{
				Branch: "master", Entries: []models.StatusEntry{{Path: "a.py", Staging: "?", Worktree: "?"}},
			}),
			want: "✔ 1 changed path\n?? a.py\n",
		},
		{
			name:    "commit",
			outcome: models.Succeeded("committed abc1234: msg", models.CommitArtifact{Hash: "abc1234def", Short: "abc1234", Message: "msg"}),
			want:    "✔ committed abc1234: msg\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewPlainRenderer(&out).Outcome(tt.outcome)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderer_Styled(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.Outcome(models.Succeeded("read calculator.py (20 bytes)", models.ContentArtifact{
		Path: "calculator.py", Content: "class Calculator:\n    pass\n",
	}))
	r.Help()

	assert.Contains(t, out.String(), "read calculator.py (20 bytes)")
	assert.Contains(t, out.String(), "Calculator")
	assert.Contains(t, out.String(), "/verify")
}

func TestFenceLanguage(t *testing.T) {
	assert.Equal(t, "python", fenceLanguage("a/b.py"))
	assert.Equal(t, "go", fenceLanguage("main.go"))
	assert.Equal(t, "", fenceLanguage("Makefile"))
}
