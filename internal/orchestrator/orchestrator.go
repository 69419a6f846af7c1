package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/Cyclone1070/codeagent/internal/tool/directory"
	"github.com/Cyclone1070/codeagent/internal/tool/file"
	"github.com/Cyclone1070/codeagent/internal/tool/git"
	"github.com/Cyclone1070/codeagent/internal/tool/shell"
	"github.com/Cyclone1070/codeagent/internal/tool/testrunner"
	"github.com/sirupsen/logrus"
)

// workspaceLocks serialises dispatch per canonical working directory, so
// sessions sharing a tree see history in execution order.
var workspaceLocks = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: make(map[string]*sync.Mutex)}

func lockWorkspace(root string) (unlock func()) {
	workspaceLocks.mu.Lock()
	l, ok := workspaceLocks.locks[root]
	if !ok {
		l = &sync.Mutex{}
		workspaceLocks.locks[root] = l
	}
	workspaceLocks.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Dispatcher executes resolved actions against the workspace under the
// session's policy and records every outcome in the session.
type Dispatcher struct {
	tools  Tools
	config *config.Config
}

// NewDispatcher creates a new Dispatcher with injected tools.
func NewDispatcher(tools Tools, cfg *config.Config) *Dispatcher {
	switch {
	case tools.ReadFile == nil:
		panic("tools.ReadFile is required")
	case tools.WriteFile == nil:
		panic("tools.WriteFile is required")
	case tools.ListFiles == nil:
		panic("tools.ListFiles is required")
	case tools.Shell == nil:
		panic("tools.Shell is required")
	case tools.Tests == nil:
		panic("tools.Tests is required")
	case tools.Git == nil:
		panic("tools.Git is required")
	case tools.Drafter == nil:
		panic("tools.Drafter is required")
	case cfg == nil:
		panic("cfg is required")
	}
	return &Dispatcher{tools: tools, config: cfg}
}

// Dispatch executes action and appends (utterance, action, outcome) to sess.
// Exactly one Outcome is returned per call; executor failures are reported
// in it, never as a Go error.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, utterance string, action models.Action) models.Outcome {
	unlock := lockWorkspace(sess.WorkingDir())
	defer unlock()

	log := logrus.WithFields(logrus.Fields{"session": sess.ID(), "action": describe(action)})
	log.Debug("dispatching action")

	outcome := d.execute(ctx, sess, action)
	sess.Record(utterance, action, outcome)

	log.WithFields(logrus.Fields{"success": outcome.Success, "kind": outcome.Kind}).Info(outcome.Summary)
	return outcome
}

func describe(action models.Action) string {
	if action == nil {
		return "<nil>"
	}
	return action.String()
}

func (d *Dispatcher) execute(ctx context.Context, sess *session.Session, action models.Action) models.Outcome {
	if action == nil {
		return models.Failed(models.KindResolutionAmbiguity, "no action to run", nil)
	}
	if err := action.Validate(); err != nil {
		return models.Failed(models.KindResolutionAmbiguity, fmt.Sprintf("cannot %s: %v", action, err), nil)
	}

	switch a := action.(type) {
	case models.ReadFile:
		return d.readFile(ctx, a)
	case models.WriteFile:
		return d.writeFile(ctx, a.Path, a.Content)
	case models.EditFile:
		return d.editFile(ctx, a)
	case models.ListFiles:
		return d.listFiles(a)
	case models.RunShell:
		return d.runShell(ctx, sess.Policy(), a)
	case models.RunTests:
		return d.runTests(ctx, sess.Policy())
	case models.GitCommit:
		return d.commit(a)
	case models.Status:
		return d.status()
	case models.Unknown:
		return unknown(a)
	default:
		return models.Failed(models.KindExecution, fmt.Sprintf("unsupported action %T", action), nil)
	}
}

func failure(err error, summary string, artifact models.Artifact) models.Outcome {
	return models.Failed(classify(err), fmt.Sprintf("%s: %v", summary, err), artifact)
}

func (d *Dispatcher) readFile(ctx context.Context, a models.ReadFile) models.Outcome {
	resp, err := d.tools.ReadFile.Run(ctx, &file.ReadFileRequest{Path: a.Path})
	if err != nil {
		return failure(err, "cannot read "+a.Path, nil)
	}
	return models.Succeeded(
		fmt.Sprintf("read %s (%d bytes)", resp.RelativePath, resp.Size),
		models.ContentArtifact{Path: resp.RelativePath, Content: resp.Content},
	)
}

func (d *Dispatcher) writeFile(ctx context.Context, p, content string) models.Outcome {
	resp, err := d.tools.WriteFile.Run(ctx, &file.WriteFileRequest{Path: p, Content: content})
	if err != nil {
		return failure(err, "cannot write "+p, nil)
	}

	diff := file.UnifiedDiff(resp.RelativePath, resp.Previous, content, resp.Created)
	verb := "updated"
	if resp.Created {
		verb = "created"
	}
	return models.Succeeded(
		fmt.Sprintf("%s %s (+%d -%d)", verb, resp.RelativePath, diff.Added, diff.Removed),
		models.DiffArtifact{Path: resp.RelativePath, Diff: diff.Text, Added: diff.Added, Removed: diff.Removed},
	)
}

func (d *Dispatcher) editFile(ctx context.Context, a models.EditFile) models.Outcome {
	current := ""
	resp, err := d.tools.ReadFile.Run(ctx, &file.ReadFileRequest{Path: a.Path})
	switch {
	case err == nil:
		current = resp.Content
	case errors.Is(err, file.ErrFileMissing) && a.Verb == models.EditAdd:
	default:
		return failure(err, fmt.Sprintf("cannot %s %s", a.Verb, a.Path), nil)
	}

	drafted, err := d.tools.Drafter.Draft(ctx, models.DraftRequest{
		Verb:        a.Verb,
		Path:        a.Path,
		Instruction: a.Instruction,
		Current:     current,
		Language:    d.config.Project.Language,
	})
	if err != nil {
		return failure(err, "drafting failed for "+a.Path, nil)
	}
	if resp != nil && drafted == current {
		return models.Failed(models.KindNoChanges, fmt.Sprintf("no changes to %s", a.Path), nil)
	}

	return d.writeFile(ctx, a.Path, drafted)
}

func (d *Dispatcher) listFiles(a models.ListFiles) models.Outcome {
	root := a.Path
	if root == "" {
		root = "."
	}
	seq, err := d.tools.ListFiles.Walk(root)
	if err != nil {
		return failure(err, "cannot list "+root, nil)
	}

	listing := directory.Collect(seq, d.config.Tools.MaxListResults)
	if listing.Err != nil {
		logrus.WithError(listing.Err).WithField("root", root).Warn("listing skipped unreadable directories")
	}

	summary := fmt.Sprintf("%d files under %s", len(listing.Paths), root)
	if listing.Truncated {
		summary = fmt.Sprintf("first %d files under %s (truncated)", len(listing.Paths), root)
	}
	return models.Succeeded(summary, models.ListingArtifact{Root: root, Paths: listing.Paths, Truncated: listing.Truncated})
}

func (d *Dispatcher) runShell(ctx context.Context, policy *models.Policy, a models.RunShell) models.Outcome {
	argv := a.Argv()
	if err := CheckShell(policy, argv); err != nil {
		return models.Failed(models.KindPolicyViolation, err.Error(), nil)
	}

	resp, err := d.tools.Shell.Run(ctx, shell.ShellRequest{Command: argv, EnvFiles: d.config.Shell.EnvFiles})
	label := strings.Join(argv, " ")
	var artifact models.Artifact
	if resp != nil {
		artifact = models.OutputArtifact{
			Command:   argv,
			Stdout:    resp.Stdout,
			Stderr:    resp.Stderr,
			ExitCode:  resp.ExitCode,
			Truncated: resp.Truncated,
		}
	}
	if err != nil {
		return failure(err, label, artifact)
	}
	if resp.ExitCode != 0 {
		return models.Failed(models.KindNonZeroExit, fmt.Sprintf("%s exited with status %d", label, resp.ExitCode), artifact)
	}
	return models.Succeeded(label+" succeeded", artifact)
}

// runTests runs every configured linter, then the test command. Nothing runs
// unless the policy allows every step.
func (d *Dispatcher) runTests(ctx context.Context, policy *models.Policy) models.Outcome {
	argv, err := d.tools.Tests.Command()
	if err != nil {
		return failure(err, "cannot determine test command", nil)
	}
	linters, err := d.tools.Tests.Linters()
	if err != nil {
		return failure(err, "cannot determine linters", nil)
	}
	for _, step := range append(slices.Clone(linters), argv) {
		if err := CheckShell(policy, step); err != nil {
			return models.Failed(models.KindPolicyViolation, err.Error(), nil)
		}
	}

	var (
		lintFailures []string
		lintArtifact models.Artifact
	)
	for _, linter := range linters {
		label := strings.Join(linter, " ")
		result, err := d.tools.Tests.Lint(ctx, linter)
		artifact := testArtifact(result)
		if err != nil {
			return failure(err, label, artifact)
		}
		if result.Status != testrunner.StatusPassed {
			lintFailures = append(lintFailures, label)
			if lintArtifact == nil {
				lintArtifact = artifact
			}
		}
	}

	outcome := d.testOutcome(ctx, argv)
	if len(lintFailures) == 0 {
		return outcome
	}

	kind := outcome.Kind
	if outcome.Success {
		kind = models.KindNonZeroExit
	}
	summary := fmt.Sprintf("lint failed (%s); %s", strings.Join(lintFailures, ", "), outcome.Summary)
	return models.Failed(kind, summary, lintArtifact)
}

func (d *Dispatcher) testOutcome(ctx context.Context, argv []string) models.Outcome {
	result, err := d.tools.Tests.Run(ctx, argv)
	artifact := testArtifact(result)
	if err != nil {
		return failure(err, strings.Join(argv, " "), artifact)
	}

	switch result.Status {
	case testrunner.StatusPassed:
		return models.Succeeded("tests passed", artifact)
	case testrunner.StatusNoTests:
		return models.Failed(models.KindNonZeroExit, "no tests collected", artifact)
	case testrunner.StatusTimedOut:
		return models.Failed(models.KindTimeout, "tests timed out", artifact)
	default:
		return models.Failed(models.KindNonZeroExit, fmt.Sprintf("tests failed (exit status %d)", result.ExitCode), artifact)
	}
}

func testArtifact(result *testrunner.TestResult) models.Artifact {
	if result == nil {
		return nil
	}
	return models.OutputArtifact{
		Command:   result.Command,
		Stdout:    result.Stdout,
		Stderr:    result.Stderr,
		ExitCode:  result.ExitCode,
		Truncated: result.Truncated,
	}
}

func (d *Dispatcher) commit(a models.GitCommit) models.Outcome {
	resp, err := d.tools.Git.Commit(a.Message)
	if errors.Is(err, git.ErrNoChanges) {
		return models.Failed(models.KindNoChanges, "nothing to commit", nil)
	}
	if err != nil {
		return failure(err, "commit failed", nil)
	}
	return models.Succeeded(
		fmt.Sprintf("committed %s: %s", resp.Short, resp.Message),
		models.CommitArtifact{Hash: resp.Hash, Short: resp.Short, Message: resp.Message},
	)
}

func (d *Dispatcher) status() models.Outcome {
	resp, err := d.tools.Git.Status()
	if err != nil {
		return failure(err, "status failed", nil)
	}

	artifact := models.StatusArtifact{Branch: resp.Branch, Clean: resp.Clean()}
	for _, e := range resp.Entries {
		artifact.Entries = append(artifact.Entries, models.StatusEntry{Path: e.Path, Staging: e.Staging, Worktree: e.Worktree})
	}

	switch {
	case !resp.Initialized:
		return models.Succeeded("not a git repository yet; the first commit will create one", artifact)
	case resp.Clean():
		return models.Succeeded("working tree clean", artifact)
	default:
		return models.Succeeded(fmt.Sprintf("%d changed paths", len(resp.Entries)), artifact)
	}
}

func unknown(a models.Unknown) models.Outcome {
	if a.Question != "" {
		return models.Failed(models.KindResolutionAmbiguity, a.Question, nil)
	}
	return models.Failed(models.KindResolutionAmbiguity, fmt.Sprintf("I don't know how to %q", a.Raw), nil)
}
