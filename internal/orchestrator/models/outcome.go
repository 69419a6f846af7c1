package models

// ErrorKind classifies a failed Outcome.
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindConfiguration       ErrorKind = "configuration"
	KindPolicyViolation     ErrorKind = "policy_violation"
	KindNotFound            ErrorKind = "not_found"
	KindPermissionDenied    ErrorKind = "permission_denied"
	KindTimeout             ErrorKind = "timeout"
	KindNonZeroExit         ErrorKind = "non_zero_exit"
	KindNoChanges           ErrorKind = "no_changes"
	KindResolutionAmbiguity ErrorKind = "resolution_ambiguity"
	KindExecution           ErrorKind = "execution"
)

// Outcome is the result of dispatching one Action. Exactly one is produced
// per Action, success or failure.
type Outcome struct {
	Success  bool
	Summary  string
	Kind     ErrorKind
	Artifact Artifact // nil when there is nothing to attach
}

// Succeeded builds a successful Outcome.
func Succeeded(summary string, artifact Artifact) Outcome {
	return Outcome{Success: true, Summary: summary, Artifact: artifact}
}

// Failed builds a failed Outcome of the given kind.
func Failed(kind ErrorKind, summary string, artifact Artifact) Outcome {
	return Outcome{Success: false, Summary: summary, Kind: kind, Artifact: artifact}
}

// Artifact is optional payload attached to an Outcome.
type Artifact interface {
	isArtifact()
}

// DiffArtifact is a unified diff of a file mutation.
type DiffArtifact struct {
	Path    string
	Diff    string
	Added   int
	Removed int
}

// ContentArtifact is the content of a file that was read.
type ContentArtifact struct {
	Path    string
	Content string
}

// OutputArtifact is the captured result of a subprocess.
type OutputArtifact struct {
	Command   []string
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// CommitArtifact identifies a created commit.
type CommitArtifact struct {
	Hash    string
	Short   string
	Message string
}

// ListingArtifact holds workspace-relative paths.
type ListingArtifact struct {
	Root      string
	Paths     []string
	Truncated bool
}

// StatusEntry is one changed path in the working tree.
type StatusEntry struct {
	Path     string
	Staging  string
	Worktree string
}

// StatusArtifact is the working tree state.
type StatusArtifact struct {
	Branch  string
	Clean   bool
	Entries []StatusEntry
}

func (DiffArtifact) isArtifact()    {}
func (ContentArtifact) isArtifact() {}
func (OutputArtifact) isArtifact()  {}
func (CommitArtifact) isArtifact()  {}
func (ListingArtifact) isArtifact() {}
func (StatusArtifact) isArtifact()  {}
