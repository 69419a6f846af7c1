package git

// StatusEntry is one path whose staging or worktree state differs from HEAD.
type StatusEntry struct {
	Path     string
	Staging  string
	Worktree string
}

// StatusResponse describes the working tree.
type StatusResponse struct {
	Branch      string // empty before the first commit
	Initialized bool   // false when the root is not a repository yet
	Entries     []StatusEntry
}

// Clean reports whether there is nothing to commit.
func (r *StatusResponse) Clean() bool {
	return len(r.Entries) == 0
}

// CommitResponse identifies a created commit.
type CommitResponse struct {
	Hash    string
	Short   string
	Message string
	Created bool // true when the repository was initialised by this commit
}
