package git

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/tool/service/ignore"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

const shortHashLen = 7

// GitTool reads and records version-control state of the workspace with
// go-git. No git binary is required.
type GitTool struct {
	root   string
	config *config.Config
	now    func() time.Time
}

// NewGitTool creates a GitTool for the canonical workspace root.
func NewGitTool(root string, cfg *config.Config) *GitTool {
	if root == "" {
		panic("root is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &GitTool{root: root, config: cfg, now: time.Now}
}

// Init creates a repository at the workspace root if there is none.
// It reports whether a repository was created.
func (t *GitTool) Init() (bool, error) {
	_, err := gogit.PlainOpen(t.root)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return false, &RepositoryError{Op: "open", Root: t.root, Cause: err}
	}
	if _, err := gogit.PlainInit(t.root, false); err != nil {
		return false, &RepositoryError{Op: "init", Root: t.root, Cause: err}
	}
	logrus.WithField("root", t.root).Info("initialised git repository")
	return true, nil
}

// Status returns the changed paths sorted by path. A directory that is not
// a repository reports Initialized=false and no entries.
func (t *GitTool) Status() (*StatusResponse, error) {
	repo, err := gogit.PlainOpen(t.root)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return &StatusResponse{}, nil
	}
	if err != nil {
		return nil, &RepositoryError{Op: "open", Root: t.root, Cause: err}
	}

	wt, err := t.worktree(repo)
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, &RepositoryError{Op: "status", Root: t.root, Cause: err}
	}

	resp := &StatusResponse{Initialized: true, Branch: branchName(repo)}
	for path, st := range status {
		if st.Staging == gogit.Unmodified && st.Worktree == gogit.Unmodified {
			continue
		}
		resp.Entries = append(resp.Entries, StatusEntry{
			Path:     path,
			Staging:  string(st.Staging),
			Worktree: string(st.Worktree),
		})
	}
	sort.Slice(resp.Entries, func(i, j int) bool { return resp.Entries[i].Path < resp.Entries[j].Path })
	return resp, nil
}

// Commit stages every non-ignored change and records a commit. The
// repository is initialised first when absent. ErrNoChanges is returned,
// and no commit is made, when the staged tree matches HEAD.
func (t *GitTool) Commit(message string) (*CommitResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	created, err := t.Init()
	if err != nil {
		return nil, err
	}
	repo, err := gogit.PlainOpen(t.root)
	if err != nil {
		return nil, &RepositoryError{Op: "open", Root: t.root, Cause: err}
	}
	wt, err := t.worktree(repo)
	if err != nil {
		return nil, err
	}

	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return nil, &RepositoryError{Op: "add", Root: t.root, Cause: err}
	}
	status, err := wt.Status()
	if err != nil {
		return nil, &RepositoryError{Op: "status", Root: t.root, Cause: err}
	}
	if status.IsClean() {
		return nil, ErrNoChanges
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  t.config.Git.AuthorName,
			Email: t.config.Git.AuthorEmail,
			When:  t.now(),
		},
	})
	if err != nil {
		return nil, &RepositoryError{Op: "commit", Root: t.root, Cause: err}
	}

	full := hash.String()
	logrus.WithFields(logrus.Fields{"hash": full, "root": t.root}).Info("created commit")
	return &CommitResponse{
		Hash:    full,
		Short:   full[:shortHashLen],
		Message: message,
		Created: created,
	}, nil
}

// worktree returns the repository worktree with .gitignore patterns, the
// default ignored directories and the credential file loaded as excludes,
// so staging skips them.
func (t *GitTool) worktree(repo *gogit.Repository) (*gogit.Worktree, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, &RepositoryError{Op: "worktree", Root: t.root, Cause: err}
	}
	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, &RepositoryError{Op: "read ignore patterns", Root: t.root, Cause: err}
	}
	for _, dir := range ignore.DefaultDirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}
	patterns = append(patterns, gitignore.ParsePattern(config.EnvFile, nil))
	wt.Excludes = append(wt.Excludes, patterns...)
	return wt, nil
}

// branchName returns the short name of HEAD, or "" before the first commit.
func branchName(repo *gogit.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if !head.Name().IsBranch() {
		return "HEAD"
	}
	return head.Name().Short()
}
