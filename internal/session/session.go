package session

import (
	"slices"
	"sync"
	"time"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/google/uuid"
)

// Turn is one recorded utterance with the action it resolved to and the
// outcome of dispatching it.
type Turn struct {
	Utterance string
	Action    models.Action
	Outcome   models.Outcome
	At        time.Time
}

// Context is the read-only view of a session handed to intent resolution.
type Context struct {
	WorkingDir string
	LastFile   string // "" when no file has been mentioned yet
	LastAction models.Action
	Turns      int
}

// Session is the per-run state of one agent process. It is created at
// start, appended to after every turn and discarded at exit.
type Session struct {
	id         string
	workingDir string
	policy     *models.Policy
	startedAt  time.Time

	mu       sync.Mutex
	turns    []Turn
	lastFile string
}

// New creates a session rooted at workingDir. A nil policy denies every
// shell command.
func New(workingDir string, policy *models.Policy) *Session {
	if workingDir == "" {
		panic("workingDir is required")
	}
	if policy == nil {
		policy = &models.Policy{}
	}
	now := time.Now().UTC()
	return &Session{
		id:         newID(now),
		workingDir: workingDir,
		policy:     policy,
		startedAt:  now,
	}
}

// newID returns "<UTC timestamp>-<first uuid group>".
func newID(now time.Time) string {
	return now.Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
}

func (s *Session) ID() string             { return s.id }
func (s *Session) WorkingDir() string     { return s.workingDir }
func (s *Session) Policy() *models.Policy { return s.policy }
func (s *Session) StartedAt() time.Time   { return s.startedAt }

// Record appends a turn. Any path the action names becomes the
// last-mentioned file, whatever the outcome.
func (s *Session) Record(utterance string, action models.Action, outcome models.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, Turn{
		Utterance: utterance,
		Action:    action,
		Outcome:   outcome,
		At:        time.Now(),
	})
	if p, ok := models.TargetPath(action); ok && p != "" {
		s.lastFile = p
	}
}

// Turns returns a copy of the history in execution order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.turns)
}

// Context returns a snapshot for intent resolution.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Context{
		WorkingDir: s.workingDir,
		LastFile:   s.lastFile,
		Turns:      len(s.turns),
	}
	if len(s.turns) > 0 {
		c.LastAction = s.turns[len(s.turns)-1].Action
	}
	return c
}
