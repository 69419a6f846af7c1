package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPathRequired     = errors.New("path is required")
	ErrCommandRequired  = errors.New("command is required")
	ErrMessageRequired  = errors.New("commit message is required")
	ErrInvalidEditVerb  = errors.New("edit verb must be add, fix or refactor")
	ErrInstructionEmpty = errors.New("instruction is required")
)

// Action is one fully resolved user intent, ready for dispatch.
// The set of variants is closed; the Dispatcher handles each one explicitly.
type Action interface {
	isAction()
	// Validate reports whether every field the variant needs is present.
	Validate() error
	// String is a short human label, e.g. "read a.txt".
	String() string
}

type ReadFile struct {
	Path string
}

type WriteFile struct {
	Path    string
	Content string
}

// EditVerb selects the flavour of a drafted edit.
type EditVerb string

const (
	EditAdd      EditVerb = "add"
	EditFix      EditVerb = "fix"
	EditRefactor EditVerb = "refactor"
)

// EditFile is the add/fix/refactor family: new content for Path is drafted
// from Instruction at dispatch time, then written like WriteFile.
type EditFile struct {
	Verb        EditVerb
	Path        string
	Instruction string
}

type ListFiles struct {
	Path string
}

// RunShell carries an argument vector: Command is the executable and Args are
// passed to it verbatim, never re-parsed by a shell.
type RunShell struct {
	Command string
	Args    []string
}

type RunTests struct{}

type GitCommit struct {
	Message string
}

type Status struct{}

// Unknown is the terminal state for input that could not be resolved.
// Question, when set, is the clarification to show the user.
type Unknown struct {
	Raw      string
	Question string
}

func (ReadFile) isAction()  {}
func (WriteFile) isAction() {}
func (EditFile) isAction()  {}
func (ListFiles) isAction() {}
func (RunShell) isAction()  {}
func (RunTests) isAction()  {}
func (GitCommit) isAction() {}
func (Status) isAction()    {}
func (Unknown) isAction()   {}

func (a ReadFile) Validate() error {
	if strings.TrimSpace(a.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

func (a WriteFile) Validate() error {
	if strings.TrimSpace(a.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

func (a EditFile) Validate() error {
	switch a.Verb {
	case EditAdd, EditFix, EditRefactor:
	default:
		return ErrInvalidEditVerb
	}
	if strings.TrimSpace(a.Path) == "" {
		return ErrPathRequired
	}
	if strings.TrimSpace(a.Instruction) == "" {
		return ErrInstructionEmpty
	}
	return nil
}

func (a ListFiles) Validate() error { return nil }

func (a RunShell) Validate() error {
	if strings.TrimSpace(a.Command) == "" {
		return ErrCommandRequired
	}
	return nil
}

func (a RunTests) Validate() error { return nil }

func (a GitCommit) Validate() error {
	if strings.TrimSpace(a.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

func (a Status) Validate() error  { return nil }
func (a Unknown) Validate() error { return nil }

func (a ReadFile) String() string  { return "read " + a.Path }
func (a WriteFile) String() string { return "write " + a.Path }
func (a EditFile) String() string  { return fmt.Sprintf("%s %s", a.Verb, a.Path) }
func (a ListFiles) String() string {
	if a.Path == "" {
		return "list ."
	}
	return "list " + a.Path
}
func (a RunShell) String() string  { return strings.Join(a.Argv(), " ") }
func (a RunTests) String() string  { return "run tests" }
func (a GitCommit) String() string { return fmt.Sprintf("commit %q", a.Message) }
func (a Status) String() string    { return "status" }
func (a Unknown) String() string   { return "unknown" }

// Argv returns the full argument vector.
func (a RunShell) Argv() []string {
	return append([]string{a.Command}, a.Args...)
}

// TargetPath returns the file an action mentions, if any.
func TargetPath(a Action) (string, bool) {
	switch v := a.(type) {
	case ReadFile:
		return v.Path, v.Path != ""
	case WriteFile:
		return v.Path, v.Path != ""
	case EditFile:
		return v.Path, v.Path != ""
	}
	return "", false
}
