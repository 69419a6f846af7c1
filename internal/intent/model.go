package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/sirupsen/logrus"
)

const classifySystemPrompt = `You classify one instruction for a coding agent working inside a single project directory.
Reply with exactly one JSON object describing a single action. Never combine actions.
Kinds:
- read_file: show a file. Needs path.
- write_file: write literal content to a file. Needs path and content.
- edit_file: add, fix or refactor code. Needs verb (add|fix|refactor), path and instruction.
- list_files: list project files. Optional path.
- run_shell: run one program. Needs command and args; no pipes or redirects.
- run_tests: run the project's test suite.
- git_commit: commit all changes. Needs message.
- status: show the working tree status.
- unknown: anything else, including negated or multi-step requests. Set question to a short clarification.
Paths are relative to the project root. When the instruction refers to "it" or "that", use the last file if one is given.`

const (
	KindReadFile  = "read_file"
	KindWriteFile = "write_file"
	KindEditFile  = "edit_file"
	KindListFiles = "list_files"
	KindRunShell  = "run_shell"
	KindRunTests  = "run_tests"
	KindGitCommit = "git_commit"
	KindStatus    = "status"
	KindUnknown   = "unknown"
)

// actionSchema is the JSON object the model must return.
var actionSchema = &provider.ParameterSchema{
	Type: "object",
	Properties: map[string]provider.PropertySchema{
		"kind": {
			Type:        "string",
			Description: "The action to perform.",
			Enum: []string{
				KindReadFile, KindWriteFile, KindEditFile, KindListFiles,
				KindRunShell, KindRunTests, KindGitCommit, KindStatus, KindUnknown,
			},
		},
		"path":        {Type: "string", Description: "Target file or directory, relative to the project root."},
		"content":     {Type: "string", Description: "Literal file content for write_file."},
		"verb":        {Type: "string", Enum: []string{string(models.EditAdd), string(models.EditFix), string(models.EditRefactor)}},
		"instruction": {Type: "string", Description: "What to change, for edit_file."},
		"command":     {Type: "string", Description: "Executable name for run_shell."},
		"args":        {Type: "array", Items: &provider.PropertySchema{Type: "string"}},
		"message":     {Type: "string", Description: "Commit message for git_commit."},
		"question":    {Type: "string", Description: "Clarifying question for unknown."},
	},
	Required: []string{"kind"},
}

// classification is the decoded model reply.
type classification struct {
	Kind        string   `json:"kind"`
	Path        string   `json:"path"`
	Content     string   `json:"content"`
	Verb        string   `json:"verb"`
	Instruction string   `json:"instruction"`
	Command     string   `json:"command"`
	Args        []string `json:"args"`
	Message     string   `json:"message"`
	Question    string   `json:"question"`
}

// ModelResolver asks a language model to classify an utterance into the
// same closed action set the rule resolver produces.
type ModelResolver struct {
	provider provider.Provider
}

// NewModelResolver creates a resolver backed by p.
func NewModelResolver(p provider.Provider) *ModelResolver {
	if p == nil {
		panic("provider is required")
	}
	return &ModelResolver{provider: p}
}

// Resolve implements Resolver. Provider and decode failures are returned as
// errors; a reply that decodes but does not validate becomes Unknown.
func (r *ModelResolver) Resolve(ctx context.Context, utterance string, sc session.Context) (models.Action, error) {
	temperature := float32(0)
	resp, err := r.provider.Generate(ctx, &provider.GenerateRequest{
		System:         classifySystemPrompt,
		Prompt:         classifyPrompt(utterance, sc),
		Config:         &provider.GenerateConfig{Temperature: &temperature},
		ResponseSchema: actionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("classify utterance: %w", err)
	}

	var c classification
	if err := json.Unmarshal([]byte(stripFences(resp.Text)), &c); err != nil {
		return nil, &DecodeError{Raw: resp.Text, Cause: err}
	}

	action, err := c.action(utterance)
	if err != nil {
		return nil, err
	}
	if err := action.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{"kind": c.Kind, "action": action.String()}).
			WithError(err).Debug("model classification incomplete")
		return models.Unknown{Raw: utterance, Question: "I couldn't work out all the details of that. Could you rephrase it?"}, nil
	}
	return action, nil
}

func classifyPrompt(utterance string, sc session.Context) string {
	var b strings.Builder
	if sc.LastFile != "" {
		fmt.Fprintf(&b, "Last file: %s\n", sc.LastFile)
	}
	if sc.LastAction != nil {
		fmt.Fprintf(&b, "Last action: %s\n", sc.LastAction.String())
	}
	fmt.Fprintf(&b, "Instruction: %s", utterance)
	return b.String()
}

func (c classification) action(raw string) (models.Action, error) {
	switch c.Kind {
	case KindReadFile:
		return models.ReadFile{Path: c.Path}, nil
	case KindWriteFile:
		return models.WriteFile{Path: c.Path, Content: c.Content}, nil
	case KindEditFile:
		instruction := c.Instruction
		if instruction == "" {
			instruction = raw
		}
		return models.EditFile{Verb: models.EditVerb(c.Verb), Path: c.Path, Instruction: instruction}, nil
	case KindListFiles:
		return models.ListFiles{Path: c.Path}, nil
	case KindRunShell:
		return models.RunShell{Command: c.Command, Args: c.Args}, nil
	case KindRunTests:
		return models.RunTests{}, nil
	case KindGitCommit:
		message := c.Message
		if strings.TrimSpace(message) == "" {
			message = DefaultCommitMessage
		}
		return models.GitCommit{Message: message}, nil
	case KindStatus:
		return models.Status{}, nil
	case KindUnknown:
		return models.Unknown{Raw: raw, Question: c.Question}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

// stripFences removes a surrounding markdown code fence, which some models
// add even when JSON output is requested.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
