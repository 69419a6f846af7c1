package intent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/mattn/go-shellwords"
)

const DefaultCommitMessage = "Update project files"

const (
	questionEmpty    = "What would you like me to do?"
	questionNegation = "I only act on positive instructions. Tell me what you want done instead."
	questionCompound = "That looks like several requests at once. Please send them one at a time."
	questionPronoun  = "Which file do you mean? No file has been mentioned yet."
	questionTarget   = "Which file should I %[1]s? Name it, e.g. \"%[1]s calculator%[2]s\"."
)

var (
	negationPattern = regexp.MustCompile(`(?i)\b(don'?t|do\s+not|never)\b`)
	andThenPattern  = regexp.MustCompile(`(?i)\band\s+then\b`)

	writePattern  = regexp.MustCompile(`(?is)^write\s+(\S+?)\s*:\s?(.*)$`)
	statusPattern = regexp.MustCompile(`(?i)^(?:git\s+)?status$|^what(?:'s|\s+has|\s+is)?\s+changed$`)
	commitPattern = regexp.MustCompile(`(?i)^commit(?:\s+(?:with\s+(?:the\s+)?message\s+|-m\s+)?(.+))?$`)
	genericCommit = regexp.MustCompile(`(?i)^(?:the\s+|my\s+|all\s+)?(?:changes|everything|it|this|work)$`)
	testsPattern  = regexp.MustCompile(`(?i)^(?:verify|tests?|run\s+(?:the\s+)?(?:tests?|test\s+suite))(?:\s|$)`)
	readPattern   = regexp.MustCompile(`(?i)^(?:read|show|cat|open|view|display)\s+(?:me\s+)?(?:the\s+)?(?:file\s+)?(.+)$`)
	runPattern    = regexp.MustCompile(`(?is)^run\s+(.+)$`)

	addPattern      = regexp.MustCompile(`(?i)^(?:add|create|implement|write|build)\b`)
	fixPattern      = regexp.MustCompile(`(?i)^fix\b`)
	refactorPattern = regexp.MustCompile(`(?i)^(?:refactor|clean\s+up|tidy(?:\s+up)?)\b`)

	filenamePattern = regexp.MustCompile(`(?i)(?:^|[\s"'(\x60])((?:[\w\-.]+/)*[\w\-]+\.(?:py|js|ts|jsx|tsx|md|txt|json|yaml|yml|toml|cfg|ini|sh|bash|go))\b`)
	entityPattern   = regexp.MustCompile(`(?i)\b(?:a|an|the|new)\s+([A-Za-z][\w ]*?)\s+(?:class|module|file|function|component|script)\b`)
	referentPattern = regexp.MustCompile(`(?i)^(?:it|that|this(?:\s+file)?)$`)

	// A pronoun names a file only as the object of the edit verb or at the
	// end after "in"/"to"; "add a function that ..." is not a reference.
	editReferentPattern = regexp.MustCompile(`(?i)^(?:add|create|implement|write|build|fix|refactor|clean\s+up|tidy(?:\s+up)?)(?:\s+to)?\s+(?:it|that|this(?:\s+file)?)$|\b(?:in|to)\s+(?:it|that|this(?:\s+file)?)$`)
)

var listPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:list|ls)(?:\s+(?:all\s+)?(?:the\s+)?files?)?(?:\s+(?:in|under|of))?(?:\s+(\S+))?$`),
	regexp.MustCompile(`(?i)^(?:show|what|which)\s+(?:me\s+)?(?:all\s+)?(?:the\s+)?files(?:\s+(?:are\s+there|exist|are))?(?:\s+(?:in|under|of))?(?:\s+(\S+))?$`),
}

// KnownExecutables are first words that make an utterance a RunShell even
// without a leading "run".
var KnownExecutables = map[string]bool{
	"pytest": true, "python": true, "python3": true, "pip": true, "pip3": true,
	"npm": true, "npx": true, "node": true, "yarn": true, "pnpm": true,
	"go": true, "make": true, "cargo": true, "git": true, "echo": true,
}

// entityQualifiers are dropped from "a simple Calculator class" before the
// name is derived.
var entityQualifiers = map[string]bool{
	"simple": true, "basic": true, "new": true, "small": true, "little": true,
	"tiny": true, "quick": true, "minimal": true, "python": true, "go": true,
}

// RuleResolver classifies utterances with ordered patterns. It never
// touches the filesystem; target paths are inferred from the text and the
// session context only.
type RuleResolver struct {
	language string
}

// NewRuleResolver creates a resolver that names new files with the
// extension of the given project language.
func NewRuleResolver(language string) *RuleResolver {
	return &RuleResolver{language: language}
}

// Resolve implements Resolver. It never returns an error.
func (r *RuleResolver) Resolve(_ context.Context, utterance string, sc session.Context) (models.Action, error) {
	return r.resolve(utterance, sc), nil
}

func (r *RuleResolver) resolve(utterance string, sc session.Context) models.Action {
	raw := strings.TrimSpace(utterance)
	if raw == "" {
		return models.Unknown{Raw: utterance, Question: questionEmpty}
	}

	// Explicit writes carry literal content that must not trip the
	// compound or negation guards.
	if m := writePattern.FindStringSubmatch(raw); m != nil && looksLikePath(m[1]) {
		return models.WriteFile{Path: m[1], Content: m[2]}
	}

	if negationPattern.MatchString(raw) {
		return models.Unknown{Raw: raw, Question: questionNegation}
	}
	if andThenPattern.MatchString(raw) || hasUnquoted(raw, ';') {
		return models.Unknown{Raw: raw, Question: questionCompound}
	}

	text := strings.TrimRight(raw, ".!? ")
	if text == "" {
		return models.Unknown{Raw: raw}
	}

	switch {
	case statusPattern.MatchString(text):
		return models.Status{}
	case commitPattern.MatchString(text):
		return commitAction(commitPattern.FindStringSubmatch(text)[1])
	case testsPattern.MatchString(text):
		return models.RunTests{}
	}

	for _, p := range listPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return models.ListFiles{Path: strings.TrimSuffix(m[1], "/")}
		}
	}

	if m := readPattern.FindStringSubmatch(text); m != nil {
		return r.readAction(raw, m[1], sc)
	}

	if m := runPattern.FindStringSubmatch(raw); m != nil {
		return shellAction(raw, m[1])
	}

	if first := strings.ToLower(strings.Fields(text)[0]); KnownExecutables[first] {
		return shellAction(raw, raw)
	}

	switch {
	case addPattern.MatchString(text):
		return r.editAction(models.EditAdd, raw, sc)
	case fixPattern.MatchString(text):
		return r.editAction(models.EditFix, raw, sc)
	case refactorPattern.MatchString(text):
		return r.editAction(models.EditRefactor, raw, sc)
	}

	return models.Unknown{Raw: raw}
}

func commitAction(message string) models.Action {
	message = strings.TrimSpace(message)
	message = strings.Trim(message, `"'`)
	if message == "" || genericCommit.MatchString(message) {
		message = DefaultCommitMessage
	}
	return models.GitCommit{Message: message}
}

func (r *RuleResolver) readAction(raw, target string, sc session.Context) models.Action {
	target = strings.Trim(strings.TrimSpace(target), `"'`)
	if looksLikePath(target) {
		return models.ReadFile{Path: target}
	}
	if referentPattern.MatchString(target) {
		if sc.LastFile == "" {
			return models.Unknown{Raw: raw, Question: questionPronoun}
		}
		return models.ReadFile{Path: sc.LastFile}
	}
	return models.Unknown{Raw: raw}
}

func shellAction(raw, line string) models.Action {
	parser := shellwords.NewParser()
	argv, err := parser.Parse(line)
	if err != nil || len(argv) == 0 {
		return models.Unknown{Raw: raw, Question: "I couldn't parse that command. Check the quoting."}
	}
	// An unquoted |, &, < or > stops the parser early.
	if parser.Position >= 0 {
		return models.Unknown{Raw: raw, Question: "Pipes, redirects and command chaining are not supported. Run one command at a time."}
	}
	return models.RunShell{Command: argv[0], Args: argv[1:]}
}

func (r *RuleResolver) editAction(verb models.EditVerb, raw string, sc session.Context) models.Action {
	if m := filenamePattern.FindStringSubmatch(raw); m != nil {
		return models.EditFile{Verb: verb, Path: m[1], Instruction: raw}
	}

	if m := entityPattern.FindStringSubmatch(raw); m != nil {
		if name := entityName(m[1]); name != "" {
			return models.EditFile{Verb: verb, Path: name + Extension(r.language), Instruction: raw}
		}
	}

	if editReferentPattern.MatchString(strings.TrimRight(raw, ".!? ")) {
		if sc.LastFile == "" {
			return models.Unknown{Raw: raw, Question: questionPronoun}
		}
		return models.EditFile{Verb: verb, Path: sc.LastFile, Instruction: raw}
	}

	return models.Unknown{
		Raw:      raw,
		Question: fmt.Sprintf(questionTarget, verb, Extension(r.language)),
	}
}

func entityName(phrase string) string {
	var kept []string
	for _, word := range strings.Fields(phrase) {
		if !entityQualifiers[strings.ToLower(word)] {
			kept = append(kept, word)
		}
	}
	return SnakeCase(strings.Join(kept, " "))
}

// looksLikePath reports whether s is a single token naming a file or
// directory rather than a phrase.
func looksLikePath(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	return strings.ContainsAny(s, "./")
}

// hasUnquoted reports whether r occurs in s outside single or double quotes.
func hasUnquoted(s string, r rune) bool {
	var single, double, escaped bool
	for _, c := range s {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '\'' && !double:
			single = !single
		case c == '"' && !single:
			double = !double
		case c == r && !single && !double:
			return true
		}
	}
	return false
}
