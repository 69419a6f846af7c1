package repl

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# codeagent

Type an instruction, for example:

- ` + "`add a Calculator class`" + `, ` + "`fix calculator.py`" + `, ` + "`refactor it`" + `
- ` + "`read calculator.py`" + `, ` + "`list files in src`" + `
- ` + "`run pytest -q`" + ` (only allow-listed commands run)
- ` + "`verify`" + `, ` + "`commit <message>`" + `, ` + "`status`" + `

Commands: ` + "`/verify`" + `, ` + "`/commit [message]`" + `, ` + "`/status`" + `, ` + "`/history`" + `, ` + "`/help`" + `, ` + "`/quit`" + `
`

// Renderer writes prompts and outcomes. In plain mode it emits unstyled
// text, which keeps transcripts stable for replay and tests.
type Renderer struct {
	out      io.Writer
	plain    bool
	markdown *glamour.TermRenderer

	promptStyle  lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	addStyle     lipgloss.Style
	removeStyle  lipgloss.Style
}

// NewRenderer creates a styled renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	markdown, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return &Renderer{
		out:      out,
		markdown: markdown,

		promptStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			Bold(true),
		successStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		addStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		removeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}),
	}
}

// NewPlainRenderer creates a renderer without colour or markdown.
func NewPlainRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, plain: true}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) Prompt() {
	fmt.Fprint(r.out, r.style(r.promptStyle, "> "))
}

func (r *Renderer) Message(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *Renderer) Notice(text string) {
	fmt.Fprintln(r.out, r.style(r.dimStyle, text))
}

// Welcome prints the banner shown when a session starts.
func (r *Renderer) Welcome(sess *session.Session, model string) {
	line := fmt.Sprintf("codeagent session %s in %s", sess.ID(), sess.WorkingDir())
	if model != "" {
		line += fmt.Sprintf(" (model %s)", model)
	}
	r.Notice(line)
	r.Notice("Type /help for examples, /quit to leave.")
}

func (r *Renderer) Help() {
	r.Markdown(helpMarkdown)
}

// Markdown renders md with glamour, falling back to the raw text.
func (r *Renderer) Markdown(md string) {
	if r.plain || r.markdown == nil {
		fmt.Fprint(r.out, ensureNewline(md))
		return
	}
	rendered, err := r.markdown.Render(md)
	if err != nil {
		fmt.Fprint(r.out, ensureNewline(md))
		return
	}
	fmt.Fprint(r.out, rendered)
}

// Outcome prints the summary line followed by the artifact, if any.
func (r *Renderer) Outcome(o models.Outcome) {
	if o.Success {
		fmt.Fprintln(r.out, r.style(r.successStyle, "✔ "+o.Summary))
	} else {
		line := r.style(r.errorStyle, "✘ "+o.Summary)
		if o.Kind != models.KindNone {
			line += " " + r.style(r.dimStyle, "["+string(o.Kind)+"]")
		}
		fmt.Fprintln(r.out, line)
	}

	switch a := o.Artifact.(type) {
	case models.ContentArtifact:
		r.content(a)
	case models.DiffArtifact:
		r.diff(a)
	case models.OutputArtifact:
		r.output(a)
	case models.ListingArtifact:
		r.listing(a)
	case models.StatusArtifact:
		r.status(a)
	case models.CommitArtifact, nil:
	}
}

func (r *Renderer) content(a models.ContentArtifact) {
	if r.plain {
		fmt.Fprint(r.out, ensureNewline(a.Content))
		return
	}
	fence := "```"
	for strings.Contains(a.Content, fence) {
		fence += "`"
	}
	r.Markdown(fence + fenceLanguage(a.Path) + "\n" + ensureNewline(a.Content) + fence + "\n")
}

func (r *Renderer) diff(a models.DiffArtifact) {
	if a.Diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(a.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			line = r.style(r.dimStyle, line)
		case strings.HasPrefix(line, "+"):
			line = r.style(r.addStyle, line)
		case strings.HasPrefix(line, "-"):
			line = r.style(r.removeStyle, line)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *Renderer) output(a models.OutputArtifact) {
	if a.Stdout != "" {
		fmt.Fprint(r.out, ensureNewline(a.Stdout))
	}
	if a.Stderr != "" {
		fmt.Fprint(r.out, r.style(r.dimStyle, ensureNewline(a.Stderr)))
	}
	if a.Truncated {
		r.Notice("(output truncated)")
	}
}

func (r *Renderer) listing(a models.ListingArtifact) {
	for _, p := range a.Paths {
		fmt.Fprintln(r.out, p)
	}
	if a.Truncated {
		r.Notice(fmt.Sprintf("(listing truncated after %d entries)", len(a.Paths)))
	}
}

func (r *Renderer) status(a models.StatusArtifact) {
	for _, e := range a.Entries {
		fmt.Fprintf(r.out, "%s%s %s\n", e.Staging, e.Worktree, e.Path)
	}
}

// History prints one line per recorded turn, oldest first.
func (r *Renderer) History(turns []session.Turn) {
	if len(turns) == 0 {
		r.Notice("No history yet.")
		return
	}
	for i, t := range turns {
		mark := "✔"
		if !t.Outcome.Success {
			mark = "✘"
		}
		fmt.Fprintf(r.out, "%d. %s %s: %s\n", i+1, mark, t.Utterance, t.Outcome.Summary)
	}
}

func fenceLanguage(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".py":
		return "python"
	case ".go":
		return "go"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".md":
		return "markdown"
	case ".sh", ".bash":
		return "bash"
	default:
		return ""
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
