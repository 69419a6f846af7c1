// Package repl runs the interactive loop: read a line, resolve it to an
// action, dispatch it and print the outcome.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/intent"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/sirupsen/logrus"
)

// maxLineBytes bounds one input line; "write <path>: <content>" can be long.
const maxLineBytes = 1 << 20

// REPL is one interactive session over an input and output stream.
type REPL struct {
	in         io.Reader
	renderer   *Renderer
	resolver   resolver
	dispatcher dispatcher
	session    *session.Session
}

// New creates a REPL. All dependencies are required.
func New(in io.Reader, renderer *Renderer, resolver resolver, dispatcher dispatcher, sess *session.Session) *REPL {
	if in == nil {
		panic("in is required")
	}
	if renderer == nil {
		panic("renderer is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if dispatcher == nil {
		panic("dispatcher is required")
	}
	if sess == nil {
		panic("session is required")
	}
	return &REPL{
		in:         in,
		renderer:   renderer,
		resolver:   resolver,
		dispatcher: dispatcher,
		session:    sess,
	}
}

// Run reads lines until quit, end of input or cancellation. End of input
// and quit both return nil.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.renderer.Prompt()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			r.renderer.Message("")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := r.handle(ctx, line); quit {
			r.renderer.Notice("Bye.")
			return nil
		}
	}
}

// handle processes one non-empty line and reports whether to stop.
func (r *REPL) handle(ctx context.Context, line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit", "/quit", "/exit":
		return true
	}

	if strings.HasPrefix(line, "/") {
		r.command(ctx, line)
		return false
	}

	action, err := r.resolver.Resolve(ctx, line, r.session.Context())
	if err != nil {
		logrus.WithError(err).WithField("utterance", line).Warn("resolution failed")
		action = models.Unknown{Raw: line, Question: "I couldn't understand that. Could you rephrase it?"}
	}
	r.dispatch(ctx, line, action)
	return false
}

func (r *REPL) command(ctx context.Context, line string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/help":
		r.renderer.Help()
	case "/history":
		r.renderer.History(r.session.Turns())
	case "/verify":
		r.dispatch(ctx, line, models.RunTests{})
	case "/status":
		r.dispatch(ctx, line, models.Status{})
	case "/commit":
		message := strings.Trim(arg, `"'`)
		if message == "" {
			message = intent.DefaultCommitMessage
		}
		r.dispatch(ctx, line, models.GitCommit{Message: message})
	default:
		r.renderer.Notice(fmt.Sprintf("Unknown command %s. Type /help for the list.", name))
	}
}

func (r *REPL) dispatch(ctx context.Context, line string, action models.Action) {
	outcome := r.dispatcher.Dispatch(ctx, r.session, line, action)
	r.renderer.Outcome(outcome)
}
