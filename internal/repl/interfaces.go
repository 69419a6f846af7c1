package repl

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
)

type resolver interface {
	Resolve(ctx context.Context, utterance string, sc session.Context) (models.Action, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, sess *session.Session, utterance string, action models.Action) models.Outcome
}
