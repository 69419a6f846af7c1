// Package intent turns free-form utterances into structured actions and
// drafts file content for the add/fix/refactor family.
package intent

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
)

// Resolver maps one utterance to exactly one Action. Input it cannot map
// resolves to models.Unknown, never to an error; errors are reserved for
// backend failures.
type Resolver interface {
	Resolve(ctx context.Context, utterance string, sc session.Context) (models.Action, error)
}
