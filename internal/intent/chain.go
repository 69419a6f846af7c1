package intent

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/sirupsen/logrus"
)

// ChainResolver consults the rule resolver first and the model only when
// the rules produced a plain Unknown. Unknowns that already carry a
// question (negations, compound requests, unresolved pronouns) are final.
type ChainResolver struct {
	rules    Resolver
	fallback Resolver
}

// NewChainResolver creates a chain. fallback may be nil, in which case the
// chain behaves exactly like rules.
func NewChainResolver(rules, fallback Resolver) *ChainResolver {
	if rules == nil {
		panic("rules is required")
	}
	return &ChainResolver{rules: rules, fallback: fallback}
}

// Resolve implements Resolver.
func (c *ChainResolver) Resolve(ctx context.Context, utterance string, sc session.Context) (models.Action, error) {
	action, err := c.rules.Resolve(ctx, utterance, sc)
	if err != nil {
		return nil, err
	}

	unknown, ok := action.(models.Unknown)
	if !ok || unknown.Question != "" || c.fallback == nil {
		return action, nil
	}

	fromModel, err := c.fallback.Resolve(ctx, utterance, sc)
	if err != nil {
		logrus.WithError(err).Warn("model resolver failed, keeping rule result")
		return action, nil
	}
	return fromModel, nil
}
