package intent

import (
	"context"

	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/Cyclone1070/codeagent/internal/testing/testhelpers"
)

func replying(text string) *testhelpers.MockProvider {
	return testhelpers.NewMockProvider().WithTextResponse(text)
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, utterance string, sc session.Context) (models.Action, error)
	Calls       int
}

func (m *mockResolver) Resolve(ctx context.Context, utterance string, sc session.Context) (models.Action, error) {
	m.Calls++
	return m.ResolveFunc(ctx, utterance, sc)
}
