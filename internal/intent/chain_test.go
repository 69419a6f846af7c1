package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainResolver(t *testing.T) {
	ctx := context.Background()
	rules := NewRuleResolver(config.LanguagePython)
	modelSays := func(action models.Action, err error) *mockResolver {
		return &mockResolver{ResolveFunc: func(context.Context, string, session.Context) (models.Action, error) {
			return action, err
		}}
	}

	t.Run("rule hit skips the model", func(t *testing.T) {
		fallback := modelSays(models.Status{}, nil)
		action, err := NewChainResolver(rules, fallback).Resolve(ctx, "read a.txt", session.Context{})
		require.NoError(t, err)
		assert.Equal(t, models.ReadFile{Path: "a.txt"}, action)
		assert.Zero(t, fallback.Calls)
	})

	t.Run("plain unknown asks the model", func(t *testing.T) {
		fallback := modelSays(models.ListFiles{Path: "docs"}, nil)
		action, err := NewChainResolver(rules, fallback).Resolve(ctx, "which docs do we have", session.Context{})
		require.NoError(t, err)
		assert.Equal(t, models.ListFiles{Path: "docs"}, action)
		assert.Equal(t, 1, fallback.Calls)
	})

	t.Run("guarded unknown is final", func(t *testing.T) {
		fallback := modelSays(models.RunShell{Command: "rm"}, nil)
		for _, utterance := range []string{"don't delete anything", "read a.txt and then commit", "fix it"} {
			action, err := NewChainResolver(rules, fallback).Resolve(ctx, utterance, session.Context{})
			require.NoError(t, err)
			assert.IsType(t, models.Unknown{}, action, utterance)
		}
		assert.Zero(t, fallback.Calls)
	})

	t.Run("model failure keeps the rule result", func(t *testing.T) {
		fallback := modelSays(nil, errors.New("quota exceeded"))
		action, err := NewChainResolver(rules, fallback).Resolve(ctx, "sing me a song", session.Context{})
		require.NoError(t, err)
		assert.Equal(t, models.Unknown{Raw: "sing me a song"}, action)
	})

	t.Run("no model configured", func(t *testing.T) {
		action, err := NewChainResolver(rules, nil).Resolve(ctx, "sing me a song", session.Context{})
		require.NoError(t, err)
		assert.Equal(t, models.Unknown{Raw: "sing me a song"}, action)
	})

	t.Run("rules are required", func(t *testing.T) {
		assert.Panics(t, func() { NewChainResolver(nil, nil) })
	})
}
