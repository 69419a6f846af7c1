package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
	"github.com/Cyclone1070/codeagent/internal/testing/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateDrafter(t *testing.T) {
	d := NewTemplateDrafter()
	ctx := context.Background()

	t.Run("python calculator", func(t *testing.T) {
		content, err := d.Draft(ctx, models.DraftRequest{
			Verb: models.EditAdd, Path: "calculator.py", Instruction: "add a Calculator class",
			Language: config.LanguagePython,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(content, "class Calculator:\n"))
		for _, method := range []string{"def add(", "def subtract(", "def multiply(", "def divide("} {
			assert.Contains(t, content, method)
		}
		assert.Contains(t, content, "cannot divide by zero")
	})

	t.Run("generic python class", func(t *testing.T) {
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "todo_list.py", Instruction: "add a TodoList class"})
		require.NoError(t, err)
		assert.Equal(t, "class TodoList:\n    def __init__(self):\n        pass\n", content)
	})

	t.Run("go calculator takes package from directory", func(t *testing.T) {
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "calc/calculator.go", Instruction: "add it"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(content, "package calc\n"))
		assert.Contains(t, content, "type Calculator struct{}")
		assert.Contains(t, content, "ErrDivideByZero")
	})

	t.Run("go file at root is package main", func(t *testing.T) {
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "server.go", Instruction: "add it"})
		require.NoError(t, err)
		assert.Equal(t, "package main\n\n// Server is a new type.\ntype Server struct{}\n", content)
	})

	t.Run("node calculator", func(t *testing.T) {
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "calculator.js", Instruction: "add it"})
		require.NoError(t, err)
		assert.Contains(t, content, "class Calculator {")
		assert.Contains(t, content, "module.exports.Calculator = Calculator;")
	})

	t.Run("existing class is left alone", func(t *testing.T) {
		current := "class Calculator:\n    pass\n"
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "calculator.py", Instruction: "add it", Current: current})
		require.NoError(t, err)
		assert.Equal(t, current, content)
	})

	t.Run("appends to an existing file", func(t *testing.T) {
		current := "import math\n"
		content, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "calculator.py", Instruction: "add it", Current: current})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(content, "import math\n\n\nclass Calculator:"))
	})

	t.Run("fix and refactor need a model", func(t *testing.T) {
		for _, verb := range []models.EditVerb{models.EditFix, models.EditRefactor} {
			_, err := d.Draft(ctx, models.DraftRequest{Verb: verb, Path: "calculator.py", Instruction: "x", Current: "class Calculator:\n"})
			assert.ErrorIs(t, err, ErrUnsupportedDraft)
		}
	})

	t.Run("non-code files are unsupported", func(t *testing.T) {
		_, err := d.Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "README.md", Instruction: "add a readme"})
		assert.ErrorIs(t, err, ErrUnsupportedDraft)
	})
}

func TestModelDrafter(t *testing.T) {
	ctx := context.Background()
	req := models.DraftRequest{
		Verb: models.EditFix, Path: "calculator.py", Instruction: "fix divide",
		Current: "def divide(a, b):\n    return a / b\n", Language: config.LanguagePython,
	}

	t.Run("returns full content with trailing newline", func(t *testing.T) {
		p := replying("```python\ndef divide(a, b):\n    if b == 0:\n        raise ValueError()\n    return a / b\n```")
		content, err := NewModelDrafter(p, 0).Draft(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "def divide(a, b):\n    if b == 0:\n        raise ValueError()\n    return a / b\n", content)

		require.Len(t, p.Requests(), 1)
		assert.Equal(t, draftSystemPrompt, p.Requests()[0].System)
		assert.Contains(t, p.Requests()[0].Prompt, "Task: fix")
		assert.Contains(t, p.Requests()[0].Prompt, "Current content:\n"+req.Current)
		assert.Nil(t, p.Requests()[0].ResponseSchema)
	})

	t.Run("caps reply length", func(t *testing.T) {
		p := replying("def divide(a, b):\n    return a / b if b else 0")
		_, err := NewModelDrafter(p, 4096).Draft(ctx, req)
		require.NoError(t, err)

		genConfig := p.Requests()[0].Config
		require.NotNil(t, genConfig)
		require.NotNil(t, genConfig.MaxOutputTokens)
		assert.Equal(t, int32(4096), *genConfig.MaxOutputTokens)
	})

	t.Run("zero leaves the model default", func(t *testing.T) {
		p := replying("def divide(a, b):\n    return a / b if b else 0")
		_, err := NewModelDrafter(p, 0).Draft(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, p.Requests()[0].Config.MaxOutputTokens)
	})

	t.Run("unchanged reply returns current content verbatim", func(t *testing.T) {
		content, err := NewModelDrafter(replying("  "+req.Current+"\n\n"), 0).Draft(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req.Current, content)
	})

	t.Run("new file prompt", func(t *testing.T) {
		p := replying("class Calculator:\n    pass")
		_, err := NewModelDrafter(p, 0).Draft(ctx, models.DraftRequest{Verb: models.EditAdd, Path: "calculator.py", Instruction: "add"})
		require.NoError(t, err)
		assert.Contains(t, p.Requests()[0].Prompt, "does not exist yet")
	})

	t.Run("empty reply", func(t *testing.T) {
		_, err := NewModelDrafter(replying("```\n```"), 0).Draft(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyDraft)
	})

	t.Run("provider error is wrapped", func(t *testing.T) {
		p := testhelpers.NewMockProvider().WithError(&provider.ProviderError{Code: provider.ErrorCodeRateLimit, Message: "slow down", Retryable: true})
		_, err := NewModelDrafter(p, 0).Draft(ctx, req)
		var perr *provider.ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, provider.ErrorCodeRateLimit, perr.Code)
	})

	t.Run("nil provider panics", func(t *testing.T) {
		assert.Panics(t, func() { NewModelDrafter(nil, 0) })
	})
}
