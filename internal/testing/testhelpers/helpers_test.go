package testhelpers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/codeagent/internal/provider/models"
)

func TestMockProvider_Queue(t *testing.T) {
	boom := errors.New("boom")
	p := NewMockProvider().WithModel("m").WithTextResponse("one").WithError(boom)
	ctx := context.Background()

	resp, err := p.Generate(ctx, &models.GenerateRequest{Prompt: "a"})
	if err != nil || resp.Text != "one" || resp.Metadata.ModelUsed != "m" {
		t.Fatalf("unexpected first response: %+v, %v", resp, err)
	}
	if _, err := p.Generate(ctx, &models.GenerateRequest{Prompt: "b"}); !errors.Is(err, boom) {
		t.Errorf("expected queued error, got %v", err)
	}
	if _, err := p.Generate(ctx, &models.GenerateRequest{Prompt: "c"}); !errors.Is(err, ErrNoResponses) {
		t.Errorf("expected ErrNoResponses, got %v", err)
	}

	reqs := p.Requests()
	if len(reqs) != 3 || reqs[0].Prompt != "a" || reqs[2].Prompt != "c" {
		t.Errorf("unexpected requests: %+v", reqs)
	}
}

func TestCreateTestWorkspace(t *testing.T) {
	root := CreateTestWorkspace(t, map[string]string{"src/a.py": "x = 1\n"})
	got, err := os.ReadFile(filepath.Join(root, "src", "a.py"))
	if err != nil || string(got) != "x = 1\n" {
		t.Fatalf("unexpected workspace content: %q, %v", got, err)
	}
}
