// Package testhelpers provides shared utilities for integration testing
package testhelpers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Cyclone1070/codeagent/internal/provider/models"
)

// ErrNoResponses is returned by MockProvider once its queue is empty.
var ErrNoResponses = errors.New("mock provider: no responses queued")

type queued struct {
	text string
	err  error
}

// MockProvider is a scripted stand-in for the Gemini provider. Responses
// are returned in the order they were queued.
type MockProvider struct {
	mu        sync.Mutex
	responses []queued
	requests  []*models.GenerateRequest
	modelName string

	// OnGenerateCalled is a callback for observing Generate calls
	OnGenerateCalled func(*models.GenerateRequest)
}

// NewMockProvider creates a new mock provider with default settings
func NewMockProvider() *MockProvider {
	return &MockProvider{modelName: "mock-model"}
}

// WithTextResponse adds a text response to the queue
func (m *MockProvider) WithTextResponse(text string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, queued{text: text})
	return m
}

// WithError adds a failure to the queue
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, queued{err: err})
	return m
}

// WithModel sets the name GetModel reports
func (m *MockProvider) WithModel(name string) *MockProvider {
	m.modelName = name
	return m
}

// Generate implements the Provider interface
func (m *MockProvider) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if m.OnGenerateCalled != nil {
		m.OnGenerateCalled(req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.responses) == 0 {
		return nil, ErrNoResponses
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &models.GenerateResponse{
		Text:     next.text,
		Metadata: models.ResponseMetadata{ModelUsed: m.modelName},
	}, nil
}

// GetModel implements the Provider interface
func (m *MockProvider) GetModel() string {
	return m.modelName
}

// Requests returns a copy of every request Generate received
func (m *MockProvider) Requests() []*models.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.GenerateRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CreateTestWorkspace creates a temporary workspace holding files, keyed by
// slash-separated relative path.
func CreateTestWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return root
}
