package models

import (
	"context"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Generate sends a request to the model and returns the response.
	// It may return a partial response AND an error (e.g. a truncated
	// response with ErrorCodeContextLength).
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// GetModel returns the active model name.
	GetModel() string
}
