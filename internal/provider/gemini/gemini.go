package gemini

import (
	"context"

	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
	"github.com/sirupsen/logrus"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	if modelName == "" {
		panic("modelName is required")
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a request to the Gemini API and returns the response.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	model := p.modelName
	contents := toGeminiContents(req.Prompt)
	config := toGeminiConfig(req)

	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		mapped := mapGeminiError(err)
		logrus.WithError(mapped).WithField("model", model).Debug("gemini request failed")
		return nil, mapped
	}

	return fromGeminiResponse(resp, model)
}

// GetModel returns the active model name.
func (p *GeminiProvider) GetModel() string {
	return p.modelName
}
