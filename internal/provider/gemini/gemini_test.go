package gemini

import (
	"context"
	"errors"
	"testing"

	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
	"google.golang.org/genai"
)

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "thinking...", Thought: true},
						{Text: text},
					},
				},
				FinishReason: reason,
			},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	}
}

// TestGenerate_HappyPath_TextResponse tests successful text generation.
func TestGenerate_HappyPath_TextResponse(t *testing.T) {
	var gotModel string
	var gotContents []*genai.Content
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotContents = contents
			return textResponse("Hello there!", genai.FinishReasonStop), nil
		},
	}

	p := New(mockClient, "gemini-mock")
	resp, err := p.Generate(context.Background(), &provider.GenerateRequest{Prompt: "Hello"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Text != "Hello there!" {
		t.Errorf("expected 'Hello there!', got %q", resp.Text)
	}
	if resp.Metadata.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", resp.Metadata.TotalTokens)
	}
	if resp.Metadata.ModelUsed != "gemini-mock" || gotModel != "gemini-mock" {
		t.Errorf("expected model gemini-mock, got %q / %q", resp.Metadata.ModelUsed, gotModel)
	}
	if len(gotContents) != 1 || gotContents[0].Parts[0].Text != "Hello" {
		t.Errorf("expected a single user turn with the prompt, got %+v", gotContents)
	}
}

// TestGenerate_StructuredOutput tests that a response schema switches on JSON mode.
func TestGenerate_StructuredOutput(t *testing.T) {
	var gotConfig *genai.GenerateContentConfig
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotConfig = config
			return textResponse(`{"kind":"status"}`, genai.FinishReasonStop), nil
		},
	}

	temp := float32(0)
	maxTokens := int32(2048)
	p := New(mockClient, "gemini-mock")
	_, err := p.Generate(context.Background(), &provider.GenerateRequest{
		System: "classify",
		Prompt: "status",
		Config: &provider.GenerateConfig{Temperature: &temp, MaxOutputTokens: &maxTokens},
		ResponseSchema: &provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"kind": {Type: "string", Enum: []string{"status", "commit"}},
				"args": {Type: "array", Items: &provider.PropertySchema{Type: "string"}},
			},
			Required: []string{"kind"},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotConfig.ResponseMIMEType != "application/json" {
		t.Errorf("expected JSON mime type, got %q", gotConfig.ResponseMIMEType)
	}
	if gotConfig.SystemInstruction == nil || gotConfig.SystemInstruction.Parts[0].Text != "classify" {
		t.Errorf("expected system instruction, got %+v", gotConfig.SystemInstruction)
	}
	if gotConfig.Temperature == nil || *gotConfig.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", gotConfig.Temperature)
	}
	if gotConfig.MaxOutputTokens != 2048 {
		t.Errorf("expected max output tokens 2048, got %d", gotConfig.MaxOutputTokens)
	}
	schema := gotConfig.ResponseSchema
	if schema == nil || schema.Type != genai.TypeObject {
		t.Fatalf("expected object schema, got %+v", schema)
	}
	if got := schema.Properties["kind"].Enum; len(got) != 2 {
		t.Errorf("expected enum to carry over, got %v", got)
	}
	if items := schema.Properties["args"].Items; items == nil || items.Type != genai.TypeString {
		t.Errorf("expected string items, got %+v", items)
	}
}

// TestGenerate_ErrorMapping tests API error handling.
func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      provider.ErrorCode
		retryable bool
	}{
		{name: "rate limit", err: &genai.APIError{Code: 429, Message: "Rate limit exceeded"}, code: provider.ErrorCodeRateLimit, retryable: true},
		{name: "auth", err: genai.APIError{Code: 401, Message: "bad key"}, code: provider.ErrorCodeAuth},
		{name: "forbidden", err: &genai.APIError{Code: 403}, code: provider.ErrorCodeAuth},
		{name: "invalid", err: &genai.APIError{Code: 400, Message: "bad schema"}, code: provider.ErrorCodeInvalidRequest},
		{name: "unavailable", err: &genai.APIError{Code: 503}, code: provider.ErrorCodeUnavailable, retryable: true},
		{name: "deadline", err: context.DeadlineExceeded, code: provider.ErrorCodeTimeout, retryable: true},
		{name: "transport", err: errors.New("connection reset"), code: provider.ErrorCodeNetwork, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return nil, tt.err
				},
			}

			_, err := New(mockClient, "gemini-mock").Generate(context.Background(), &provider.GenerateRequest{Prompt: "Hello"})

			var providerErr *provider.ProviderError
			if !errors.As(err, &providerErr) {
				t.Fatalf("expected ProviderError, got %T", err)
			}
			if providerErr.Code != tt.code {
				t.Errorf("expected %v, got %v", tt.code, providerErr.Code)
			}
			if providerErr.Retryable != tt.retryable {
				t.Errorf("expected retryable=%v", tt.retryable)
			}
		})
	}
}

// TestGenerate_EdgeCases tests empty, blocked and truncated responses.
func TestGenerate_EdgeCases(t *testing.T) {
	respond := func(resp *genai.GenerateContentResponse) *MockGeminiClient {
		return &MockGeminiClient{
			GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return resp, nil
			},
		}
	}

	t.Run("no candidates", func(t *testing.T) {
		_, err := New(respond(&genai.GenerateContentResponse{}), "m").Generate(context.Background(), &provider.GenerateRequest{})
		if !errors.Is(err, provider.ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("safety block", func(t *testing.T) {
		_, err := New(respond(textResponse("", genai.FinishReasonSafety)), "m").Generate(context.Background(), &provider.GenerateRequest{})
		if !errors.Is(err, provider.ErrContentBlocked) {
			t.Errorf("expected ErrContentBlocked, got %v", err)
		}
	})

	t.Run("max tokens returns partial text", func(t *testing.T) {
		resp, err := New(respond(textResponse("partial", genai.FinishReasonMaxTokens)), "m").Generate(context.Background(), &provider.GenerateRequest{})
		var providerErr *provider.ProviderError
		if !errors.As(err, &providerErr) || providerErr.Code != provider.ErrorCodeContextLength {
			t.Fatalf("expected context length error, got %v", err)
		}
		if resp == nil || resp.Text != "partial" {
			t.Errorf("expected partial text, got %+v", resp)
		}
	})

	t.Run("nil content", func(t *testing.T) {
		resp, err := New(respond(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
		}), "m").Generate(context.Background(), &provider.GenerateRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "" {
			t.Errorf("expected empty text, got %q", resp.Text)
		}
	})
}

func TestGetModel(t *testing.T) {
	p := New(&MockGeminiClient{}, "gemini-a")
	if p.GetModel() != "gemini-a" {
		t.Errorf("expected gemini-a, got %q", p.GetModel())
	}
}
