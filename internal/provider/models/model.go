package models

// GenerateRequest encapsulates all parameters for a generation request.
type GenerateRequest struct {
	// System is the instruction that frames every turn.
	System string

	// Prompt is the user content for this request.
	Prompt string

	// Config contains optional generation parameters
	Config *GenerateConfig

	// ResponseSchema, when set, asks for a JSON object of this shape.
	ResponseSchema *ParameterSchema
}

// GenerateConfig contains optional generation parameters.
// All fields are pointers to distinguish between "not set" and "zero value".
type GenerateConfig struct {
	Temperature     *float32
	MaxOutputTokens *int32
}

// GenerateResponse contains the model's response and metadata.
type GenerateResponse struct {
	// Text is the concatenated text of the first candidate.
	Text string

	// Metadata contains information about the generation
	Metadata ResponseMetadata
}

// ResponseMetadata contains information about the generation.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ModelUsed        string
}

// ParameterSchema maps directly to standard JSON Schema.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}
