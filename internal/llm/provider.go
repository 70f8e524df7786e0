package llm

import (
	"context"
	"encoding/json"
)

// Provider is the interface a completion backend must implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest represents a single prompt completion
type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float64
}

// CompletionResponse represents the parsed response
type CompletionResponse struct {
	Text         string
	Model        string
	FinishReason string

	// Raw is the undecoded response body
	Raw json.RawMessage
}

// NewRequest creates a completion request for the given model
func NewRequest(model, prompt string, temperature float64) *CompletionRequest {
	return &CompletionRequest{
		Prompt:      prompt,
		Model:       model,
		Temperature: temperature,
	}
}
