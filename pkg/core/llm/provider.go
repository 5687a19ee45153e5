package llm

import (
	"context"
)

// Provider is the interface for all LLM providers. The scoring and narrative
// pipeline depends only on this, so it can be tested deterministically
// against canned responses.
//
// Recognized option keys:
//
//	"model"           string — override the provider's default model
//	"response_format" map    — {"type": "json_object"} requests JSON output
//	"google_search"   bool   — enable search grounding (Gemini only)
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}
