package providers

import "context"

// LLMClient interface for all LLM providers
type LLMClient interface {
	// Generate sends one prompt to the given model and returns the generated text
	Generate(ctx context.Context, prompt, model string) (string, error)
	// Name returns the provider name for logging
	Name() string
}
