package codelab

import "context"

// Provider abstracts the LLM backend used for tutoring prompts.
type Provider interface {
	// Ask sends a single-prompt request and returns the model's text answer.
	Ask(ctx context.Context, prompt string) (string, error)
	// Name returns the provider name (e.g. "openai", "mock").
	Name() string
}
