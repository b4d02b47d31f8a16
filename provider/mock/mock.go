// Package mock provides a canned codelab.Provider for development and tests
// without an OpenAI key. It is selected via the llm.mock config flag (or
// OPENAI_MOCK=1).
package mock

import (
	"context"
	"strings"

	codelab "github.com/arvyn/codelab"
)

// curriculumJSON mirrors the shape a live model is prompted to produce for
// curriculum requests.
const curriculumJSON = `{
  "levels": [
    {
      "level": "Beginner",
      "lessons": [
        {"title": "Variables", "summary": "Learn variables and data types."},
        {"title": "Loops", "summary": "Understand iteration."}
      ]
    },
    {
      "level": "Intermediate",
      "lessons": [
        {"title": "Functions", "summary": "Learn modular code."},
        {"title": "Modules", "summary": "Use Python libraries."}
      ]
    }
  ]
}`

// Provider answers every prompt from a canned table.
type Provider struct{}

// New creates a mock provider.
func New() *Provider { return &Provider{} }

// Name implements codelab.Provider.
func (*Provider) Name() string { return "mock" }

// Ask returns a canned curriculum for curriculum prompts and a generic
// message for everything else. It never fails.
func (*Provider) Ask(_ context.Context, prompt string) (string, error) {
	if strings.Contains(strings.ToLower(prompt), "curriculum") {
		return curriculumJSON, nil
	}
	return `{"message": "Mock response"}`, nil
}

// Compile-time interface check.
var _ codelab.Provider = (*Provider)(nil)
