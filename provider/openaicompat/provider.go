// Package openaicompat implements codelab.Provider for any OpenAI-compatible
// chat completions API (OpenAI, OpenRouter, Groq, Ollama, vLLM, ...).
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	codelab "github.com/arvyn/codelab"
)

// Provider sends single-prompt chat completion requests. When no model is
// configured, the first Ask probes GET /models once and picks the best
// available model from a preference list.
type Provider struct {
	apiKey    string
	baseURL   string
	model     string
	name      string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger

	pickOnce sync.Once
	picked   string
}

// New creates a provider for the API at baseURL
// (e.g. "https://api.openai.com/v1").
func New(apiKey, baseURL string, opts ...ProviderOption) *Provider {
	p := &Provider{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		name:      "openai",
		maxTokens: 800,
		client:    &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name (default "openai", configurable via WithName).
func (p *Provider) Name() string { return p.name }

// preferredModels is tried in order against the API's model listing.
var preferredModels = []string{"gpt-5", "gpt-4o", "gpt-4", "gpt-3.5-turbo"}

const fallbackModel = "gpt-3.5-turbo"

// Ask sends prompt as a single user message and returns the model's text.
func (p *Provider) Ask(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:     p.resolveModel(ctx),
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: p.maxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &codelab.ErrLLM{Provider: p.name, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &codelab.ErrLLM{Provider: p.name, Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &codelab.ErrLLM{Provider: p.name, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &codelab.ErrHTTP{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &codelab.ErrLLM{Provider: p.name, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &codelab.ErrLLM{Provider: p.name, Message: "response contained no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// resolveModel picks the chat model once per provider: the configured model
// when set, otherwise the first preferred model the API reports, otherwise
// any model mentioning "gpt", otherwise the fallback. Probe failures fall
// back rather than fail, so a missing /models endpoint is not fatal.
func (p *Provider) resolveModel(ctx context.Context) string {
	if p.model != "" {
		return p.model
	}
	p.pickOnce.Do(func() {
		p.picked = p.probeModel(ctx)
		if p.logger != nil {
			p.logger.Debug("selected chat model", "model", p.picked)
		}
	})
	return p.picked
}

func (p *Provider) probeModel(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return fallbackModel
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fallbackModel
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fallbackModel
	}

	var listing modelList
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return fallbackModel
	}

	available := make(map[string]bool, len(listing.Data))
	for _, m := range listing.Data {
		available[m.ID] = true
	}
	for _, want := range preferredModels {
		if available[want] {
			return want
		}
	}
	for _, m := range listing.Data {
		if strings.Contains(m.ID, "gpt") {
			return m.ID
		}
	}
	return fallbackModel
}

// Compile-time interface check.
var _ codelab.Provider = (*Provider)(nil)
