// Package resolve creates a codelab.Provider from configuration.
//
// The mock-vs-live choice is a configuration-time strategy: callers never
// branch on it again after startup.
package resolve

import (
	"errors"
	"log/slog"

	codelab "github.com/arvyn/codelab"
	"github.com/arvyn/codelab/provider/mock"
	"github.com/arvyn/codelab/provider/openaicompat"
)

// Config holds provider-agnostic configuration for creating a Provider.
type Config struct {
	Mock      bool   // short-circuits to the canned provider
	APIKey    string // required unless Mock
	Model     string // empty = probe /models for the best available
	BaseURL   string // empty = api.openai.com
	MaxTokens int    // 0 = provider default
	Logger    *slog.Logger
}

const defaultBaseURL = "https://api.openai.com/v1"

// Provider selects the mock or live implementation from cfg.
func Provider(cfg Config) (codelab.Provider, error) {
	if cfg.Mock {
		return mock.New(), nil
	}
	if cfg.APIKey == "" {
		return nil, errors.New("resolve: an OpenAI API key is required unless mock mode is enabled")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var opts []openaicompat.ProviderOption
	if cfg.Model != "" {
		opts = append(opts, openaicompat.WithModel(cfg.Model))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, openaicompat.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.Logger != nil {
		opts = append(opts, openaicompat.WithLogger(cfg.Logger))
	}
	return openaicompat.New(cfg.APIKey, baseURL, opts...), nil
}
