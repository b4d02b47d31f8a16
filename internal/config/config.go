// Package config loads the process configuration: defaults, then an
// optional TOML file, then environment overrides (env wins). The env names
// are kept from earlier deployments, so existing .env files keep working.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Judge0   Judge0Config   `toml:"judge0"`
	LLM      LLMConfig      `toml:"llm"`
	Observer ObserverConfig `toml:"observer"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Judge0Config mirrors the client's configuration surface. Durations are in
// seconds, because that is how the env vars have always been written.
type Judge0Config struct {
	BaseURL          string  `toml:"base_url"`
	RequestTimeout   float64 `toml:"request_timeout"`
	PollInterval     float64 `toml:"poll_interval"`
	MaxWaitSeconds   float64 `toml:"max_wait_seconds"`
	RapidAPIKey      string  `toml:"rapidapi_key"`
	RapidAPIHost     string  `toml:"rapidapi_host"`
	AuthToken        string  `toml:"auth_token"`
	CABundlePath     string  `toml:"ca_bundle_path"`
	DisableSSLVerify bool    `toml:"disable_ssl_verify"`
}

type LLMConfig struct {
	Mock      bool   `toml:"mock"`
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type ObserverConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Judge0: Judge0Config{
			BaseURL:        "https://judge0-ce.p.rapidapi.com",
			RequestTimeout: 10,
			PollInterval:   0.75,
			MaxWaitSeconds: 20,
		},
		LLM: LLMConfig{
			BaseURL:   "https://api.openai.com/v1",
			MaxTokens: 800,
		},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "codelab.toml"
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("CODELAB_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("JUDGE0_API_URL"); v != "" {
		cfg.Judge0.BaseURL = strings.TrimRight(v, "/")
	}
	cfg.Judge0.RequestTimeout = envFloat("JUDGE0_REQUEST_TIMEOUT", cfg.Judge0.RequestTimeout)
	cfg.Judge0.PollInterval = envFloat("JUDGE0_POLL_INTERVAL", cfg.Judge0.PollInterval)
	cfg.Judge0.MaxWaitSeconds = envFloat("JUDGE0_MAX_WAIT_SECONDS", cfg.Judge0.MaxWaitSeconds)
	if v := os.Getenv("JUDGE0_RAPIDAPI_KEY"); v != "" {
		cfg.Judge0.RapidAPIKey = v
	}
	if v := os.Getenv("JUDGE0_RAPIDAPI_HOST"); v != "" {
		cfg.Judge0.RapidAPIHost = v
	}
	if v := os.Getenv("JUDGE0_API_KEY"); v != "" {
		cfg.Judge0.AuthToken = v
	}
	if v := os.Getenv("JUDGE0_CA_BUNDLE_PATH"); v != "" {
		cfg.Judge0.CABundlePath = v
	}
	if envTruthy("JUDGE0_DISABLE_SSL_VERIFY") {
		cfg.Judge0.DisableSSLVerify = true
	}
	if envTruthy("OPENAI_MOCK") {
		cfg.LLM.Mock = true
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if envTruthy("CODELAB_OBSERVER") {
		cfg.Observer.Enabled = true
	}

	return cfg
}

// RequestTimeoutDuration converts the seconds value for the judge client.
func (c Judge0Config) RequestTimeoutDuration() time.Duration { return seconds(c.RequestTimeout) }

// PollIntervalDuration converts the seconds value for the judge client.
func (c Judge0Config) PollIntervalDuration() time.Duration { return seconds(c.PollInterval) }

// MaxWaitDuration converts the seconds value for the judge client.
func (c Judge0Config) MaxWaitDuration() time.Duration { return seconds(c.MaxWaitSeconds) }

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// envFloat parses name as a float, keeping def on absence or garbage. The
// original deployments treated unparseable values as unset, so we do too.
func envFloat(name string, def float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func envTruthy(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
