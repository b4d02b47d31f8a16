package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.toml"))

	if cfg.Judge0.BaseURL != "https://judge0-ce.p.rapidapi.com" {
		t.Errorf("base url: got %q", cfg.Judge0.BaseURL)
	}
	if got := cfg.Judge0.PollIntervalDuration(); got != 750*time.Millisecond {
		t.Errorf("poll interval: got %s", got)
	}
	if got := cfg.Judge0.MaxWaitDuration(); got != 20*time.Second {
		t.Errorf("max wait: got %s", got)
	}
	if cfg.LLM.MaxTokens != 800 {
		t.Errorf("max tokens: got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Mock {
		t.Error("mock must not be the default")
	}
}

func TestTOMLThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codelab.toml")
	body := `
[judge0]
base_url = "https://judge.internal"
max_wait_seconds = 5.0

[llm]
mock = true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("JUDGE0_API_URL", "https://judge.override/")
	t.Setenv("JUDGE0_MAX_WAIT_SECONDS", "2.5")

	cfg := Load(path)
	if cfg.Judge0.BaseURL != "https://judge.override" {
		t.Errorf("env override lost (and trailing slash kept): %q", cfg.Judge0.BaseURL)
	}
	if got := cfg.Judge0.MaxWaitDuration(); got != 2500*time.Millisecond {
		t.Errorf("max wait: got %s", got)
	}
	if !cfg.LLM.Mock {
		t.Error("toml llm.mock lost")
	}
}

func TestGarbageEnvFloatKeepsDefault(t *testing.T) {
	t.Setenv("JUDGE0_POLL_INTERVAL", "soon")
	cfg := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if got := cfg.Judge0.PollIntervalDuration(); got != 750*time.Millisecond {
		t.Errorf("poll interval: got %s, want default", got)
	}
}

func TestTruthyEnvValues(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " True "} {
		t.Setenv("JUDGE0_DISABLE_SSL_VERIFY", v)
		if !Load(filepath.Join(t.TempDir(), "missing.toml")).Judge0.DisableSSLVerify {
			t.Errorf("%q not treated as truthy", v)
		}
	}
	t.Setenv("JUDGE0_DISABLE_SSL_VERIFY", "0")
	if Load(filepath.Join(t.TempDir(), "missing.toml")).Judge0.DisableSSLVerify {
		t.Error(`"0" treated as truthy`)
	}
}
