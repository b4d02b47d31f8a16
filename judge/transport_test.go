package judge

import (
	"bytes"
	"context"
	"encoding/pem"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func tlsJudge0(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
}

func TestSelfSignedFailsWithRemediationGuidance(t *testing.T) {
	srv := tlsJudge0(t)
	defer srv.Close()

	client := New(srv.URL)
	err := client.do(context.Background(), http.MethodGet, "/submissions/x", nil, nil, nil)

	var transport *ErrTransport
	if !errors.As(err, &transport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
	if !transport.CertVerification {
		t.Fatalf("certificate failure not distinguished: %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "CA bundle") || !strings.Contains(msg, "JUDGE0_DISABLE_SSL_VERIFY") {
		t.Errorf("remediation guidance missing from %q", msg)
	}
}

func TestInsecureSkipVerifyAllowsSelfSigned(t *testing.T) {
	srv := tlsJudge0(t)
	defer srv.Close()

	logger, logs := captureLogger()
	client := New(srv.URL, WithInsecureSkipVerify(), WithLogger(logger))
	if err := client.do(context.Background(), http.MethodGet, "/submissions/x", nil, nil, nil); err != nil {
		t.Fatalf("do with verification disabled: %v", err)
	}
	if !strings.Contains(logs.String(), "disabled") {
		t.Error("disabling verification did not log a warning")
	}
}

func TestCABundleTrustsCustomAuthority(t *testing.T) {
	srv := tlsJudge0(t)
	defer srv.Close()

	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	path := filepath.Join(t.TempDir(), "judge0-ca.pem")
	if err := os.WriteFile(path, block, 0o600); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	client := New(srv.URL, WithCABundle(path))
	if err := client.do(context.Background(), http.MethodGet, "/submissions/x", nil, nil, nil); err != nil {
		t.Fatalf("do with custom CA bundle: %v", err)
	}
}

func TestCABundleLoadFailureIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	logger, logs := captureLogger()
	client := New(srv.URL, WithCABundle("/no/such/bundle.pem"), WithLogger(logger))

	if !strings.Contains(logs.String(), "CA bundle") {
		t.Error("bundle load failure did not log a warning")
	}
	// Requests still work against remaining trust roots (plain HTTP here).
	if err := client.do(context.Background(), http.MethodGet, "/submissions/x", nil, nil, nil); err != nil {
		t.Fatalf("do after bundle load failure: %v", err)
	}
}

func TestDefaultHeadersHostFallsBackToBaseURL(t *testing.T) {
	cfg := defaultClientConfig()
	cfg.rapidAPIKey = "k"
	h := defaultHeaders(cfg, "https://judge0-ce.p.rapidapi.com")
	if got := h.Get("X-RapidAPI-Host"); got != "judge0-ce.p.rapidapi.com" {
		t.Errorf("host: got %q", got)
	}
}
