package judge

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const maxResponseBytes = 4 << 20 // 4MB

// Client talks to one Judge0 deployment. All fields are fixed at
// construction; a Client is safe for concurrent use, and independent
// executions share nothing beyond the connection pool.
type Client struct {
	baseURL   string
	cfg       clientConfig
	http      *http.Client
	headers   http.Header
	languages *Registry
	logger    *slog.Logger
}

// New creates a Client for the Judge0 deployment at baseURL
// (e.g. "https://judge0-ce.p.rapidapi.com").
func New(baseURL string, opts ...Option) *Client {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	languages := cfg.languages
	if languages == nil {
		languages = DefaultRegistry()
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		baseURL:   baseURL,
		cfg:       cfg,
		http:      newHTTPClient(cfg, logger),
		headers:   defaultHeaders(cfg, baseURL),
		languages: languages,
		logger:    logger,
	}
}

// ResolveLanguage finds the Language definition for a free-text name.
func (c *Client) ResolveLanguage(name string) (Language, error) {
	return c.languages.Resolve(name)
}

// Languages returns the supported language definitions in registration order.
func (c *Client) Languages() []Language {
	return c.languages.All()
}

// do performs one request/response cycle against the Judge0 base URL.
// body (when non-nil) is JSON-encoded; out (when non-nil) receives the
// decoded response. An empty 2xx body leaves out untouched, since some
// Judge0 operations return no payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("judge: marshal request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("judge: build request: %w", err)
	}
	for key, values := range c.headers {
		req.Header[key] = values
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrRemote{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	return nil
}

// remoteError prefers the error body, then the reason phrase, then the bare
// status code. HTTP errors are final; they are never retried.
func remoteError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &ErrRemote{Status: status, Message: msg}
}

// transportError classifies a connection-level failure. Certificate
// verification gets its own variant so the operator sees the remediation
// knobs instead of a generic network error. Context cancellation passes
// through untouched so callers can match on ctx.Err().
func transportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var certErr *tls.CertificateVerificationError
	var unknownCA x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownCA) || errors.As(err, &hostErr) {
		return &ErrTransport{Err: err, CertVerification: true}
	}
	return &ErrTransport{Err: err}
}
