package judge

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	requestTimeout time.Duration
	pollInterval   time.Duration
	maxWait        time.Duration

	rapidAPIKey  string
	rapidAPIHost string
	authToken    string

	caBundlePath string
	insecure     bool

	httpClient *http.Client
	languages  *Registry
	logger     *slog.Logger
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		requestTimeout: 10 * time.Second,
		pollInterval:   750 * time.Millisecond,
		maxWait:        20 * time.Second,
	}
}

// WithRequestTimeout bounds a single request/response cycle. It does not
// bound the overall execution; see WithMaxWait. Default: 10s.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.requestTimeout = d }
}

// WithPollInterval sets the sleep between status polls. Default: 750ms.
func WithPollInterval(d time.Duration) Option {
	return func(c *clientConfig) { c.pollInterval = d }
}

// WithMaxWait sets the total time Execute waits for a terminal status before
// giving up with ErrTimeout. Default: 20s.
func WithMaxWait(d time.Duration) Option {
	return func(c *clientConfig) { c.maxWait = d }
}

// WithRapidAPIKey sets the X-RapidAPI-Key and X-RapidAPI-Host headers for a
// gateway-hosted Judge0. An empty host defaults to the base URL's host.
func WithRapidAPIKey(key, host string) Option {
	return func(c *clientConfig) {
		c.rapidAPIKey = key
		c.rapidAPIHost = host
	}
}

// WithAuthToken sets the X-Auth-Token header used by self-hosted Judge0
// deployments.
func WithAuthToken(token string) Option {
	return func(c *clientConfig) { c.authToken = token }
}

// WithCABundle trusts the PEM certificates at path in addition to the
// system roots. A bundle that fails to load is a warning, not an error;
// verification proceeds with whatever roots loaded successfully.
func WithCABundle(path string) Option {
	return func(c *clientConfig) { c.caBundlePath = path }
}

// WithInsecureSkipVerify disables TLS certificate verification entirely.
// Only for local development against self-signed deployments.
func WithInsecureSkipVerify() Option {
	return func(c *clientConfig) { c.insecure = true }
}

// WithHTTPClient replaces the default HTTP client. TLS and request-timeout
// options are ignored when set; the caller owns the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithLanguages replaces the builtin language registry.
func WithLanguages(r *Registry) Option {
	return func(c *clientConfig) { c.languages = r }
}

// WithLogger sets the logger for warnings and debug output.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
