package judge

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net/http"
	"net/url"
	"os"
)

// newHTTPClient builds the HTTP client used for all Judge0 requests. Trust
// settings layer in precedence order: the insecure flag short-circuits
// verification entirely; otherwise the optional CA bundle is appended on top
// of the system roots.
func newHTTPClient(cfg clientConfig, logger *slog.Logger) *http.Client {
	if cfg.httpClient != nil {
		return cfg.httpClient
	}

	tlsCfg := &tls.Config{}
	if cfg.insecure {
		logger.Warn("judge0 TLS verification is disabled; only use this against local self-signed deployments")
		tlsCfg.InsecureSkipVerify = true
	} else {
		tlsCfg.RootCAs = trustedRoots(cfg, logger)
	}

	return &http.Client{
		Timeout: cfg.requestTimeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsCfg,
		},
	}
}

// trustedRoots loads the system pool and layers the optional custom CA
// bundle on top. Load failures are non-fatal warnings: verification still
// runs against whatever roots loaded successfully.
func trustedRoots(cfg clientConfig, logger *slog.Logger) *x509.CertPool {
	pool, err := x509.SystemCertPool()
	if err != nil {
		logger.Warn("unable to load system trust roots", "error", err)
		pool = x509.NewCertPool()
	}

	if cfg.caBundlePath != "" {
		pem, err := os.ReadFile(cfg.caBundlePath)
		switch {
		case err != nil:
			logger.Warn("failed to load judge0 CA bundle", "path", cfg.caBundlePath, "error", err)
		case !pool.AppendCertsFromPEM(pem):
			logger.Warn("no certificates found in judge0 CA bundle", "path", cfg.caBundlePath)
		default:
			logger.Debug("loaded custom judge0 CA bundle", "path", cfg.caBundlePath)
		}
	}

	return pool
}

// defaultHeaders builds the headers attached to every request. Both
// authentication schemes may be present at once; Judge0 ignores headers it
// does not use.
func defaultHeaders(cfg clientConfig, baseURL string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")

	if cfg.rapidAPIKey != "" {
		host := cfg.rapidAPIHost
		if host == "" {
			if u, err := url.Parse(baseURL); err == nil {
				host = u.Host
			}
		}
		h.Set("X-RapidAPI-Key", cfg.rapidAPIKey)
		h.Set("X-RapidAPI-Host", host)
	}
	if cfg.authToken != "" {
		h.Set("X-Auth-Token", cfg.authToken)
	}
	return h
}
