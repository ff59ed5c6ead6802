package http

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClientOptions configures HTTP client creation
type HTTPClientOptions struct {
	// Timeout is the request timeout duration (0 means no timeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
	// Service labels outbound requests in debug logs; empty disables request logging
	Service string
}

// NewHTTPClient creates an HTTP client with the specified options
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	// Only configure custom transport if SSL verification needs to be skipped
	var base http.RoundTripper
	if opts.SkipSSLVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
		base = transport
	}

	if opts.Service != "" {
		client.Transport = &loggingTransport{service: opts.Service, next: base}
	} else if base != nil {
		client.Transport = base
	}

	return client
}

// loggingTransport records one debug line per outbound request
type loggingTransport struct {
	service string
	next    http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	resp, err := next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		slog.Debug("Outbound request failed",
			"service", t.service,
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration", elapsed,
			"error", err)
		return nil, err
	}

	slog.Debug("Outbound request",
		"service", t.service,
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", elapsed)
	return resp, nil
}
