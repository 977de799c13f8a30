// Package base provides the shared HTTP transport used by the Wikipedia API client.
package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultUserAgent identifies the client to Wikimedia servers
	DefaultUserAgent = "wikipedia-mcp-server/1.0 (set WIKIPEDIA_USER_AGENT to include a contact address)"

	// MaxResponseSize caps how much of a response body is read into memory
	MaxResponseSize = 10 * 1024 * 1024
)

// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize
var ErrResponseTooLarge = errors.New("response exceeds maximum size")

// Client performs single-shot GET requests. It keeps no per-request state,
// so one Client can be shared by any number of goroutines.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.UserAgent = ua
	}
}

// NewClient creates a new base client with default settings.
// The default HTTP client carries no timeout of its own; callers bound
// requests through the context.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: &http.Client{},
		Logger:     slog.Default(),
		UserAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get issues exactly one GET request for rawURL and returns the body and status code.
// Transport failures are returned as errors; non-2xx statuses are returned with
// their body so the caller can decide how to classify them.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wireURL(rawURL), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.Logger.Debug("Wikipedia API response",
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(body))

	return body, resp.StatusCode, nil
}

// IsSuccess reports whether status is a 2xx code
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// wireURL writes literal spaces as %20. URLs built by interpolation may still
// contain them and net/http would otherwise put them on the request line as-is.
func wireURL(rawURL string) string {
	return strings.ReplaceAll(rawURL, " ", "%20")
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}

// Truncate shortens s to at most maxLen bytes, adding "..." if truncated.
// The cut never splits a UTF-8 sequence.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
