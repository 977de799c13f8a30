// Package wikipedia is a small client for the English Wikipedia action API.
// It searches for a page by title and fetches plain-text extracts of it.
// Every failure is reported as a *WikiError of one of four kinds.
package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/base"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
)

// Client talks to the Wikipedia API. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	*base.Client
	baseURL string
}

// ClientOption configures the Client (re-export base.ClientOption)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets the logger used to report request and parse failures
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithUserAgent sets the User-Agent sent to Wikipedia
func WithUserAgent(ua string) ClientOption {
	return base.WithUserAgent(ua)
}

// NewClient creates a Wikipedia client for the English endpoint
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:  base.NewClient(opts...),
		baseURL: Endpoint,
	}
}

// WithBaseURL returns a copy of the Client that talks to a custom API
// endpoint. The receiver is left unchanged.
func (c *Client) WithBaseURL(url string) *Client {
	clone := *c
	clone.baseURL = url
	return &clone
}

// Search finds the best-matching page for term. A term that matches
// nothing yields a KindPageNotFound error carrying term unchanged.
func (c *Client) Search(ctx context.Context, term string) (Page, error) {
	ctx, span := tracing.StartSpan(ctx, "wikipedia.search")
	defer span.End()
	tracing.AddWikipediaAttributes(span, ActionOpenSearch, term)

	page, err := do(ctx, c, ActionOpenSearch, buildSearchURL(c.baseURL, term), func(body []byte) (Page, error) {
		return decodeSearch(body, term)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return Page{}, err
	}
	return page, nil
}

// Summary returns the plain-text introduction (first section) of page
func (c *Client) Summary(ctx context.Context, page Page) (string, error) {
	return c.summaryByTitle(ctx, page.Title())
}

func (c *Client) summaryByTitle(ctx context.Context, title string) (string, error) {
	return c.extract(ctx, "summary", buildSummaryURL(c.baseURL, title), title)
}

// Content returns the whole article text of page
func (c *Client) Content(ctx context.Context, page Page) (string, error) {
	return c.extract(ctx, "content", buildContentURL(c.baseURL, page.Title()), page.Title())
}

func (c *Client) extract(ctx context.Context, operation, reqURL, title string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "wikipedia."+operation)
	defer span.End()
	tracing.AddWikipediaAttributes(span, ActionQuery, title)

	text, err := do(ctx, c, ActionQuery, reqURL, decodeSummary)
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}

	metrics.RecordContentSize(operation, len(text))
	return text, nil
}

// do runs one fetch-and-decode pipeline and records its outcome
func do[T any](ctx context.Context, c *Client, action, reqURL string, decode func([]byte) (T, error)) (T, error) {
	start := time.Now()

	var zero T
	body, err := c.fetch(ctx, action, reqURL)
	if err != nil {
		metrics.RecordAPICall(action, time.Since(start).Seconds(), false, KindOf(err).String())
		return zero, err
	}

	result, err := decode(body)
	if err != nil {
		var we *WikiError
		if errors.As(err, &we) && we.Kind == KindJSONParse {
			c.Logger.Error("Wikipedia response parsing failed",
				"action", action,
				"url", reqURL,
				"body", base.Truncate(string(body), 200),
				"error", we.Err)
		}
		metrics.RecordAPICall(action, time.Since(start).Seconds(), false, KindOf(err).String())
		return zero, err
	}

	metrics.RecordAPICall(action, time.Since(start).Seconds(), true, "")
	return result, nil
}

// fetch issues a single GET. Any transport failure or non-2xx status is a
// KindPageRequest error.
func (c *Client) fetch(ctx context.Context, action, reqURL string) ([]byte, error) {
	body, status, err := c.Client.Get(ctx, reqURL)
	if err != nil {
		c.Logger.Error("Wikipedia request failed",
			"action", action,
			"url", reqURL,
			"error", err)
		return nil, newPageRequest(err)
	}

	if !base.IsSuccess(status) {
		err := fmt.Errorf("unexpected status %d: %s", status, base.Truncate(string(body), 200))
		c.Logger.Error("Wikipedia request failed",
			"action", action,
			"url", reqURL,
			"status", status,
			"error", err)
		return nil, newPageRequest(err)
	}

	return body, nil
}
