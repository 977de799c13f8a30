// Package einotool exposes Wikipedia lookup as an eino InvokableTool so
// agents built on github.com/cloudwego/eino can call it directly.
package einotool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

// ErrTooManyRedirects is returned when Wikipedia redirects more than Config.MaxRedirect times
var ErrTooManyRedirects = errors.New("too many redirects")

// Config is the configuration for the Wikipedia lookup tool.
type Config struct {
	// baseURL overrides the API endpoint (tests only)
	baseURL string

	// UserAgent is sent to Wikipedia. Wikimedia asks bots to include a contact address.
	UserAgent string `json:"user_agent"` // default: wikipedia client default
	// DocMaxChars caps the returned summary, counted in runes.
	DocMaxChars int `json:"doc_max_chars"` // default: 2000
	// Timeout bounds each HTTP request.
	Timeout time.Duration `json:"timeout"` // default: 15s
	// MaxRedirect is the maximum number of redirects to follow.
	MaxRedirect int `json:"max_redirect"` // default: 3

	ToolName string `json:"tool_name"` // default: "wikipedia"
	ToolDesc string `json:"tool_desc"` // default: see defaultToolDesc

	// Logger receives request and parse failures. default: slog.Default()
	Logger *slog.Logger `json:"-"`
}

const defaultToolDesc = "Look up a topic on English Wikipedia and return the best-matching article's title, URL and introduction"

// NewTool creates a new Wikipedia lookup tool.
func NewTool(ctx context.Context, conf *Config) (tool.InvokableTool, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}

	l := newLookup(ctx, conf)
	t, err := utils.InferTool(conf.ToolName, conf.ToolDesc, l.Lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to infer tool: %w", err)
	}
	return t, nil
}

// validate validates the configuration and sets default values if not provided.
func (conf *Config) validate() error {
	if conf == nil {
		return fmt.Errorf("config is nil")
	}
	if conf.ToolName == "" {
		conf.ToolName = "wikipedia"
	}
	if conf.ToolDesc == "" {
		conf.ToolDesc = defaultToolDesc
	}
	if conf.DocMaxChars <= 0 {
		conf.DocMaxChars = 2000
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 15 * time.Second
	}
	if conf.MaxRedirect <= 0 {
		conf.MaxRedirect = 3
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	return nil
}

type lookup struct {
	conf   *Config
	client *wikipedia.Client
}

func newLookup(_ context.Context, conf *Config) *lookup {
	opts := []wikipedia.ClientOption{
		wikipedia.WithLogger(conf.Logger),
		wikipedia.WithHTTPClient(&http.Client{
			Timeout: conf.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= conf.MaxRedirect {
					return ErrTooManyRedirects
				}
				return nil
			},
		}),
	}
	if conf.UserAgent != "" {
		opts = append(opts, wikipedia.WithUserAgent(conf.UserAgent))
	}

	client := wikipedia.NewClient(opts...)
	if conf.baseURL != "" {
		client = client.WithBaseURL(conf.baseURL)
	}
	return &lookup{conf: conf, client: client}
}

// Lookup searches for the query and summarizes the best match.
func (l *lookup) Lookup(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	if err := wikipedia.ValidateTerm("query", req.Query); err != nil {
		return nil, err
	}

	page, err := l.client.Search(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	summary, err := l.client.Summary(ctx, page)
	if err != nil {
		return nil, err
	}

	return &LookupResponse{
		Title:   page.Title(),
		URL:     page.URL(),
		Summary: truncateRunes(summary, l.conf.DocMaxChars),
	}, nil
}

// truncateRunes cuts s to at most n runes without splitting a character
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

type LookupRequest struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"The topic to look up, e.g. a person, place or concept"`
}

type LookupResponse struct {
	Title   string `json:"title" jsonschema_description:"Canonical title of the matched article"`
	URL     string `json:"url" jsonschema_description:"URL of the matched article"`
	Summary string `json:"summary" jsonschema_description:"Plain-text introduction of the article"`
}
