package wikipedia

import (
	"context"
	"strings"
)

// maxTermLength bounds tool input; Wikipedia titles are at most 255 bytes
const maxTermLength = 255

// SearchMCP wraps Search for MCP tool handlers
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (SearchToolResult, error) {
	if err := ValidateTerm("term", args.Term); err != nil {
		return SearchToolResult{}, err
	}

	page, err := c.Search(ctx, args.Term)
	if err != nil {
		return SearchToolResult{}, err
	}

	return SearchToolResult{Title: page.Title(), URL: page.URL()}, nil
}

// GetSummaryMCP fetches the introduction of the page with the exact title given
func (c *Client) GetSummaryMCP(ctx context.Context, args GetSummaryArgs) (SummaryToolResult, error) {
	if err := ValidateTerm("title", args.Title); err != nil {
		return SummaryToolResult{}, err
	}

	summary, err := c.summaryByTitle(ctx, args.Title)
	if err != nil {
		return SummaryToolResult{}, err
	}

	return SummaryToolResult{Title: args.Title, Summary: summary}, nil
}

// LookupMCP searches for a term and summarizes the best match
func (c *Client) LookupMCP(ctx context.Context, args LookupArgs) (LookupResult, error) {
	if err := ValidateTerm("term", args.Term); err != nil {
		return LookupResult{}, err
	}

	page, err := c.Search(ctx, args.Term)
	if err != nil {
		return LookupResult{}, err
	}

	summary, err := c.Summary(ctx, page)
	if err != nil {
		return LookupResult{}, err
	}

	return LookupResult{
		Title:   page.Title(),
		URL:     page.URL(),
		Summary: summary,
	}, nil
}

// ValidateTerm checks a search term or title supplied by a tool caller
func ValidateTerm(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(value) > maxTermLength {
		return &ValidationError{Field: field, Message: "must be at most 255 bytes"}
	}
	return nil
}
