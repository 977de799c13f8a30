package wikipedia

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SearchResult is the decoded opensearch payload:
// [term, [titles...], [descriptions...], [urls...]]. The three lists are
// parallel and index 0 is the best match. Positions are resolved here and
// nowhere else.
type SearchResult struct {
	term         string
	titles       []string
	descriptions []string
	urls         []string
}

// Term returns the search term echoed by the API
func (r SearchResult) Term() string { return r.term }

// Titles returns the matched page titles
func (r SearchResult) Titles() []string { return append([]string(nil), r.titles...) }

// Descriptions returns the match descriptions (usually empty strings on Wikipedia)
func (r SearchResult) Descriptions() []string { return append([]string(nil), r.descriptions...) }

// URLs returns the matched page URLs
func (r SearchResult) URLs() []string { return append([]string(nil), r.urls...) }

// First returns the best title/URL pair, or false when either list is empty
func (r SearchResult) First() (title, url string, ok bool) {
	if len(r.titles) == 0 || len(r.urls) == 0 {
		return "", "", false
	}
	return r.titles[0], r.urls[0], true
}

// UnmarshalJSON decodes the positional four-element array
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("opensearch result has %d elements, want 4", len(raw))
	}

	var out SearchResult
	if err := json.Unmarshal(raw[0], &out.term); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := json.Unmarshal(raw[1], &out.titles); err != nil {
		return fmt.Errorf("titles: %w", err)
	}
	if err := json.Unmarshal(raw[2], &out.descriptions); err != nil {
		return fmt.Errorf("descriptions: %w", err)
	}
	if err := json.Unmarshal(raw[3], &out.urls); err != nil {
		return fmt.Errorf("urls: %w", err)
	}

	*r = out
	return nil
}

// SummaryResponse is the formatversion=2 query/extracts payload
type SummaryResponse struct {
	BatchComplete bool          `json:"batchcomplete"`
	Query         *queryBody    `json:"query"`
}

type queryBody struct {
	Pages *[]RPage `json:"pages"`
}

// RPage is one entry of query.pages. Required fields are pointers so a
// missing field can be told apart from a zero value.
type RPage struct {
	PageID  *int    `json:"pageid"`
	NS      *int    `json:"ns"`
	Title   *string `json:"title"`
	Extract *string `json:"extract"`
	Missing bool    `json:"missing"`
	Invalid bool    `json:"invalid"`
}

var (
	errNoQuery     = errors.New("response has no query object")
	errNoPages     = errors.New("query has no pages field")
	errEmptyPages  = errors.New("query returned zero pages")
	errPageMissing = errors.New("page does not exist")
)

// Pages returns query.pages, or nil when absent
func (s SummaryResponse) Pages() []RPage {
	if s.Query == nil || s.Query.Pages == nil {
		return nil
	}
	return *s.Query.Pages
}

func (p RPage) validate() error {
	switch {
	case p.PageID == nil:
		return errors.New("page has no pageid")
	case p.NS == nil:
		return errors.New("page has no ns")
	case p.Title == nil:
		return errors.New("page has no title")
	case p.Extract == nil:
		return errors.New("page has no extract")
	}
	return nil
}

// decodeSearch turns an opensearch body into the first matching Page.
// term is the caller's original, unencoded search term.
func decodeSearch(body []byte, term string) (Page, error) {
	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return Page{}, newJSONParse(fmt.Errorf("decode opensearch response: %w", err))
	}

	title, url, ok := result.First()
	if !ok {
		return Page{}, newPageNotFound(term)
	}

	return NewPage(title, url), nil
}

// decodeSummary returns the extract of the first page in a query/extracts body
func decodeSummary(body []byte) (string, error) {
	var resp SummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", newJSONParse(fmt.Errorf("decode query response: %w", err))
	}
	if resp.Query == nil {
		return "", newJSONParse(errNoQuery)
	}
	if resp.Query.Pages == nil {
		return "", newJSONParse(errNoPages)
	}

	pages := *resp.Query.Pages
	if len(pages) == 0 {
		return "", newResponse(errEmptyPages)
	}

	first := pages[0]
	if first.Missing || first.Invalid {
		return "", newResponse(errPageMissing)
	}
	if err := first.validate(); err != nil {
		return "", newJSONParse(err)
	}

	return *first.Extract, nil
}
