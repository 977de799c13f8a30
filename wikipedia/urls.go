package wikipedia

import (
	"fmt"
	"strings"
)

// Endpoint is the English Wikipedia action API
const Endpoint = "https://en.wikipedia.org/w/api.php"

// API actions, also used as metric and span labels
const (
	ActionOpenSearch = "opensearch"
	ActionQuery      = "query"
)

const (
	searchQuery  = "?action=opensearch&search=%s&limit=1&namespace=0&format=json"
	summaryQuery = "?action=query&format=json&prop=extracts&titles=%s&formatversion=2&exintro=1&explaintext=1"
	contentQuery = "?action=query&format=json&prop=extracts&titles=%s&formatversion=2&explaintext=1"
)

// BuildSearchURL returns the opensearch URL for term.
// Spaces become %20 and surrounding whitespace is trimmed; nothing else is
// escaped, so reserved and non-ASCII characters pass through untouched.
func BuildSearchURL(term string) string {
	return buildSearchURL(Endpoint, term)
}

// BuildSummaryURL returns the intro-extract URL for title. The title is used verbatim.
func BuildSummaryURL(title string) string {
	return buildSummaryURL(Endpoint, title)
}

// BuildContentURL returns the full-extract URL for title. The title is used verbatim.
func BuildContentURL(title string) string {
	return buildContentURL(Endpoint, title)
}

func buildSearchURL(endpoint, term string) string {
	encoded := strings.TrimSpace(strings.ReplaceAll(term, " ", "%20"))
	return endpoint + fmt.Sprintf(searchQuery, encoded)
}

func buildSummaryURL(endpoint, title string) string {
	return endpoint + fmt.Sprintf(summaryQuery, title)
}

func buildContentURL(endpoint, title string) string {
	return endpoint + fmt.Sprintf(contentQuery, title)
}
