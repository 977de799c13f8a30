package wikipedia

// SearchArgs contains parameters for the search tool
type SearchArgs struct {
	Term string `json:"term" jsonschema:"Search term, e.g. Albert Einstein. Misspellings are resolved by Wikipedia's own fuzzy matching."`
}

// SearchToolResult is the best match for a search
type SearchToolResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// GetSummaryArgs contains parameters for the summary tool
type GetSummaryArgs struct {
	Title string `json:"title" jsonschema:"Exact page title as returned by wikipedia_search"`
}

// SummaryToolResult is the plain-text introduction of a page
type SummaryToolResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// LookupArgs contains parameters for the combined search-and-summarize tool
type LookupArgs struct {
	Term string `json:"term" jsonschema:"Search term; the best match is summarized"`
}

// LookupResult is a matched page together with its summary
type LookupResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}
