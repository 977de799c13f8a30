package tools

// AllTools contains all tool specifications for the Wikipedia MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SEARCH TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_search",
		Method:   "Search",
		Title:    "Search Wikipedia",
		Category: "search",
		Description: `Find the single best-matching English Wikipedia article for a term.

USE WHEN: User asks "is there a Wikipedia page about X", "link me the article on X", or you need the exact title before fetching a summary.

NOT FOR: Reading the article text (use wikipedia_get_summary or wikipedia_lookup).

PARAMETERS:
- term: Search text (required). Misspellings are usually corrected, e.g. "progrmming lang" finds "Programming language".

RETURNS: The canonical page title and URL. Fails with PageNotFound when nothing matches.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_lookup",
		Method:   "Lookup",
		Title:    "Look Up Wikipedia Topic",
		Category: "search",
		Description: `Search for a term and return the best match together with its introduction.

USE WHEN: User asks "what is X", "who was X", "tell me about X" and has not named an exact article.

NOT FOR: Fetching a page whose exact title you already know (use wikipedia_get_summary).

PARAMETERS:
- term: Search text (required)

RETURNS: Title, URL and the plain-text introduction of the best-matching article.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_get_summary",
		Method:   "GetSummary",
		Title:    "Get Wikipedia Summary",
		Category: "read",
		Description: `Get the plain-text introduction of a Wikipedia article by exact title.

USE WHEN: You already have a title from wikipedia_search, or the user names the article precisely.

NOT FOR: Free-text questions where the title is unknown (use wikipedia_lookup).

PARAMETERS:
- title: Exact article title (required), e.g. "Albert Einstein"

RETURNS: The title and the article's first section as plain text. Fails with ResponseError when the page does not exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
