package wikipedia

import "context"

// Page is a Wikipedia article found by a search. It is an immutable value:
// copy it freely and compare it with ==.
type Page struct {
	title string
	url   string
}

// NewPage creates a Page from a title and its canonical URL
func NewPage(title, url string) Page {
	return Page{title: title, url: url}
}

// Title returns the canonical page title
func (p Page) Title() string {
	return p.title
}

// URL returns the canonical page URL
func (p Page) URL() string {
	return p.url
}

func (p Page) String() string {
	return p.title + " <" + p.url + ">"
}

var defaultClient = NewClient()

// Search finds the best-matching page for term using the default client
func Search(ctx context.Context, term string) (Page, error) {
	return defaultClient.Search(ctx, term)
}

// Summary returns the plain-text introduction of the page using the default client
func (p Page) Summary(ctx context.Context) (string, error) {
	return defaultClient.Summary(ctx, p)
}

// Content returns the whole article as plain text using the default client
func (p Page) Content(ctx context.Context) (string, error) {
	return defaultClient.Content(ctx, p)
}
