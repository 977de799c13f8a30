package wikipedia

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTerm(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain", "Albert Einstein", false},
		{"empty", "", true},
		{"whitespace", "  \t", true},
		{"max length", strings.Repeat("a", 255), false},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTerm("term", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSearchMCP(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	result, err := client.SearchMCP(context.Background(), SearchArgs{Term: "Albert Einstein"})
	require.NoError(t, err)
	assert.Equal(t, SearchToolResult{
		Title: "Albert Einstein",
		URL:   "https://en.wikipedia.org/wiki/Albert_Einstein",
	}, result)
}

func TestSearchMCP_Validation(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	_, err := client.SearchMCP(context.Background(), SearchArgs{Term: " "})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualValues(t, 0, fake.requests.Load())
}

func TestGetSummaryMCP(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	result, err := client.GetSummaryMCP(context.Background(), GetSummaryArgs{Title: "Albert Einstein"})
	require.NoError(t, err)
	assert.Equal(t, "Albert Einstein", result.Title)
	assert.Contains(t, result.Summary, "theoretical physicist")
}

func TestGetSummaryMCP_QueriesExactTitle(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	_, err := client.GetSummaryMCP(context.Background(), GetSummaryArgs{Title: "Programming language"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.requests.Load())
	assert.Contains(t, fake.lastRawQuery(), "titles=Programming%20language")
	assert.Contains(t, fake.lastRawQuery(), "exintro")
}

func TestGetSummaryMCP_Errors(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	_, err := client.GetSummaryMCP(context.Background(), GetSummaryArgs{})
	assert.True(t, IsValidation(err))

	_, err = client.GetSummaryMCP(context.Background(), GetSummaryArgs{Title: "Nope"})
	assert.True(t, IsResponse(err))
}

func TestLookupMCP(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	result, err := client.LookupMCP(context.Background(), LookupArgs{Term: "progrmming lang"})
	require.NoError(t, err)
	assert.Equal(t, LookupResult{
		Title:   "Programming language",
		URL:     "https://en.wikipedia.org/wiki/Programming_language",
		Summary: "A programming language is a system of notation for writing computer programs.",
	}, result)
	assert.EqualValues(t, 2, fake.requests.Load())
}

func TestLookupMCP_NotFound(t *testing.T) {
	fake := newFakeWikipedia(t)
	client := testClient(fake.URL)

	_, err := client.LookupMCP(context.Background(), LookupArgs{Term: "Zzqxv"})
	assert.True(t, IsPageNotFound(err))
	assert.EqualValues(t, 1, fake.requests.Load())
}
