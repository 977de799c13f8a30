package einotool

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

const (
	goSearch  = `["golang",["Go (programming language)"],[""],["https://en.wikipedia.org/wiki/Go_(programming_language)"]]`
	goSummary = `{"batchcomplete":true,"query":{"pages":[{"pageid":25039021,"ns":0,"title":"Go (programming language)",` +
		`"extract":"Go is a high-level general-purpose programming language that is statically typed and compiled."}]}}`
)

func newFakeWikipedia(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("action") == "opensearch" && q.Get("search") == "golang":
			_, _ = io.WriteString(w, goSearch)
		case q.Get("action") == "opensearch":
			_, _ = io.WriteString(w, `["`+q.Get("search")+`",[],[],[]]`)
		case q.Get("action") == "query":
			_, _ = io.WriteString(w, goSummary)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *Config {
	return &Config{
		baseURL: baseURL,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewTool(t *testing.T) {
	ctx := context.Background()
	tl, err := NewTool(ctx, &Config{})
	assert.NoError(t, err)
	assert.NotNil(t, tl)

	info, err := tl.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wikipedia", info.Name)
	assert.Equal(t, defaultToolDesc, info.Desc)
}

func TestNewTool_NilConfig(t *testing.T) {
	_, err := NewTool(context.Background(), nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	conf := &Config{}
	require.NoError(t, conf.validate())
	assert.Equal(t, "wikipedia", conf.ToolName)
	assert.Equal(t, 2000, conf.DocMaxChars)
	assert.Equal(t, 3, conf.MaxRedirect)
	assert.NotZero(t, conf.Timeout)
	assert.NotNil(t, conf.Logger)

	conf = &Config{ToolName: "wiki", ToolDesc: "custom", DocMaxChars: 10}
	require.NoError(t, conf.validate())
	assert.Equal(t, "wiki", conf.ToolName)
	assert.Equal(t, "custom", conf.ToolDesc)
	assert.Equal(t, 10, conf.DocMaxChars)
}

func TestLookup_InvokableRun(t *testing.T) {
	ctx := context.Background()
	server := newFakeWikipedia(t)
	tl, err := NewTool(ctx, testConfig(server.URL))
	require.NoError(t, err)

	m, err := sonic.MarshalString(&LookupRequest{Query: "golang"})
	require.NoError(t, err)

	out, err := tl.InvokableRun(ctx, m)
	require.NoError(t, err)

	var resp LookupResponse
	require.NoError(t, sonic.UnmarshalString(out, &resp))
	assert.Equal(t, "Go (programming language)", resp.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)", resp.URL)
	assert.True(t, strings.HasPrefix(resp.Summary, "Go is a high-level"))
}

func TestLookup_Errors(t *testing.T) {
	ctx := context.Background()
	server := newFakeWikipedia(t)
	tl, err := NewTool(ctx, testConfig(server.URL))
	require.NoError(t, err)

	tests := []struct {
		name  string
		query *LookupRequest
		check func(t *testing.T, err error)
	}{
		{"not found", &LookupRequest{"Zzqxv"}, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, wikipedia.ErrPageNotFound)
			assert.Contains(t, err.Error(), "PageNotFound: Couldn't find 'Zzqxv'.")
		}},
		{"empty query", &LookupRequest{""}, func(t *testing.T, err error) {
			assert.True(t, wikipedia.IsValidation(err))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := sonic.MarshalString(tt.query)
			require.NoError(t, err)
			_, err = tl.InvokableRun(ctx, m)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLookup_DocMaxChars(t *testing.T) {
	server := newFakeWikipedia(t)
	conf := testConfig(server.URL)
	conf.DocMaxChars = 5
	require.NoError(t, conf.validate())

	resp, err := newLookup(context.Background(), conf).Lookup(context.Background(), &LookupRequest{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "Go is", resp.Summary)
}

func TestLookup_TooManyRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.RequestURI(), http.StatusFound)
	}))
	defer server.Close()

	conf := testConfig(server.URL)
	require.NoError(t, conf.validate())

	_, err := newLookup(context.Background(), conf).Lookup(context.Background(), &LookupRequest{Query: "golang"})
	require.Error(t, err)
	assert.True(t, wikipedia.IsPageRequest(err))
	assert.ErrorIs(t, err, ErrTooManyRedirects)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 3))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "Zür", truncateRunes("Zürich", 3))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
