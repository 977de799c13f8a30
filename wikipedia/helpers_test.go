package wikipedia

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

const (
	einsteinSearch = `["Albert Einstein",["Albert Einstein"],[""],["https://en.wikipedia.org/wiki/Albert_Einstein"]]`

	programmingSearch = `["progrmming lang",["Programming language"],[""],["https://en.wikipedia.org/wiki/Programming_language"]]`

	einsteinSummary = `{"batchcomplete":true,"query":{"pages":[{"pageid":736,"ns":0,"title":"Albert Einstein",` +
		`"extract":"Albert Einstein (14 March 1879 – 18 April 1955) was a German-born theoretical physicist."}]}}`

	einsteinContent = `{"batchcomplete":true,"query":{"pages":[{"pageid":736,"ns":0,"title":"Albert Einstein",` +
		`"extract":"Albert Einstein was a German-born theoretical physicist.\n\n\n== Life and career ==\nEinstein was born in Ulm."}]}}`

	programmingSummary = `{"batchcomplete":true,"query":{"pages":[{"pageid":23015,"ns":0,"title":"Programming language",` +
		`"extract":"A programming language is a system of notation for writing computer programs."}]}}`
)

// fakeWikipedia serves canned opensearch and query/extracts payloads and
// remembers every request it saw.
type fakeWikipedia struct {
	*httptest.Server

	requests atomic.Int32

	mu       sync.Mutex
	rawQuery []string
}

func newFakeWikipedia(t *testing.T) *fakeWikipedia {
	t.Helper()
	f := &fakeWikipedia{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeWikipedia) serve(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.mu.Lock()
	f.rawQuery = append(f.rawQuery, r.URL.RawQuery)
	f.mu.Unlock()

	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	switch q.Get("action") {
	case "opensearch":
		switch q.Get("search") {
		case "Albert Einstein":
			_, _ = io.WriteString(w, einsteinSearch)
		case "progrmming lang":
			_, _ = io.WriteString(w, programmingSearch)
		default:
			_, _ = io.WriteString(w, `["`+q.Get("search")+`",[],[],[]]`)
		}
	case "query":
		switch q.Get("titles") {
		case "Albert Einstein":
			if q.Has("exintro") {
				_, _ = io.WriteString(w, einsteinSummary)
			} else {
				_, _ = io.WriteString(w, einsteinContent)
			}
		case "Programming language":
			_, _ = io.WriteString(w, programmingSummary)
		default:
			_, _ = io.WriteString(w, `{"batchcomplete":true,"query":{"pages":[{"ns":0,"title":"`+q.Get("titles")+`","missing":true}]}}`)
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (f *fakeWikipedia) lastRawQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rawQuery) == 0 {
		return ""
	}
	return f.rawQuery[len(f.rawQuery)-1]
}

// staticServer answers every request with the same status and body
func staticServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func testClient(baseURL string) *Client {
	return NewClient(WithLogger(discardLogger())).WithBaseURL(baseURL)
}

func staticServerFunc(t *testing.T, fn http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(fn)
	t.Cleanup(server.Close)
	return server
}
