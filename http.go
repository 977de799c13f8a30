package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxRequestBody caps JSON-RPC request bodies on the HTTP transport
const maxRequestBody = 1 << 20

// newHTTPHandler routes /mcp to the streamable MCP transport alongside
// /metrics and /healthz.
func newHTTPHandler(server *mcp.Server, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "ok")
	})

	return NewSecurityMiddleware(mux, logger, SecurityConfig{MaxBodySize: maxRequestBody})
}

func serveHTTP(ctx context.Context, addr string, server *mcp.Server, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr, "mcp", "/mcp", "metrics", "/metrics")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// routeLabel maps a request path onto the fixed set of served routes so
// metric label cardinality stays bounded
func routeLabel(path string) string {
	switch path {
	case "/mcp", "/metrics", "/healthz":
		return path
	default:
		return "other"
	}
}

// SecurityConfig bounds what the HTTP transport accepts
type SecurityConfig struct {
	MaxBodySize int64
}

// SecurityMiddleware limits request bodies, recovers handler panics and
// records request metrics.
type SecurityMiddleware struct {
	next   http.Handler
	logger *slog.Logger
	config SecurityConfig
}

// NewSecurityMiddleware wraps next
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	return &SecurityMiddleware{next: next, logger: logger, config: config}
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	route := routeLabel(r.URL.Path)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	ctx, span := tracing.StartSpan(tracing.ExtractHTTP(r.Context(), r.Header), "http "+route)
	defer span.End()
	r = r.WithContext(ctx)

	defer func() {
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}()
	defer func() {
		if v := recover(); v != nil {
			sm.logger.Error("Panic recovered",
				"operation", "http "+route,
				"panic", v,
				"stack", string(debug.Stack()))
			if !rec.wrote {
				http.Error(rec, "internal server error", http.StatusInternalServerError)
			}
		}
	}()

	if sm.config.MaxBodySize > 0 {
		if r.ContentLength > sm.config.MaxBodySize {
			http.Error(rec, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(rec, r.Body, sm.config.MaxBodySize)
	}

	sm.next.ServeHTTP(rec, r)
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wrote {
		s.status = code
		s.wrote = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wrote = true
	return s.ResponseWriter.Write(b)
}

// Flush lets streamed MCP responses through the recorder
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
