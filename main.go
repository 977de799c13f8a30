// Wikipedia MCP Server - A Model Context Protocol server for English Wikipedia.
// Provides tools for finding an article by search term and reading its introduction.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/config"
	"github.com/olgasafonova/wikipedia-mcp-server/tools"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

const (
	ServerName    = "wikipedia-mcp-server"
	ServerVersion = "1.0.0"
)

const instructions = `Wikipedia MCP Server looks up articles on the English Wikipedia.

Available tools:
- wikipedia_search: Find the best-matching article title and URL for a term
- wikipedia_get_summary: Get the plain-text introduction of an article by exact title
- wikipedia_lookup: Search for a term and return the best match with its introduction

Configure via environment variables:
- WIKIPEDIA_USER_AGENT: User-Agent sent to Wikipedia (set a contact address for production use)
- WIKIPEDIA_TIMEOUT: Per-request timeout, e.g. 10s (default: none)
- LOG_LEVEL: debug, info, warn or error`

func main() {
	httpAddr := flag.String("http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", ServerName, ServerVersion)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traceConfig := tracing.DefaultConfig()
	traceConfig.ServiceVersion = ServerVersion
	shutdownTracing, err := tracing.Setup(ctx, traceConfig)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client := newWikipediaClient(cfg, logger)
	server := newServer(client, logger)

	logger.Info("Starting Wikipedia MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"endpoint", wikipedia.Endpoint,
		"transport", transportName(cfg.HTTPAddr),
	)

	if cfg.HTTPAddr != "" {
		err = serveHTTP(ctx, cfg.HTTPAddr, server, logger)
	} else {
		err = server.Run(ctx, &mcp.StdioTransport{})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func newWikipediaClient(cfg *config.Config, logger *slog.Logger) *wikipedia.Client {
	opts := []wikipedia.ClientOption{wikipedia.WithLogger(logger)}
	if cfg.UserAgent != "" {
		opts = append(opts, wikipedia.WithUserAgent(cfg.UserAgent))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, wikipedia.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	return wikipedia.NewClient(opts...)
}

func newServer(client *wikipedia.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

func transportName(httpAddr string) string {
	if httpAddr != "" {
		return "http"
	}
	return "stdio"
}
