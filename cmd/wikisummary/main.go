// wikisummary looks up a term on English Wikipedia and prints the best
// match with its introduction, or the whole article with -content.
//
//	wikisummary Programming Language
//	wikisummary -content USA
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/config"
	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wikisummary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	content := fs.Bool("content", false, "print the whole article instead of the introduction")
	endpoint := fs.String("endpoint", wikipedia.Endpoint, "Wikipedia action API endpoint")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: wikisummary [-content] <term...>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	term := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(term) == "" {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	opts := []wikipedia.ClientOption{wikipedia.WithLogger(logger)}
	if cfg.UserAgent != "" {
		opts = append(opts, wikipedia.WithUserAgent(cfg.UserAgent))
	}
	client := wikipedia.NewClient(opts...).WithBaseURL(*endpoint)

	page, err := client.Search(ctx, term)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var text string
	if *content {
		text, err = client.Content(ctx, page)
	} else {
		text, err = client.Summary(ctx, page)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s\n%s\n\n%s\n", page.Title(), page.URL(), text)
	return 0
}
