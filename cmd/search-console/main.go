// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command search-console searches the catalogue interactively from a terminal.
//
// It loads one snapshot from the configured source and reads search terms from
// standard input, one per line. Terms go through the same debounce as the web
// search box, so typing quickly only searches the last line.
//
// Usage:
//
//	search-console [-sort title-asc] [-limit 10] [-category cat_01]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/config"
	"github.com/taibuivan/ansiklopedi/internal/platform/constants"
	"github.com/taibuivan/ansiklopedi/internal/search"
)

func main() {
	sortKey := flag.String("sort", string(search.SortTitleAsc), "result ordering")
	limit := flag.Int("limit", 10, "results shown per term")
	categoryID := flag.String("category", "", "restrict to one category id")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failure", slog.String("step", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	source, err := catalog.NewRESTSource(cfg.UpstreamURL, cfg.UpstreamTimeout, nil)
	if err != nil {
		log.Error("startup_failure", slog.String("step", "configure upstream"), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loadCtx, cancel := context.WithTimeout(ctx, constants.SnapshotLoadTimeout)
	snapshot := catalog.NewLoader(source, log, nil).Load(loadCtx)
	cancel()

	if snapshot.IsUnavailable(catalog.CollectionEntries) {
		log.Error("entries_unavailable", slog.String("upstream", cfg.UpstreamURL))
		os.Exit(1)
	}

	base := search.Query{Sort: search.SortKey(*sortKey), CategoryID: *categoryID, PageSize: *limit}
	debouncer := search.NewDebouncer(constants.SearchDebounce, search.MinTermLength,
		func(_ context.Context, term string) (search.Result[catalog.Entry], error) {
			q := base
			q.Term = term
			return search.Entries(snapshot.Entries, q), nil
		},
		func(term string, result search.Result[catalog.Entry], _ error) {
			printResult(os.Stdout, term, result)
		},
	)
	defer debouncer.Stop()

	fmt.Fprintf(os.Stdout, "%d entries loaded. Type a term and press enter.\n", len(snapshot.Entries))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			debouncer.Submit(line)
		}
	}
}

func printResult(w io.Writer, term string, result search.Result[catalog.Entry]) {
	if utf8.RuneCountInString(term) < search.MinTermLength {
		return
	}

	fmt.Fprintf(w, "%q: %d match(es)\n", term, result.Total)
	for _, entry := range result.Items {
		fmt.Fprintf(w, "  %-40s %s\n", entry.Title, entry.Slug)
	}
}
