// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
)

// loadOrder is the canonical collection order used for Unavailable.
var loadOrder = []string{CollectionEntries, CollectionAuthors, CollectionCategories, CollectionVolumes}

// Loader fetches the four collections into a [Snapshot].
type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *metrics.Registry
	now     func() time.Time
}

// NewLoader creates a loader. registry may be nil.
func NewLoader(source Source, logger *slog.Logger, registry *metrics.Registry) *Loader {
	return &Loader{
		source:  source,
		logger:  logger,
		metrics: registry,
		now:     time.Now,
	}
}

/*
Load fetches every collection concurrently and joins once all have finished.

# Graceful Degradation

A failed collection is replaced by an empty one and named in
[Snapshot.Unavailable]. Load itself never fails; a snapshot with all four
collections unavailable is still a valid snapshot.
*/
func (l *Loader) Load(ctx context.Context) *Snapshot {
	return l.Reload(ctx, nil)
}

// Reload is [Loader.Load] on top of a previously published snapshot. A
// collection that fails to load keeps the previous snapshot's records when
// it had any; it is still named in Unavailable and also in Stale.
func (l *Loader) Reload(ctx context.Context, previous *Snapshot) *Snapshot {
	var (
		group  errgroup.Group
		mu     sync.Mutex
		failed = make(map[string]bool, len(loadOrder))

		entries    []Entry
		authors    []Author
		categories []Category
		volumes    []Volume
	)

	markFailed := func(collection string) {
		mu.Lock()
		failed[collection] = true
		mu.Unlock()
	}

	group.Go(func() error {
		entries = fetchCollection(ctx, l, CollectionEntries, markFailed, func(ctx context.Context) ([]Entry, error) {
			return l.source.ListEntries(ctx, EntryParams{})
		})
		return nil
	})
	group.Go(func() error {
		authors = fetchCollection(ctx, l, CollectionAuthors, markFailed, l.source.ListAuthors)
		return nil
	})
	group.Go(func() error {
		categories = fetchCollection(ctx, l, CollectionCategories, markFailed, l.source.ListCategories)
		return nil
	})
	group.Go(func() error {
		volumes = fetchCollection(ctx, l, CollectionVolumes, markFailed, l.source.ListVolumes)
		return nil
	})

	// Every goroutine returns nil; failures are tracked per collection.
	_ = group.Wait()

	unavailable := make([]string, 0, len(failed))
	stale := make([]string, 0, len(failed))
	for _, collection := range loadOrder {
		if !failed[collection] {
			continue
		}
		unavailable = append(unavailable, collection)
		if !previous.serves(collection) {
			continue
		}

		stale = append(stale, collection)
		switch collection {
		case CollectionEntries:
			entries = previous.Entries
		case CollectionAuthors:
			authors = previous.Authors
		case CollectionCategories:
			categories = previous.Categories
		case CollectionVolumes:
			volumes = previous.Volumes
		}
	}

	snapshot := NewSnapshot(entries, authors, categories, volumes, unavailable, l.now())
	snapshot.Stale = stale

	l.metrics.SetCollectionSize(CollectionEntries, len(entries))
	l.metrics.SetCollectionSize(CollectionAuthors, len(authors))
	l.metrics.SetCollectionSize(CollectionCategories, len(categories))
	l.metrics.SetCollectionSize(CollectionVolumes, len(volumes))
	l.metrics.ObserveRefresh(snapshot.Degraded())

	l.logger.InfoContext(ctx, "snapshot_loaded",
		slog.Int("entries", len(entries)),
		slog.Int("authors", len(authors)),
		slog.Int("categories", len(categories)),
		slog.Int("volumes", len(volumes)),
		slog.Any("unavailable", unavailable),
		slog.Any("stale", stale),
	)
	return snapshot
}

// fetchCollection runs one fetch, meters it and substitutes an empty list on
// failure.
func fetchCollection[T any](ctx context.Context, l *Loader, collection string, markFailed func(string), fetch func(context.Context) ([]T, error)) []T {
	start := time.Now()
	items, err := fetch(ctx)
	l.metrics.ObserveFetch(collection, time.Since(start), err)

	if err != nil {
		l.logger.WarnContext(ctx, "collection_fetch_failed",
			slog.String("collection", collection),
			slog.Any("error", err),
		)
		markFailed(collection)
		return []T{}
	}

	if items == nil {
		items = []T{}
	}
	return items
}
