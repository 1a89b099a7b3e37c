// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// Engagement kinds accepted by [Store.Record].
const (
	EngagementView = "view"
	EngagementLike = "like"
)

// Store holds the current [Snapshot].
//
// # Concurrency
//
// Readers load the snapshot pointer without locking and may keep it for as
// long as they like: published snapshots are never modified. Writers (refresh
// and counter increments) are serialized and publish a new snapshot. At most
// one refresh loads at a time; callers arriving during a load share its result.
type Store struct {
	loader    *Loader
	current   atomic.Pointer[Snapshot]
	writeMu   sync.Mutex
	refreshes singleflight.Group
}

// NewStore creates a store holding an empty snapshot until the first refresh.
func NewStore(loader *Loader) *Store {
	store := &Store{loader: loader}
	store.current.Store(NewSnapshot([]Entry{}, []Author{}, []Category{}, []Volume{}, nil, time.Time{}))
	return store
}

// Current returns the published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Read calls fn with the published snapshot.
func (s *Store) Read(fn func(*Snapshot)) {
	fn(s.current.Load())
}

// Refresh loads a new snapshot and publishes it. The previous snapshot stays
// valid for readers that still hold it, and a collection that fails to load
// keeps serving its previous records (see [Loader.Reload]).
func (s *Store) Refresh(ctx context.Context) *Snapshot {
	result, _, _ := s.refreshes.Do(refreshKey, func() (any, error) {
		snapshot := s.loader.Reload(ctx, s.current.Load())

		s.writeMu.Lock()
		s.current.Store(snapshot)
		s.writeMu.Unlock()

		return snapshot, nil
	})
	return result.(*Snapshot)
}

// RecordView increments the view counter of a published entry.
func (s *Store) RecordView(idOrSlug string) (Stats, bool) {
	return s.Record(idOrSlug, EngagementView)
}

// RecordLike increments the like counter of a published entry.
func (s *Store) RecordLike(idOrSlug string) (Stats, bool) {
	return s.Record(idOrSlug, EngagementLike)
}

/*
Record applies an optimistic local increment.

Counters only grow. The increment lives until the next refresh replaces the
snapshot with upstream data; it is not forwarded. Unknown kinds, unknown ids
and unpublished entries report false.
*/
func (s *Store) Record(idOrSlug, kind string) (Stats, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snapshot := s.current.Load()
	position, ok := snapshot.entryIndex[idOrSlug]
	if !ok || !snapshot.Entries[position].IsPublished() {
		return Stats{}, false
	}

	stats := snapshot.Entries[position].Stats
	switch kind {
	case EngagementView:
		stats.ViewCount++
	case EngagementLike:
		stats.LikeCount++
	default:
		return Stats{}, false
	}

	s.current.Store(snapshot.withEntryStats(position, stats))
	return stats, true
}
