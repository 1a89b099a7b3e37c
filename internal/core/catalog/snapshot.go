// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"slices"
	"sync/atomic"
	"time"
)

// generations numbers snapshots built by [NewSnapshot].
var generations atomic.Uint64

// Snapshot is one fully loaded set of collections.
//
// A snapshot is immutable once published by the [Store]. Collections that
// failed to load are named in Unavailable; they are empty unless an earlier
// load filled them, in which case they are also named in Stale.
type Snapshot struct {
	Entries    []Entry
	Authors    []Author
	Categories []Category
	Volumes    []Volume

	// Unavailable lists the collections whose fetch failed, in load order.
	Unavailable []string

	// Stale lists the unavailable collections still serving records from an
	// earlier load.
	Stale    []string
	LoadedAt time.Time

	// entryIndex maps both ids and slugs to positions in Entries.
	entryIndex map[string]int

	generation uint64
}

// NewSnapshot builds a snapshot and its lookup index.
func NewSnapshot(entries []Entry, authors []Author, categories []Category, volumes []Volume, unavailable []string, loadedAt time.Time) *Snapshot {
	snapshot := &Snapshot{
		Entries:     entries,
		Authors:     authors,
		Categories:  categories,
		Volumes:     volumes,
		Unavailable: unavailable,
		LoadedAt:    loadedAt,
		generation:  generations.Add(1),
	}
	snapshot.reindex()
	return snapshot
}

// Generation identifies the load a snapshot came from. Snapshots derived by
// counter increments keep the generation of the snapshot they were derived
// from, and share its authors, categories and volumes.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}

// Degraded reports whether any collection failed to load.
func (s *Snapshot) Degraded() bool {
	return len(s.Unavailable) > 0
}

// IsUnavailable reports whether the named collection failed to load.
func (s *Snapshot) IsUnavailable(collection string) bool {
	return slices.Contains(s.Unavailable, collection)
}

// Missing reports whether the named collection has no records to serve
// because no load has ever succeeded for it.
func (s *Snapshot) Missing(collection string) bool {
	return s.IsUnavailable(collection) && !slices.Contains(s.Stale, collection)
}

// serves reports whether s holds loaded records for collection. A nil or
// never-loaded snapshot serves nothing.
func (s *Snapshot) serves(collection string) bool {
	return s != nil && !s.LoadedAt.IsZero() && !s.Missing(collection)
}

// Entry finds an entry by id, then by slug. Unpublished entries are returned
// too; callers decide visibility.
func (s *Snapshot) Entry(idOrSlug string) (Entry, bool) {
	position, ok := s.entryIndex[idOrSlug]
	if !ok {
		return Entry{}, false
	}
	return s.Entries[position], true
}

// Author finds an author by id.
func (s *Snapshot) Author(id string) (Author, bool) {
	for _, author := range s.Authors {
		if author.ID == id {
			return author, true
		}
	}
	return Author{}, false
}

// Category finds a category by id or slug.
func (s *Snapshot) Category(idOrSlug string) (Category, bool) {
	for _, category := range s.Categories {
		if category.ID == idOrSlug || (category.Slug != "" && category.Slug == idOrSlug) {
			return category, true
		}
	}
	return Category{}, false
}

// Volume finds a volume by id.
func (s *Snapshot) Volume(id string) (Volume, bool) {
	for _, volume := range s.Volumes {
		if volume.ID == id {
			return volume, true
		}
	}
	return Volume{}, false
}

// withEntryStats returns a copy of s in which the entry at position has the
// given stats. Every other slice is shared with s.
func (s *Snapshot) withEntryStats(position int, stats Stats) *Snapshot {
	entries := slices.Clone(s.Entries)
	entries[position].Stats = stats

	next := *s
	next.Entries = entries
	return &next
}

// reindex rebuilds the id and slug lookup. Ids win over slugs on collision
// and the first occurrence of a duplicate wins.
func (s *Snapshot) reindex() {
	s.entryIndex = make(map[string]int, len(s.Entries)*2)
	for position, entry := range s.Entries {
		if _, exists := s.entryIndex[entry.ID]; !exists && entry.ID != "" {
			s.entryIndex[entry.ID] = position
		}
	}
	for position, entry := range s.Entries {
		if _, exists := s.entryIndex[entry.Slug]; !exists && entry.Slug != "" {
			s.entryIndex[entry.Slug] = position
		}
	}
}
