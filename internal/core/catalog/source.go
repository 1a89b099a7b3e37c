// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a [Source] when a single record does not exist.
var ErrNotFound = errors.New("catalog: record not found")

// EntryParams narrows an upstream entry listing.
//
// The zero value lists every entry. The filters only narrow the transfer:
// publication gating, ordering and paging stay with the search engine, which
// re-applies the same filters in memory.
type EntryParams struct {
	Query      string
	CategoryID string
	AuthorID   string
	VolumeID   string
}

// Source reads the catalogue collections.
//
// # Implementations
//
//   - [RESTSource]: json-server style HTTP backend.
//   - [PostgresSource]: JSONB document tables.
//   - [CachedSource]: Redis decorator over either of the above.
//
// Single-record lookups return [ErrNotFound] when the id is unknown.
type Source interface {
	ListEntries(ctx context.Context, params EntryParams) ([]Entry, error)
	GetEntry(ctx context.Context, id string) (*Entry, error)
	CreateEntry(ctx context.Context, entry Entry) (*Entry, error)

	ListAuthors(ctx context.Context) ([]Author, error)
	GetAuthor(ctx context.Context, id string) (*Author, error)

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)

	ListVolumes(ctx context.Context) ([]Volume, error)
}
