// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalogtest provides an in-memory [catalog.Source] for tests.
package catalogtest

import (
	"context"
	"errors"
	"sync"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
)

// ErrUpstream is returned by every call to a failing operation.
var ErrUpstream = errors.New("upstream down")

// Operation names counted by [Source] besides the collection names.
const (
	OpGetEntry    = "entry"
	OpCreateEntry = "create"
	OpGetAuthor   = "author"
	OpGetCategory = "category"
)

// Source is an in-memory [catalog.Source] with per-operation failures and
// call counting. Operations are keyed by collection name for lists and by the
// Op constants for single-record calls.
//
// Set the exported fields before the source is used concurrently.
type Source struct {
	Entries    []catalog.Entry
	Authors    []catalog.Author
	Categories []catalog.Category
	Volumes    []catalog.Volume

	// Fail makes the named operation return [ErrUpstream].
	Fail map[string]bool

	// Gate, when set, holds every list call until it is closed or the
	// call's context ends.
	Gate chan struct{}

	mu      sync.Mutex
	calls   map[string]int
	params  []catalog.EntryParams
	created []catalog.Entry
}

// NewSource returns an empty source.
func NewSource() *Source {
	return &Source{calls: map[string]int{}, Fail: map[string]bool{}}
}

// Sample returns a small catalogue: one published and one draft entry, one
// author, one category and one volume.
func Sample() *Source {
	source := NewSource()
	source.Entries = []catalog.Entry{
		{ID: "ent_001", Slug: "sakarya-nehri", Title: "Sakarya Nehri", Status: catalog.StatusPublished, Stats: catalog.Stats{ViewCount: 10, LikeCount: 1}},
		{ID: "ent_002", Slug: "taslak", Title: "Taslak", Status: catalog.StatusDraft},
	}
	source.Authors = []catalog.Author{{ID: "auth_001", FullName: "Ayşe Yılmaz"}}
	source.Categories = []catalog.Category{{ID: "cat_01", Name: "Coğrafya", Slug: "cografya"}}
	source.Volumes = []catalog.Volume{{ID: "vol_01", Title: "Cilt 1", Number: 1}}
	return source
}

// Count reports how many times the operation was called.
func (s *Source) Count(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[operation]
}

// EntryParams returns the parameters of every ListEntries call, in order.
func (s *Source) EntryParams() []catalog.EntryParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.EntryParams(nil), s.params...)
}

// Created returns the entries accepted by CreateEntry.
func (s *Source) Created() []catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Entry(nil), s.created...)
}

func (s *Source) hit(operation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[operation]++
	if s.Fail[operation] {
		return ErrUpstream
	}
	return nil
}

// list counts a list call, waits on Gate and honours ctx.
func (s *Source) list(ctx context.Context, collection string) error {
	if err := s.hit(collection); err != nil {
		return err
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

func (s *Source) ListEntries(ctx context.Context, params catalog.EntryParams) ([]catalog.Entry, error) {
	s.mu.Lock()
	s.params = append(s.params, params)
	s.mu.Unlock()

	if err := s.list(ctx, catalog.CollectionEntries); err != nil {
		return nil, err
	}
	return s.Entries, nil
}

func (s *Source) GetEntry(_ context.Context, idOrSlug string) (*catalog.Entry, error) {
	if err := s.hit(OpGetEntry); err != nil {
		return nil, err
	}
	for _, entry := range s.Entries {
		if entry.ID == idOrSlug || entry.Slug == idOrSlug {
			return &entry, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Source) CreateEntry(_ context.Context, entry catalog.Entry) (*catalog.Entry, error) {
	if err := s.hit(OpCreateEntry); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.created = append(s.created, entry)
	s.mu.Unlock()
	return &entry, nil
}

func (s *Source) ListAuthors(ctx context.Context) ([]catalog.Author, error) {
	if err := s.list(ctx, catalog.CollectionAuthors); err != nil {
		return nil, err
	}
	return s.Authors, nil
}

func (s *Source) GetAuthor(_ context.Context, id string) (*catalog.Author, error) {
	if err := s.hit(OpGetAuthor); err != nil {
		return nil, err
	}
	for _, author := range s.Authors {
		if author.ID == id {
			return &author, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Source) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if err := s.list(ctx, catalog.CollectionCategories); err != nil {
		return nil, err
	}
	return s.Categories, nil
}

func (s *Source) GetCategory(_ context.Context, idOrSlug string) (*catalog.Category, error) {
	if err := s.hit(OpGetCategory); err != nil {
		return nil, err
	}
	for _, category := range s.Categories {
		if category.ID == idOrSlug || category.Slug == idOrSlug {
			return &category, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Source) ListVolumes(ctx context.Context) ([]catalog.Volume, error) {
	if err := s.list(ctx, catalog.CollectionVolumes); err != nil {
		return nil, err
	}
	return s.Volumes, nil
}
