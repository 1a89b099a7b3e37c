// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ansiklopedi/internal/platform/constants"
	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
)

// CachedSource decorates a [Source] with a Redis read-through cache.
//
// # Cached Reads
//
//   - Full collection lists (entry lists only when unfiltered).
//   - Single records by id.
//
// Redis failures never fail a read; the call falls through to the wrapped
// source. Creating an entry drops the cached entry list.
type CachedSource struct {
	next    Source
	client  redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Registry
}

// NewCachedSource wraps next. metrics may be nil.
func NewCachedSource(next Source, client redis.Cmdable, ttl time.Duration, logger *slog.Logger, registry *metrics.Registry) *CachedSource {
	return &CachedSource{
		next:    next,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: registry,
	}
}

// # Entries

// ListEntries implements [Source]. Filtered listings bypass the cache.
func (s *CachedSource) ListEntries(ctx context.Context, params EntryParams) ([]Entry, error) {
	if params != (EntryParams{}) {
		return s.next.ListEntries(ctx, params)
	}
	return readThrough(ctx, s, listKey(CollectionEntries), CollectionEntries, func() ([]Entry, error) {
		return s.next.ListEntries(ctx, params)
	})
}

// GetEntry implements [Source].
func (s *CachedSource) GetEntry(ctx context.Context, id string) (*Entry, error) {
	return readThrough(ctx, s, recordKey(CollectionEntries, id), CollectionEntries, func() (*Entry, error) {
		return s.next.GetEntry(ctx, id)
	})
}

// CreateEntry implements [Source].
func (s *CachedSource) CreateEntry(ctx context.Context, entry Entry) (*Entry, error) {
	created, err := s.next.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err := s.client.Del(ctx, listKey(CollectionEntries)).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache_invalidate_failed",
			slog.String("collection", CollectionEntries),
			slog.Any("error", err),
		)
	}
	return created, nil
}

// # Authors, Categories, Volumes

// ListAuthors implements [Source].
func (s *CachedSource) ListAuthors(ctx context.Context) ([]Author, error) {
	return readThrough(ctx, s, listKey(CollectionAuthors), CollectionAuthors, func() ([]Author, error) {
		return s.next.ListAuthors(ctx)
	})
}

// GetAuthor implements [Source].
func (s *CachedSource) GetAuthor(ctx context.Context, id string) (*Author, error) {
	return readThrough(ctx, s, recordKey(CollectionAuthors, id), CollectionAuthors, func() (*Author, error) {
		return s.next.GetAuthor(ctx, id)
	})
}

// ListCategories implements [Source].
func (s *CachedSource) ListCategories(ctx context.Context) ([]Category, error) {
	return readThrough(ctx, s, listKey(CollectionCategories), CollectionCategories, func() ([]Category, error) {
		return s.next.ListCategories(ctx)
	})
}

// GetCategory implements [Source].
func (s *CachedSource) GetCategory(ctx context.Context, id string) (*Category, error) {
	return readThrough(ctx, s, recordKey(CollectionCategories, id), CollectionCategories, func() (*Category, error) {
		return s.next.GetCategory(ctx, id)
	})
}

// ListVolumes implements [Source].
func (s *CachedSource) ListVolumes(ctx context.Context) ([]Volume, error) {
	return readThrough(ctx, s, listKey(CollectionVolumes), CollectionVolumes, func() ([]Volume, error) {
		return s.next.ListVolumes(ctx)
	})
}

// # Cache Helpers

func listKey(collection string) string {
	return constants.RedisPrefixCollection + collection
}

func recordKey(collection, id string) string {
	return constants.RedisPrefixRecord + collection + ":" + id
}

// readThrough returns the cached value under key, or loads and stores it.
// Errors from load are returned as-is and never cached.
func readThrough[T any](ctx context.Context, s *CachedSource, key, collection string, load func() (T, error)) (T, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if decodeErr := json.Unmarshal(raw, &cached); decodeErr == nil {
			s.metrics.ObserveCache(collection, true)
			return cached, nil
		}
		s.logger.WarnContext(ctx, "cache_entry_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	s.metrics.ObserveCache(collection, false)

	value, err := load()
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return value, nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
	return value, nil
}
