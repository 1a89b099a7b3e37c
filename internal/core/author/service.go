// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
	"github.com/taibuivan/ansiklopedi/internal/present"
	"github.com/taibuivan/ansiklopedi/internal/search"
	"github.com/taibuivan/ansiklopedi/pkg/pagination"
	"github.com/taibuivan/ansiklopedi/pkg/slice"
)

const resourceAuthor = "Author"

// Summary is an author as listed, with the number of published entries.
type Summary struct {
	catalog.Author

	EntryCount int `json:"entryCount"`
}

// Detail is an author with statistics and one page of their entries.
type Detail struct {
	Author  catalog.Author      `json:"author"`
	Stats   present.AuthorStats `json:"stats"`
	Entries []present.Card      `json:"entries"`
	Meta    pagination.Meta     `json:"meta"`
}

// # Service Layer

// Service answers author queries from the current catalogue snapshot.
type Service struct {
	store      *catalog.Store
	source     catalog.Source
	presenters *present.Cache
	metrics    *metrics.Registry
	logger     *slog.Logger
}

// NewService constructs the author [Service].
func NewService(store *catalog.Store, source catalog.Source, presenters *present.Cache, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		source:     source,
		presenters: presenters,
		metrics:    registry,
		logger:     logger,
	}
}

// List runs q over the authors. Only the term, letter, title sorts and paging apply.
func (service *Service) List(q search.Query) ([]Summary, pagination.Meta, []string) {
	started := time.Now()
	snapshot := service.store.Current()
	presenter := service.presenters.For(snapshot)

	result := search.Authors(snapshot.Authors, q)
	summaries := slice.Map(result.Items, func(author catalog.Author) Summary {
		return Summary{Author: author, EntryCount: presenter.AuthorStats(author.ID).EntryCount}
	})
	if summaries == nil {
		summaries = []Summary{}
	}

	service.metrics.ObserveQuery(catalog.CollectionAuthors, time.Since(started))
	return summaries, result.Meta(), snapshot.Unavailable
}

/*
Get resolves an author and one page of their published entries.

entries narrows the listing further; its AuthorID is always replaced by id.
An author missing from the snapshot is fetched from the upstream source.
*/
func (service *Service) Get(ctx context.Context, id string, entries search.Query) (Detail, []string, error) {
	snapshot := service.store.Current()

	author, ok := snapshot.Author(id)
	if !ok {
		fetched, err := service.source.GetAuthor(ctx, id)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return Detail{}, nil, apperr.NotFound(resourceAuthor)
		case err != nil:
			service.logger.WarnContext(ctx, "author_upstream_lookup_failed",
				slog.String("author", id),
				slog.Any("error", err),
			)
			return Detail{}, nil, apperr.Upstream(err)
		}
		author = *fetched
	}

	presenter := service.presenters.For(snapshot)
	entries.AuthorID = author.ID
	result := search.Entries(snapshot.Entries, entries)

	return Detail{
		Author:  author,
		Stats:   presenter.AuthorStats(author.ID),
		Entries: presenter.Cards(result.Items),
		Meta:    result.Meta(),
	}, snapshot.Unavailable, nil
}
