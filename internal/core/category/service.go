// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
	"github.com/taibuivan/ansiklopedi/internal/present"
	"github.com/taibuivan/ansiklopedi/internal/search"
	"github.com/taibuivan/ansiklopedi/pkg/pagination"
)

const resourceCategory = "Category"

// Detail is a category with its figures and one page of its entries.
type Detail struct {
	Category   catalog.Category `json:"category"`
	EntryCount int              `json:"entryCount"`
	TotalViews int64            `json:"totalViews"`
	Entries    []present.Card   `json:"entries"`
	Meta       pagination.Meta  `json:"meta"`
}

// Service answers category queries from the current catalogue snapshot.
type Service struct {
	store      *catalog.Store
	source     catalog.Source
	presenters *present.Cache
	logger     *slog.Logger
}

// NewService constructs the category [Service].
func NewService(store *catalog.Store, source catalog.Source, presenters *present.Cache, logger *slog.Logger) *Service {
	return &Service{store: store, source: source, presenters: presenters, logger: logger}
}

// List returns every category with its statistics, largest first.
func (service *Service) List() ([]present.CategoryStats, []string) {
	snapshot := service.store.Current()
	return service.presenters.For(snapshot).CategoryStats(), snapshot.Unavailable
}

// Get resolves a category by id or slug and lists its published entries
// narrowed by entries, by title unless another sort is given. A category
// missing from the snapshot is fetched from the upstream source.
func (service *Service) Get(ctx context.Context, idOrSlug string, entries search.Query) (Detail, []string, error) {
	snapshot := service.store.Current()

	category, ok := snapshot.Category(idOrSlug)
	if !ok {
		fetched, err := service.source.GetCategory(ctx, idOrSlug)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return Detail{}, nil, apperr.NotFound(resourceCategory)
		case err != nil:
			service.logger.WarnContext(ctx, "category_upstream_lookup_failed",
				slog.String("category", idOrSlug),
				slog.Any("error", err),
			)
			return Detail{}, nil, apperr.Upstream(err)
		}
		category = *fetched
	}

	entries.CategoryID = category.ID
	if entries.Sort == "" {
		entries.Sort = search.SortTitleAsc
	}
	result := search.Entries(snapshot.Entries, entries)

	presenter := service.presenters.For(snapshot)
	return Detail{
		Category:   category,
		EntryCount: result.Total,
		TotalViews: presenter.CategoryViews(category.ID),
		Entries:    presenter.Cards(result.Items),
		Meta:       result.Meta(),
	}, snapshot.Unavailable, nil
}
