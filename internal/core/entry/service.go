// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
	"github.com/taibuivan/ansiklopedi/internal/present"
	"github.com/taibuivan/ansiklopedi/internal/search"
	"github.com/taibuivan/ansiklopedi/pkg/pagination"
)

// resourceEntry names the resource in not-found errors.
const resourceEntry = "Entry"

// # Service Layer

// Service answers entry queries from the current catalogue snapshot.
//
// Reads never touch the upstream source, except for a detail lookup of an
// entry the snapshot does not hold and for listings while no entry load has
// ever succeeded. Draft submission always goes upstream.
type Service struct {
	store      *catalog.Store
	source     catalog.Source
	presenters *present.Cache
	metrics    *metrics.Registry
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs the entry [Service].
func NewService(store *catalog.Store, source catalog.Source, presenters *present.Cache, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		source:     source,
		presenters: presenters,
		metrics:    registry,
		logger:     logger,
		now:        time.Now,
	}
}

// Page is one page of entry cards.
type Page struct {
	Cards       []present.Card
	Meta        pagination.Meta
	Unavailable []string
}

// # Listing

/*
List runs q against the published entries of the snapshot.

When the snapshot has no entries to serve, the filters of q are forwarded to
the upstream source and the engine runs over its answer instead. If that
fails too the page is empty and entries stay listed as unavailable.
*/
func (service *Service) List(ctx context.Context, q search.Query) Page {
	started := time.Now()
	snapshot := service.store.Current()

	entries, unavailable := snapshot.Entries, snapshot.Unavailable
	if snapshot.Missing(catalog.CollectionEntries) {
		entries, unavailable = service.listUpstream(ctx, q, snapshot)
	}

	result := search.Entries(entries, q)
	cards := service.presenters.For(snapshot).Cards(result.Items)

	service.metrics.ObserveQuery(catalog.CollectionEntries, time.Since(started))
	return Page{Cards: cards, Meta: result.Meta(), Unavailable: unavailable}
}

func (service *Service) listUpstream(ctx context.Context, q search.Query, snapshot *catalog.Snapshot) ([]catalog.Entry, []string) {
	fetched, err := service.source.ListEntries(ctx, q.EntryParams())
	if err != nil {
		service.logger.WarnContext(ctx, "entry_upstream_list_failed", slog.Any("error", err))
		return snapshot.Entries, snapshot.Unavailable
	}

	unavailable := slices.DeleteFunc(slices.Clone(snapshot.Unavailable), func(collection string) bool {
		return collection == catalog.CollectionEntries
	})
	return fetched, unavailable
}

// Letters counts published entries per letter bucket.
func (service *Service) Letters() ([]search.LetterCount, []string) {
	snapshot := service.store.Current()
	return search.LetterCounts(snapshot.Entries), snapshot.Unavailable
}

// Suggest returns title completions for prefix.
func (service *Service) Suggest(prefix string, limit int) []string {
	return search.Suggest(service.store.Current().Entries, prefix, limit)
}

// # Detail

/*
Get resolves an entry by id or slug and builds its detail record.

An entry missing from the snapshot is fetched from the upstream source, so a
record published after the last refresh can still be opened. Drafts and
pending entries are reported as not found wherever they come from.
*/
func (service *Service) Get(ctx context.Context, idOrSlug string) (present.Detail, []string, error) {
	snapshot := service.store.Current()

	found, ok := snapshot.Entry(idOrSlug)
	if !ok {
		fetched, err := service.source.GetEntry(ctx, idOrSlug)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return present.Detail{}, nil, apperr.NotFound(resourceEntry)
		case err != nil:
			service.logger.WarnContext(ctx, "entry_upstream_lookup_failed",
				slog.String("entry", idOrSlug),
				slog.Any("error", err),
			)
			return present.Detail{}, nil, apperr.Upstream(err)
		}
		found = *fetched
	}

	if !found.IsPublished() {
		return present.Detail{}, nil, apperr.NotFound(resourceEntry)
	}

	detail, err := service.presenters.For(snapshot).Detail(found)
	if err != nil {
		return present.Detail{}, nil, apperr.Internal(err)
	}
	return detail, snapshot.Unavailable, nil
}

// # Engagement

// Record applies a view or like to a published entry and returns its counters.
func (service *Service) Record(idOrSlug, kind string) (catalog.Stats, error) {
	stats, ok := service.store.Record(idOrSlug, kind)
	if !ok {
		return catalog.Stats{}, apperr.NotFound(resourceEntry)
	}

	service.metrics.ObserveEngagement(kind)
	return stats, nil
}

// # Drafts

// Create validates input and submits the draft upstream. The accepted record
// enters listings on the next snapshot refresh, once it is published.
func (service *Service) Create(ctx context.Context, input catalog.DraftInput) (*catalog.Entry, error) {
	draft, err := catalog.NewDraft(input, service.now())
	if err != nil {
		return nil, err
	}

	created, err := service.source.CreateEntry(ctx, draft)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Upstream(err)
	}

	service.logger.InfoContext(ctx, "entry_draft_submitted",
		slog.String("entry_id", created.ID),
		slog.String("slug", created.Slug),
	)
	return created, nil
}
