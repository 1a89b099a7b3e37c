// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/present"
)

// SnapshotInfo describes the snapshot currently served.
type SnapshotInfo struct {
	LoadedAt    time.Time `json:"loadedAt"`
	Entries     int       `json:"entries"`
	Authors     int       `json:"authors"`
	Categories  int       `json:"categories"`
	Volumes     int       `json:"volumes"`
	Unavailable []string  `json:"unavailable"`
	Stale       []string  `json:"stale"`
}

func describe(snapshot *catalog.Snapshot) SnapshotInfo {
	unavailable, stale := snapshot.Unavailable, snapshot.Stale
	if unavailable == nil {
		unavailable = []string{}
	}
	if stale == nil {
		stale = []string{}
	}
	return SnapshotInfo{
		LoadedAt:    snapshot.LoadedAt,
		Entries:     len(snapshot.Entries),
		Authors:     len(snapshot.Authors),
		Categories:  len(snapshot.Categories),
		Volumes:     len(snapshot.Volumes),
		Unavailable: unavailable,
		Stale:       stale,
	}
}

// Service serves catalogue-wide statistics and snapshot maintenance.
type Service struct {
	store      *catalog.Store
	presenters *present.Cache
	logger     *slog.Logger
	timeout    time.Duration
	now        func() time.Time
}

// NewService constructs the stats [Service]. timeout bounds a manual refresh.
func NewService(store *catalog.Store, presenters *present.Cache, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		presenters: presenters,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Statistics computes the home page totals.
func (service *Service) Statistics() (present.Statistics, []string) {
	snapshot := service.store.Current()
	return service.presenters.For(snapshot).Statistics(service.now()), snapshot.Unavailable
}

// Snapshot describes the snapshot currently served.
func (service *Service) Snapshot() SnapshotInfo {
	return describe(service.store.Current())
}

// Refresh reloads every collection and reports the new snapshot. Local
// view and like increments are replaced by the upstream counters.
//
// The load outlives ctx's cancellation, so a caller hanging up does not
// abort it; only the service timeout bounds it.
func (service *Service) Refresh(ctx context.Context) SnapshotInfo {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), service.timeout)
	defer cancel()

	snapshot := service.store.Refresh(ctx)
	service.logger.InfoContext(ctx, "manual_refresh_finished",
		slog.Bool("degraded", snapshot.Degraded()),
		slog.Int("entries", len(snapshot.Entries)),
	)
	return describe(snapshot)
}
