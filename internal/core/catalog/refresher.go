// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the [Store] on a cron schedule.
type Refresher struct {
	scheduler *cron.Cron
	logger    *slog.Logger
}

// NewRefresher schedules store refreshes according to a standard five-field
// cron spec (or a descriptor such as "@every 10m"). Each run is bounded by
// timeout.
func NewRefresher(store *Store, schedule string, timeout time.Duration, logger *slog.Logger) (*Refresher, error) {
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		logger.Info("scheduled_refresh_started")
		snapshot := store.Refresh(ctx)
		logger.Info("scheduled_refresh_finished",
			slog.Bool("degraded", snapshot.Degraded()),
			slog.Int("entries", len(snapshot.Entries)),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid refresh schedule %q: %w", schedule, err)
	}

	return &Refresher{scheduler: scheduler, logger: logger}, nil
}

// Start runs the scheduler in its own goroutine.
func (r *Refresher) Start() {
	r.scheduler.Start()
	r.logger.Info("refresher_started", slog.Int("jobs", len(r.scheduler.Entries())))
}

// Stop prevents new runs and waits for a running refresh or ctx, whichever
// comes first.
func (r *Refresher) Stop(ctx context.Context) {
	select {
	case <-r.scheduler.Stop().Done():
	case <-ctx.Done():
	}
}
