// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Ansiklopedi HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment (and .env when present).
//  3. Build the catalogue source: REST backend, or PostgreSQL with migrations.
//  4. Wrap the source with the Redis cache when REDIS_URL is set.
//  5. Load the first snapshot and start the refresh schedule.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/api"
	"github.com/taibuivan/ansiklopedi/internal/core/author"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/core/category"
	"github.com/taibuivan/ansiklopedi/internal/core/entry"
	"github.com/taibuivan/ansiklopedi/internal/core/stats"
	"github.com/taibuivan/ansiklopedi/internal/core/volume"
	"github.com/taibuivan/ansiklopedi/internal/platform/config"
	"github.com/taibuivan/ansiklopedi/internal/platform/constants"
	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
	"github.com/taibuivan/ansiklopedi/internal/platform/migration"
	pgstore "github.com/taibuivan/ansiklopedi/internal/platform/postgres"
	redisstore "github.com/taibuivan/ansiklopedi/internal/platform/redis"
	"github.com/taibuivan/ansiklopedi/internal/present"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("source_driver", cfg.SourceDriver),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
	)

	// Startup gets its own deadline so that misconfiguration is caught quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	registry := metrics.New()

	health := api.HealthDependencies{}

	// ── 3. Catalogue Source ───────────────────────────────────────────────
	var source catalog.Source
	switch cfg.SourceDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		source = catalog.NewPostgresSource(pool)
		health.CheckDatabase = func() error { return pgstore.Ping(context.Background(), pool) }

	default:
		restSource, err := catalog.NewRESTSource(cfg.UpstreamURL, cfg.UpstreamTimeout, nil)
		must(log, err, "configure upstream")
		source = restSource
	}

	// ── 4. Redis Cache ────────────────────────────────────────────────────
	if cfg.CacheEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		source = catalog.NewCachedSource(source, rdb, cfg.CacheTTL, log, registry)
		health.CheckCache = func() error { return redisstore.Ping(context.Background(), rdb) }
	}

	// ── 5. Snapshot ───────────────────────────────────────────────────────
	store := catalog.NewStore(catalog.NewLoader(source, log, registry))
	health.Snapshot = store.Current

	loadCtx, loadCancel := context.WithTimeout(context.Background(), constants.SnapshotLoadTimeout)
	snapshot := store.Refresh(loadCtx)
	loadCancel()
	if snapshot.Degraded() {
		log.Warn("snapshot_degraded_at_startup", slog.Any("unavailable", snapshot.Unavailable))
	}

	if cfg.RefreshSchedule != "" {
		refresher, err := catalog.NewRefresher(store, cfg.RefreshSchedule, constants.SnapshotLoadTimeout, log)
		must(log, err, "schedule refresh")
		refresher.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			refresher.Stop(stopCtx)
		}()
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	presenters := &present.Cache{}
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   registry.Handler(),
		Entry:     entry.NewHandler(entry.NewService(store, source, presenters, registry, log), cfg.DefaultPageSize),
		Author:    author.NewHandler(author.NewService(store, source, presenters, registry, log), cfg.DefaultPageSize),
		Category:  category.NewHandler(category.NewService(store, source, presenters, log), cfg.DefaultPageSize),
		Volume:    volume.NewHandler(volume.NewService(store, presenters), cfg.DefaultPageSize),
		Stats:     stats.NewHandler(stats.NewService(store, presenters, constants.SnapshotLoadTimeout, log)),
	}

	// Cancelled on shutdown; stops the rate limiter's cleanup loop.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger carrying the app attribute.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.String("error", fmt.Sprint(err)),
		)
		os.Exit(1)
	}
}
