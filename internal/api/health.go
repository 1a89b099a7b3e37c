// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/constants"
	"github.com/taibuivan/ansiklopedi/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// Snapshot returns the snapshot being served.
	Snapshot func() *catalog.Snapshot

	// CheckDatabase pings the PostgreSQL pool. Nil when the REST driver is used.
	CheckDatabase func() error

	// CheckCache pings the Redis client. Nil when caching is disabled.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (liveness check).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

/*
readiness handles GET /ready (readiness check).

A snapshot with unavailable collections is still served, so it reports
"degraded" with 200; "stale" names those still serving an earlier load. A failed dependency, or no snapshot loaded yet, reports
"unavailable" with 503.
*/
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 3)
	isSystemReady := true
	isDegraded := false

	var loadedAt time.Time
	var unavailable, stale []string
	if handler.dependencies.Snapshot != nil {
		snapshot := handler.dependencies.Snapshot()
		loadedAt = snapshot.LoadedAt
		unavailable = snapshot.Unavailable
		stale = snapshot.Stale

		result := checkResult{Name: "snapshot", IsOK: !snapshot.LoadedAt.IsZero()}
		if !result.IsOK {
			result.Error = "not loaded"
			isSystemReady = false
		} else if snapshot.Degraded() {
			isDegraded = true
		}
		results = append(results, result)
	}

	results = handler.check(results, "postgres", handler.dependencies.CheckDatabase, &isSystemReady)
	results = handler.check(results, "redis", handler.dependencies.CheckCache, &isSystemReady)

	responseStatus := "ready"
	httpStatus := http.StatusOK
	switch {
	case !isSystemReady:
		responseStatus = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	case isDegraded:
		responseStatus = "degraded"
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{
		Data: map[string]any{
			constants.FieldStatus: responseStatus,
			constants.FieldChecks: results,
			"loadedAt":            loadedAt,
			"stale":               stale,
		},
		Unavailable: unavailable,
	})
}

func (handler *healthHandler) check(results []checkResult, name string, ping func() error, ready *bool) []checkResult {
	if ping == nil {
		return results
	}

	result := checkResult{Name: name, IsOK: true}
	if err := ping(); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		*ready = false
		handler.logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
	}
	return append(results, result)
}
