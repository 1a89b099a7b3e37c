// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus instruments for the catalogue service.
//
// A [Registry] owns its own prometheus.Registry so tests can create as many as
// they need without colliding on the global default registerer. All recording
// methods are nil-safe; a nil *Registry records nothing.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ansiklopedi"

// Fetch outcomes used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

// Registry holds every instrument exported on /metrics.
type Registry struct {
	registry *prometheus.Registry

	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	collectionSize *prometheus.GaugeVec
	refreshes      *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	engagements    *prometheus.CounterVec
}

// New creates a registry with the Go runtime and process collectors attached.
func New() *Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: registry,
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Collection fetches from the catalogue source, by collection and result.",
		}, []string{"collection", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of collection fetches from the catalogue source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Redis cache lookups for source reads, by collection and result.",
		}, []string{"collection", "result"}),
		collectionSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "records",
			Help:      "Number of records held in the current snapshot, by collection.",
		}, []string{"collection"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "refreshes_total",
			Help:      "Snapshot reloads, by outcome (complete or degraded).",
		}, []string{"outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "query_duration_seconds",
			Help:      "Time spent filtering, sorting and paginating a collection.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"collection"}),
		engagements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entry",
			Name:      "engagements_total",
			Help:      "Local view and like increments on entries.",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		r.fetches, r.fetchDuration, r.cacheLookups, r.collectionSize,
		r.refreshes, r.queryDuration, r.engagements,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveFetch records one collection fetch from the source.
func (r *Registry) ObserveFetch(collection string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	collection = normalizeLabel(collection, "unknown")
	r.fetches.WithLabelValues(collection, result).Inc()
	r.fetchDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

// ObserveCache records a cache hit or miss.
func (r *Registry) ObserveCache(collection string, hit bool) {
	if r == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	r.cacheLookups.WithLabelValues(normalizeLabel(collection, "unknown"), result).Inc()
}

// SetCollectionSize records the size of a loaded collection.
func (r *Registry) SetCollectionSize(collection string, size int) {
	if r == nil {
		return
	}
	r.collectionSize.WithLabelValues(normalizeLabel(collection, "unknown")).Set(float64(size))
}

// ObserveRefresh records a snapshot reload. degraded is true when any
// collection failed to load.
func (r *Registry) ObserveRefresh(degraded bool) {
	if r == nil {
		return
	}
	outcome := "complete"
	if degraded {
		outcome = "degraded"
	}
	r.refreshes.WithLabelValues(outcome).Inc()
}

// ObserveQuery records the time spent running one engine query.
func (r *Registry) ObserveQuery(collection string, duration time.Duration) {
	if r == nil {
		return
	}
	r.queryDuration.WithLabelValues(normalizeLabel(collection, "unknown")).Observe(duration.Seconds())
}

// ObserveEngagement records a local view or like increment.
func (r *Registry) ObserveEngagement(kind string) {
	if r == nil {
		return
	}
	r.engagements.WithLabelValues(normalizeLabel(kind, "unknown")).Inc()
}

func normalizeLabel(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
