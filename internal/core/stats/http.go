// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats provides the catalogue-wide statistics endpoint and the snapshot
maintenance endpoints.

# Routing Strategy

  - Public: GET /stats for the home page totals.
  - Maintenance: GET /admin/snapshot and POST /admin/refresh.
*/
package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ansiklopedi/internal/platform/respond"
)

// Handler implements the HTTP layer for statistics and snapshot maintenance.
type Handler struct {
	service *Service
}

// NewHandler constructs a stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public statistics router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getStatistics)
	return router
}

// AdminRoutes returns the snapshot maintenance router.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/snapshot", handler.getSnapshot)
	router.Post("/refresh", handler.refresh)
	return router
}

func (handler *Handler) getStatistics(writer http.ResponseWriter, request *http.Request) {
	statistics, unavailable := handler.service.Statistics()
	respond.Snapshot(writer, statistics, unavailable)
}

func (handler *Handler) getSnapshot(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Snapshot())
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Refresh(request.Context()))
}
