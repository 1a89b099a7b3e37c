// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package volume provides the HTTP interface for the printed volumes.
package volume

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ansiklopedi/internal/platform/request"
	"github.com/taibuivan/ansiklopedi/internal/platform/respond"
	"github.com/taibuivan/ansiklopedi/internal/search"
)

type Handler struct {
	service         *Service
	defaultPageSize int
}

func NewHandler(service *Service, defaultPageSize int) *Handler {
	return &Handler{service: service, defaultPageSize: defaultPageSize}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listVolumes)
	router.Get("/{id}/entries", handler.listEntries)

	return router
}

func (handler *Handler) listVolumes(writer http.ResponseWriter, request *http.Request) {
	volumes, unavailable := handler.service.List()
	respond.Snapshot(writer, volumes, unavailable)
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	query := search.ParseQuery(request.URL.Query(), handler.defaultPageSize)

	page, unavailable, err := handler.service.Entries(requestutil.ID(request, "id"), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Snapshot(writer, page, unavailable)
}
