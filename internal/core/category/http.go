// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category provides the HTTP interface for browsing categories.
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ansiklopedi/internal/platform/request"
	"github.com/taibuivan/ansiklopedi/internal/platform/respond"
	"github.com/taibuivan/ansiklopedi/internal/search"
)

// Handler implements the HTTP layer for categories.
type Handler struct {
	service         *Service
	defaultPageSize int
}

// NewHandler constructs a category [Handler].
func NewHandler(service *Service, defaultPageSize int) *Handler {
	return &Handler{service: service, defaultPageSize: defaultPageSize}
}

// Routes returns a [chi.Router] configured with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, unavailable := handler.service.List()
	respond.Snapshot(writer, categories, unavailable)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	query := search.ParseQuery(request.URL.Query(), handler.defaultPageSize)

	detail, unavailable, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Snapshot(writer, detail, unavailable)
}
