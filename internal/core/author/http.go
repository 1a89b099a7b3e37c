// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package author provides the HTTP interface for browsing encyclopedia authors.
package author

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

	router.Get("/", handler.listAuthors)
	router.Get("/{id}", handler.getAuthor)

	return router
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	query := search.ParseQuery(request.URL.Query(), handler.defaultPageSize)

	authors, meta, unavailable := handler.service.List(query)
	respond.Paginated(writer, authors, meta, unavailable)
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	query := search.ParseQuery(request.URL.Query(), handler.defaultPageSize)

	detail, unavailable, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Snapshot(writer, detail, unavailable)
}
