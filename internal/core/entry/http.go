// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entry provides the HTTP interface for browsing and submitting encyclopedia entries.

# Routing Strategy

  - Discovery: listing, letter counts, suggestions and detail pages, served
    from the in-memory snapshot.
  - Engagement: view and like counters, applied locally.
  - Submission: creation drafts, forwarded to the upstream source.

Listing parameters follow [search.ParseQuery], so any list URL can be
bookmarked and replayed.
*/
package entry

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	requestutil "github.com/taibuivan/ansiklopedi/internal/platform/request"
	"github.com/taibuivan/ansiklopedi/internal/platform/respond"
	"github.com/taibuivan/ansiklopedi/internal/search"
)

// # Handler Implementation

// Handler implements the HTTP layer for entries.
type Handler struct {
	service         *Service
	defaultPageSize int
}

// NewHandler constructs an entry [Handler]. defaultPageSize applies when a
// list request omits pageSize.
func NewHandler(service *Service, defaultPageSize int) *Handler {
	return &Handler{service: service, defaultPageSize: defaultPageSize}
}

// Routes returns a [chi.Router] configured with the entry endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/", handler.listEntries)
	router.Get("/letters", handler.listLetters)
	router.Get("/suggest", handler.suggest)
	router.Get("/{id}", handler.getEntry)

	// ## Engagement
	router.Post("/{id}/view", handler.recordView)
	router.Post("/{id}/like", handler.recordLike)

	// ## Submission
	router.Post("/", handler.createEntry)

	return router
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	query := search.ParseQuery(request.URL.Query(), handler.defaultPageSize)

	page := handler.service.List(request.Context(), query)
	respond.Paginated(writer, page.Cards, page.Meta, page.Unavailable)
}

func (handler *Handler) listLetters(writer http.ResponseWriter, request *http.Request) {
	counts, unavailable := handler.service.Letters()
	respond.Snapshot(writer, counts, unavailable)
}

func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	limit, _ := strconv.Atoi(values.Get("limit"))

	respond.OK(writer, handler.service.Suggest(values.Get(search.ParamTerm), limit))
}

func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	detail, unavailable, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Snapshot(writer, detail, unavailable)
}

func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	handler.record(writer, request, catalog.EngagementView)
}

func (handler *Handler) recordLike(writer http.ResponseWriter, request *http.Request) {
	handler.record(writer, request, catalog.EngagementLike)
}

func (handler *Handler) record(writer http.ResponseWriter, request *http.Request, kind string) {
	stats, err := handler.service.Record(requestutil.ID(request, "id"), kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) createEntry(writer http.ResponseWriter, request *http.Request) {
	var input catalog.DraftInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
