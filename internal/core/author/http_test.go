// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/core/author"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog/catalogtest"
	"github.com/taibuivan/ansiklopedi/internal/present"
)

func newRouter(t *testing.T) (http.Handler, *catalogtest.Source) {
	t.Helper()

	source := catalogtest.NewSource()
	source.Authors = []catalog.Author{
		{ID: "auth_1", FullName: "Zeynep Kaya", Affiliation: "Sakarya Üniversitesi"},
		{ID: "auth_2", FullName: "Ahmet Çelik"},
		{ID: "auth_3", FullName: "Şule Demir"},
	}
	source.Categories = []catalog.Category{{ID: "cat_geo", Name: "Coğrafya"}}
	source.Entries = []catalog.Entry{
		{ID: "ent_1", Title: "Sakarya Nehri", Status: catalog.StatusPublished, CategoryIDs: []string{"cat_geo"},
			Authorships: []catalog.Authorship{{AuthorID: "auth_1"}}, Stats: catalog.Stats{ViewCount: 5, LikeCount: 2}},
		{ID: "ent_2", Title: "Sapanca Gölü", Status: catalog.StatusPublished,
			Authorships: []catalog.Authorship{{AuthorID: "auth_1"}}, Stats: catalog.Stats{ViewCount: 1}},
		{ID: "ent_3", Title: "Taslak", Status: catalog.StatusDraft,
			Authorships: []catalog.Authorship{{AuthorID: "auth_1"}}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := catalog.NewStore(catalog.NewLoader(source, logger, nil))
	store.Refresh(context.Background())

	service := author.NewService(store, source, &present.Cache{}, nil, logger)
	router := chi.NewRouter()
	router.Mount("/authors", author.NewHandler(service, 12).Routes())
	return router, source
}

func get(t *testing.T, handler http.Handler, target string) (int, map[string]json.RawMessage) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

/*
TestListAuthors covers sorting by name and the published entry count.
*/
func TestListAuthors(t *testing.T) {
	router, _ := newRouter(t)

	status, body := get(t, router, "/authors?sort=title-asc")
	require.Equal(t, http.StatusOK, status)

	var authors []author.Summary
	require.NoError(t, json.Unmarshal(body["data"], &authors))
	require.Len(t, authors, 3)
	assert.Equal(t, "auth_2", authors[0].ID)
	assert.Equal(t, "auth_3", authors[1].ID)
	assert.Equal(t, "auth_1", authors[2].ID)
	assert.Equal(t, 2, authors[2].EntryCount)

	_, body = get(t, router, "/authors?q=universitesi")
	require.NoError(t, json.Unmarshal(body["data"], &authors))
	require.Len(t, authors, 1)
	assert.Equal(t, "auth_1", authors[0].ID)
}

func TestGetAuthor(t *testing.T) {
	router, source := newRouter(t)

	status, body := get(t, router, "/authors/auth_1?pageSize=1")
	require.Equal(t, http.StatusOK, status)

	var detail author.Detail
	require.NoError(t, json.Unmarshal(body["data"], &detail))
	assert.Equal(t, "Zeynep Kaya", detail.Author.FullName)
	assert.Equal(t, present.AuthorStats{EntryCount: 2, TotalViews: 6, TotalLikes: 2, CategoriesUsed: []string{"Coğrafya"}}, detail.Stats)
	assert.Len(t, detail.Entries, 1)
	assert.Equal(t, 2, detail.Meta.Total)

	status, _ = get(t, router, "/authors/auth_404")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 1, source.Count(catalogtest.OpGetAuthor))
}
