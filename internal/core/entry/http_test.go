// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog/catalogtest"
	"github.com/taibuivan/ansiklopedi/internal/core/entry"
	"github.com/taibuivan/ansiklopedi/internal/platform/metrics"
	"github.com/taibuivan/ansiklopedi/internal/present"
)

type envelope struct {
	Data        json.RawMessage `json:"data"`
	Meta        map[string]int  `json:"meta"`
	Unavailable []string        `json:"unavailable"`
	Code        string          `json:"code"`
}

func fixtureSource() *catalogtest.Source {
	source := catalogtest.NewSource()
	source.Entries = []catalog.Entry{
		{ID: "ent_1", Slug: "sakarya-nehri", Title: "Sakarya Nehri", Status: catalog.StatusPublished,
			CategoryIDs: []string{"cat_geo"}, Body: "Nehir **uzundur**.",
			Authorships: []catalog.Authorship{{AuthorID: "auth_1", Order: 1}},
			Stats:       catalog.Stats{ViewCount: 3}},
		{ID: "ent_2", Slug: "sapanca-golu", Title: "Sapanca Gölü", Status: catalog.StatusPublished,
			CategoryIDs: []string{"cat_geo"}, Stats: catalog.Stats{ViewCount: 50}},
		{ID: "ent_3", Slug: "adapazari", Title: "Adapazarı", Status: catalog.StatusPublished,
			CategoryIDs: []string{"cat_hist"}, Stats: catalog.Stats{ViewCount: 7}},
		{ID: "ent_4", Slug: "taslak", Title: "Sakarya Taslak", Status: catalog.StatusDraft},
	}
	source.Authors = []catalog.Author{{ID: "auth_1", FullName: "Ayşe Yılmaz"}}
	source.Categories = []catalog.Category{{ID: "cat_geo", Name: "Coğrafya"}, {ID: "cat_hist", Name: "Tarih"}}
	return source
}

func newRouter(t *testing.T, source *catalogtest.Source) (http.Handler, *catalog.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.New()
	store := catalog.NewStore(catalog.NewLoader(source, logger, registry))
	store.Refresh(context.Background())

	service := entry.NewService(store, source, &present.Cache{}, registry, logger)
	router := chi.NewRouter()
	router.Mount("/entries", entry.NewHandler(service, 12).Routes())
	return router, store
}

func do(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, reader))

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	return recorder, decoded
}

/*
TestListEntries covers filtering, sorting and the pagination block.
*/
func TestListEntries(t *testing.T) {
	router, _ := newRouter(t, fixtureSource())

	t.Run("term_excludes_drafts", func(t *testing.T) {
		recorder, body := do(t, router, http.MethodGet, "/entries?q=SAKARYA", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var cards []present.Card
		require.NoError(t, json.Unmarshal(body.Data, &cards))
		require.Len(t, cards, 1)
		assert.Equal(t, "ent_1", cards[0].ID)
		assert.Equal(t, "Ayşe Yılmaz", cards[0].Authors)
		assert.Equal(t, 1, body.Meta["total"])
	})

	t.Run("category_sorted_paged", func(t *testing.T) {
		_, body := do(t, router, http.MethodGet, "/entries?category=cat_geo&sort=most-viewed&pageSize=1&page=9", "")

		var cards []present.Card
		require.NoError(t, json.Unmarshal(body.Data, &cards))
		require.Len(t, cards, 1)
		assert.Equal(t, "ent_1", cards[0].ID)
		assert.Equal(t, map[string]int{"page": 2, "limit": 1, "total": 2, "total_pages": 2}, body.Meta)
	})

	t.Run("empty_result", func(t *testing.T) {
		recorder, body := do(t, router, http.MethodGet, "/entries?q=ankara", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", string(body.Data))
		assert.Equal(t, 0, body.Meta["total"])
	})
}

func TestListEntries_Degraded(t *testing.T) {
	source := fixtureSource()
	source.Fail[catalog.CollectionAuthors] = true
	router, _ := newRouter(t, source)

	_, body := do(t, router, http.MethodGet, "/entries", "")
	assert.Equal(t, []string{catalog.CollectionAuthors}, body.Unavailable)

	var cards []present.Card
	require.NoError(t, json.Unmarshal(body.Data, &cards))
	require.Len(t, cards, 3)
	assert.Equal(t, present.UnknownAuthor, cards[0].Authors)
}

/*
TestListEntries_UpstreamFallback verifies that listings are answered from the
upstream source while no entry load has succeeded, with the filters forwarded
and the engine still gating drafts.
*/
func TestListEntries_UpstreamFallback(t *testing.T) {
	source := fixtureSource()
	source.Fail[catalog.CollectionEntries] = true
	router, _ := newRouter(t, source)

	source.Fail[catalog.CollectionEntries] = false
	_, body := do(t, router, http.MethodGet, "/entries?q=sakarya&category=cat_geo", "")
	assert.Empty(t, body.Unavailable)

	var cards []present.Card
	require.NoError(t, json.Unmarshal(body.Data, &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "ent_1", cards[0].ID)

	params := source.EntryParams()
	assert.Equal(t, catalog.EntryParams{Query: "sakarya", CategoryID: "cat_geo"}, params[len(params)-1])

	source.Fail[catalog.CollectionEntries] = true
	_, body = do(t, router, http.MethodGet, "/entries", "")
	assert.Equal(t, []string{catalog.CollectionEntries}, body.Unavailable)
	assert.JSONEq(t, "[]", string(body.Data))
}

func TestLettersAndSuggest(t *testing.T) {
	router, _ := newRouter(t, fixtureSource())

	_, body := do(t, router, http.MethodGet, "/entries/letters", "")
	var counts []struct {
		Letter string `json:"letter"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &counts))
	byLetter := map[string]int{}
	for _, count := range counts {
		byLetter[count.Letter] = count.Count
	}
	assert.Equal(t, 2, byLetter["S"])
	assert.Equal(t, 1, byLetter["A"])

	_, body = do(t, router, http.MethodGet, "/entries/suggest?q=sa", "")
	assert.JSONEq(t, `["Sakarya Nehri","Sapanca Gölü"]`, string(body.Data))
}

/*
TestGetEntry covers snapshot hits, slugs, upstream fallback and visibility.
*/
func TestGetEntry(t *testing.T) {
	source := fixtureSource()
	router, _ := newRouter(t, source)

	t.Run("by_slug", func(t *testing.T) {
		recorder, body := do(t, router, http.MethodGet, "/entries/sakarya-nehri", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var detail present.Detail
		require.NoError(t, json.Unmarshal(body.Data, &detail))
		assert.Equal(t, "ent_1", detail.ID)
		assert.Contains(t, detail.BodyHTML, "<strong>uzundur</strong>")
		require.Len(t, detail.Related, 1)
		assert.Equal(t, "ent_2", detail.Related[0].ID)
	})

	t.Run("draft_is_not_found", func(t *testing.T) {
		recorder, body := do(t, router, http.MethodGet, "/entries/ent_4", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("upstream_fallback", func(t *testing.T) {
		source.Entries = append(source.Entries, catalog.Entry{ID: "ent_9", Slug: "yeni", Title: "Yeni Madde", Status: catalog.StatusPublished})

		recorder, _ := do(t, router, http.MethodGet, "/entries/ent_9", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 1, source.Count(catalogtest.OpGetEntry))
	})

	t.Run("unknown", func(t *testing.T) {
		recorder, _ := do(t, router, http.MethodGet, "/entries/nothing", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("upstream_failure", func(t *testing.T) {
		source.Fail[catalogtest.OpGetEntry] = true
		defer delete(source.Fail, catalogtest.OpGetEntry)

		recorder, body := do(t, router, http.MethodGet, "/entries/nothing", "")
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Equal(t, "UPSTREAM_ERROR", body.Code)
	})
}

/*
TestEngagement verifies that counters only grow and drafts cannot be counted.
*/
func TestEngagement(t *testing.T) {
	router, store := newRouter(t, fixtureSource())

	recorder, body := do(t, router, http.MethodPost, "/entries/ent_1/view", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"viewCount":4,"likeCount":0}`, string(body.Data))

	_, body = do(t, router, http.MethodPost, "/entries/sakarya-nehri/like", "")
	assert.JSONEq(t, `{"viewCount":4,"likeCount":1}`, string(body.Data))

	current, _ := store.Current().Entry("ent_1")
	assert.Equal(t, catalog.Stats{ViewCount: 4, LikeCount: 1}, current.Stats)

	recorder, _ = do(t, router, http.MethodPost, "/entries/ent_4/like", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestCreateEntry covers validation and draft submission.
*/
func TestCreateEntry(t *testing.T) {
	source := fixtureSource()
	router, _ := newRouter(t, source)

	t.Run("valid", func(t *testing.T) {
		payload := `{
			"title": "Karasu Plajı",
			"summary": "Karadeniz kıyısında uzun bir kumsal.",
			"body": "Karasu plajı ilçenin kuzeyinde uzanan ve yaz aylarında kalabalıklaşan bir kumsaldır.",
			"categoryIds": ["cat_geo"],
			"tags": "deniz, plaj"
		}`
		recorder, body := do(t, router, http.MethodPost, "/entries", payload)
		require.Equal(t, http.StatusCreated, recorder.Code, string(body.Data))

		var created catalog.Entry
		require.NoError(t, json.Unmarshal(body.Data, &created))
		assert.Equal(t, "karasu-plaji", created.Slug)
		assert.Equal(t, catalog.StatusPending, created.Status)
		assert.True(t, strings.HasPrefix(created.ID, "ent_"))
		assert.Equal(t, []string{"tag_deniz", "tag_plaj"}, created.TagIDs)
		assert.WithinDuration(t, time.Now(), created.CreatedAt.Time, time.Minute)
		assert.Len(t, source.Created(), 1)
	})

	t.Run("invalid", func(t *testing.T) {
		recorder, body := do(t, router, http.MethodPost, "/entries", `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		recorder, _ := do(t, router, http.MethodPost, "/entries", `{`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("upstream_failure", func(t *testing.T) {
		source.Fail[catalogtest.OpCreateEntry] = true
		payload := `{"title":"Geyve Boğazı","summary":"Sakarya nehrinin geçtiği boğaz.","body":"Geyve boğazı Sakarya nehrinin dağlar arasından geçtiği dar ve derin vadidir.","categoryIds":["cat_geo"]}`

		recorder, body := do(t, router, http.MethodPost, "/entries", payload)
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Equal(t, "UPSTREAM_ERROR", body.Code)
	})
}
