// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume_test

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

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog/catalogtest"
	"github.com/taibuivan/ansiklopedi/internal/core/volume"
	"github.com/taibuivan/ansiklopedi/internal/present"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	source := catalogtest.NewSource()
	source.Volumes = []catalog.Volume{
		{ID: "vol_2", Title: "Cilt II", Number: 2},
		{ID: "vol_1", Title: "Cilt I", Number: 1},
	}
	source.Entries = []catalog.Entry{
		{ID: "ent_2", Title: "Akyazı", Status: catalog.StatusPublished, Volume: &catalog.VolumeRef{VolumeID: "vol_1", PageStart: 90, PageEnd: 94}},
		{ID: "ent_1", Title: "Sakarya Nehri", Status: catalog.StatusPublished, Volume: &catalog.VolumeRef{VolumeID: "vol_1", PageStart: 3, PageEnd: 4}},
		{ID: "ent_3", Title: "Taslak", Status: catalog.StatusDraft, Volume: &catalog.VolumeRef{VolumeID: "vol_2"}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := catalog.NewStore(catalog.NewLoader(source, logger, nil))
	store.Refresh(context.Background())

	router := chi.NewRouter()
	router.Mount("/volumes", volume.NewHandler(volume.NewService(store, &present.Cache{}), 12).Routes())
	return router
}

func get(t *testing.T, handler http.Handler, target string) (int, json.RawMessage) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body.Data
}

func TestListVolumes(t *testing.T) {
	status, data := get(t, newRouter(t), "/volumes")
	require.Equal(t, http.StatusOK, status)

	var volumes []present.VolumeSummary
	require.NoError(t, json.Unmarshal(data, &volumes))
	require.Len(t, volumes, 2)
	assert.Equal(t, "vol_1", volumes[0].ID)
	assert.Equal(t, 2, volumes[0].EntryCount)
	assert.Equal(t, 0, volumes[1].EntryCount)
}

/*
TestVolumeEntries covers the per-volume listing and unknown volumes.
*/
func TestVolumeEntries(t *testing.T) {
	router := newRouter(t)

	status, data := get(t, router, "/volumes/vol_1/entries?sort=title-asc")
	require.Equal(t, http.StatusOK, status)

	var page volume.Entries
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, "Cilt I", page.Volume.Title)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "ent_2", page.Entries[0].ID)
	assert.Equal(t, "Cilt I", page.Entries[0].Volume)

	status, _ = get(t, router, "/volumes/vol_2/entries")
	assert.Equal(t, http.StatusOK, status)

	status, _ = get(t, router, "/volumes/vol_9/entries")
	assert.Equal(t, http.StatusNotFound, status)
}

/*
TestVolumeEntries_PageOrder verifies that a volume lists its entries in
printed page order unless a sort is requested.
*/
func TestVolumeEntries_PageOrder(t *testing.T) {
	status, data := get(t, newRouter(t), "/volumes/vol_1/entries")
	require.Equal(t, http.StatusOK, status)

	var page volume.Entries
	require.NoError(t, json.Unmarshal(data, &page))
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "ent_1", page.Entries[0].ID)
	assert.Equal(t, "ent_2", page.Entries[1].ID)
}
