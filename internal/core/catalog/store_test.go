// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/core/catalog/catalogtest"
)

func newLoadedStore(t *testing.T) (*catalog.Store, *catalogtest.Source) {
	t.Helper()
	source := catalogtest.Sample()
	store := catalog.NewStore(catalog.NewLoader(source, discardLogger(), nil))
	store.Refresh(context.Background())
	return store, source
}

/*
TestStore_Empty verifies that a store serves an empty snapshot before the first refresh.
*/
func TestStore_Empty(t *testing.T) {
	store := catalog.NewStore(catalog.NewLoader(catalogtest.Sample(), discardLogger(), nil))
	assert.Empty(t, store.Current().Entries)
	assert.False(t, store.Current().Degraded())
}

/*
TestStore_RecordEngagement checks view and like increments and their guards.
*/
func TestStore_RecordEngagement(t *testing.T) {
	store, _ := newLoadedStore(t)
	before := store.Current()

	stats, ok := store.RecordView("ent_001")
	require.True(t, ok)
	assert.Equal(t, int64(11), stats.ViewCount)

	stats, ok = store.RecordLike("sakarya-nehri")
	require.True(t, ok)
	assert.Equal(t, catalog.Stats{ViewCount: 11, LikeCount: 2}, stats)

	// Published snapshots are never modified in place.
	assert.Equal(t, int64(10), before.Entries[0].Stats.ViewCount)

	entry, _ := store.Current().Entry("ent_001")
	assert.Equal(t, int64(11), entry.Stats.ViewCount)

	_, ok = store.RecordView("ent_002")
	assert.False(t, ok, "drafts are not counted")
	_, ok = store.RecordView("missing")
	assert.False(t, ok)
	_, ok = store.Record("ent_001", "share")
	assert.False(t, ok)
}

/*
TestStore_ConcurrentViews verifies that concurrent increments are not lost.
*/
func TestStore_ConcurrentViews(t *testing.T) {
	store, _ := newLoadedStore(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.RecordView("ent_001")
			store.Read(func(snapshot *catalog.Snapshot) {
				_ = len(snapshot.Entries)
			})
		}()
	}
	wg.Wait()

	entry, _ := store.Current().Entry("ent_001")
	assert.Equal(t, int64(60), entry.Stats.ViewCount)
}

/*
TestStore_Refresh checks that a refresh publishes a new snapshot.
*/
func TestStore_Refresh(t *testing.T) {
	store, source := newLoadedStore(t)
	source.Entries = append(source.Entries, catalog.Entry{ID: "ent_003", Title: "Yeni", Status: catalog.StatusPublished})

	snapshot := store.Refresh(context.Background())
	assert.Len(t, snapshot.Entries, 3)
	assert.Same(t, snapshot, store.Current())
}

/*
TestStore_FailedRefreshKeepsCatalogue verifies that an upstream outage during
a refresh leaves the loaded collections in service.
*/
func TestStore_FailedRefreshKeepsCatalogue(t *testing.T) {
	store, source := newLoadedStore(t)
	for _, collection := range []string{
		catalog.CollectionEntries, catalog.CollectionAuthors,
		catalog.CollectionCategories, catalog.CollectionVolumes,
	} {
		source.Fail[collection] = true
	}

	snapshot := store.Refresh(context.Background())

	assert.Len(t, snapshot.Unavailable, 4)
	assert.Len(t, snapshot.Stale, 4)
	assert.Len(t, snapshot.Entries, 2)
	assert.Len(t, snapshot.Authors, 1)
	assert.Len(t, snapshot.Categories, 1)
	assert.Len(t, snapshot.Volumes, 1)
	assert.Same(t, snapshot, store.Current())

	// Recovery clears the stale marks.
	source.Fail = map[string]bool{}
	snapshot = store.Refresh(context.Background())
	assert.Empty(t, snapshot.Unavailable)
	assert.Empty(t, snapshot.Stale)
}

/*
TestStore_CancelledRefreshKeepsCatalogue checks that a refresh whose context
ends mid-load does not empty the catalogue.
*/
func TestStore_CancelledRefreshKeepsCatalogue(t *testing.T) {
	store, source := newLoadedStore(t)
	source.Gate = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	snapshot := store.Refresh(ctx)

	assert.Len(t, snapshot.Unavailable, 4)
	assert.Len(t, snapshot.Entries, 2)
	assert.Len(t, store.Current().Entries, 2)
}

/*
TestStore_ConcurrentRefreshShared verifies that refreshes arriving during a
load wait for it and publish the same snapshot instead of a second load.
*/
func TestStore_ConcurrentRefreshShared(t *testing.T) {
	store, source := newLoadedStore(t)
	loadsBefore := source.Count(catalog.CollectionEntries)
	source.Gate = make(chan struct{})

	results := make(chan *catalog.Snapshot, 2)
	go func() { results <- store.Refresh(context.Background()) }()
	require.Eventually(t, func() bool {
		return source.Count(catalog.CollectionEntries) == loadsBefore+1
	}, time.Second, time.Millisecond)

	go func() { results <- store.Refresh(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	close(source.Gate)

	first, second := <-results, <-results
	assert.Same(t, first, second)
	assert.Same(t, first, store.Current())
	assert.Equal(t, loadsBefore+1, source.Count(catalog.CollectionEntries))
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	store, _ := newLoadedStore(t)
	_, err := catalog.NewRefresher(store, "not a schedule", time.Second, discardLogger())
	assert.Error(t, err)
}

func TestRefresher_StartStop(t *testing.T) {
	store, _ := newLoadedStore(t)
	refresher, err := catalog.NewRefresher(store, "@every 1h", time.Second, discardLogger())
	require.NoError(t, err)

	refresher.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	refresher.Stop(ctx)
}
