// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/search"
)

/*
TestParseQuery covers parameter parsing and defaults.
*/
func TestParseQuery(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   search.Query
	}{
		{
			name:   "empty",
			values: url.Values{},
			want:   search.Query{Page: 1, PageSize: 24},
		},
		{
			name: "full",
			values: url.Values{
				"q": {" sakarya "}, "category": {"cat_geo"}, "author": {"auth_1"},
				"volume": {"vol_01"}, "letter": {"S"}, "sort": {"popular"},
				"page": {"3"}, "pageSize": {"6"},
			},
			want: search.Query{
				Term: " sakarya ", CategoryID: "cat_geo", AuthorID: "auth_1", VolumeID: "vol_01",
				Letter: "S", Sort: search.SortPopular, Page: 3, PageSize: 6,
			},
		},
		{
			name:   "limit_alias",
			values: url.Values{"limit": {"9"}},
			want:   search.Query{Page: 1, PageSize: 9},
		},
		{
			name:   "garbage_numbers",
			values: url.Values{"page": {"x"}, "pageSize": {"y"}},
			want:   search.Query{Page: 1, PageSize: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.ParseQuery(tt.values, 24))
		})
	}
}

/*
TestQuery_ValuesRoundTrip checks that a query survives a trip through its URL form.
*/
func TestQuery_ValuesRoundTrip(t *testing.T) {
	queries := []search.Query{
		{Term: "sakarya", Sort: search.SortTitleDesc, Page: 2, PageSize: 12},
		{CategoryID: "cat_geo", Letter: "Ç", Page: 1, PageSize: 24},
		{AuthorID: "auth_1", VolumeID: "vol_02", Sort: search.SortNewest, Page: 7, PageSize: 5},
	}

	for _, q := range queries {
		assert.Equal(t, q, search.ParseQuery(q.Values(), 24))
	}
}

func TestQuery_ValuesOmitsDefaults(t *testing.T) {
	values := search.Query{Page: 1}.Values()
	assert.Empty(t, values)
}

func TestSortKey_IsValid(t *testing.T) {
	for _, key := range search.SortKeys {
		assert.True(t, key.IsValid(), string(key))
	}
	assert.False(t, search.SortKey("random").IsValid())
	assert.False(t, search.SortKey("").IsValid())
}

func TestQuery_EntryParams(t *testing.T) {
	q := search.Query{Term: " sakarya ", CategoryID: "cat_geo", AuthorID: "auth_1", VolumeID: "vol_1", Letter: "S", Sort: search.SortNewest, Page: 3}
	assert.Equal(t, catalog.EntryParams{Query: "sakarya", CategoryID: "cat_geo", AuthorID: "auth_1", VolumeID: "vol_1"}, q.EntryParams())

	assert.Equal(t, catalog.EntryParams{}, search.Query{Term: "s"}.EntryParams(), "a term too short to filter is not forwarded")
}
