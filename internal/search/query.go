// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search is the single query engine behind every listing of the catalogue.

Each view supplies only a [Query]; filtering, ordering and paging are done here
the same way for entries and authors.

Pipeline:

  - Gate: only published entries are visible.
  - Term: normalized substring match over the collection's text fields.
  - Relations: category, author and volume filters.
  - Letter: the A–Z bucket of the title.
  - Sort: stable, so ties keep their original relative order.
  - Page: the requested window, clamped to the last page.

The engine is pure. Input lists are never modified and invalid query values
are clamped or ignored rather than reported.
*/
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/ansiklopedi/pkg/pagination"
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortTitleAsc   SortKey = "title-asc"
	SortTitleDesc  SortKey = "title-desc"
	SortNewest     SortKey = "newest"
	SortMostViewed SortKey = "most-viewed"
	SortPopular    SortKey = "popular"
	SortMostLiked  SortKey = "most-liked"

	// SortPage orders entries by their first page in the printed volume.
	// Entries without a volume come last.
	SortPage SortKey = "page"
)

// SortKeys lists the recognised keys in display order.
var SortKeys = []SortKey{SortTitleAsc, SortTitleDesc, SortNewest, SortMostViewed, SortPopular, SortMostLiked, SortPage}

// IsValid reports whether k is a recognised sort key.
func (k SortKey) IsValid() bool {
	for _, key := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

const (
	// MinTermLength is the shortest trimmed term that filters anything.
	MinTermLength = 2

	// PopularityWeight is how many views one like is worth in [SortPopular].
	PopularityWeight = 10
)

// URL parameter names of a [Query].
const (
	ParamTerm     = "q"
	ParamCategory = "category"
	ParamAuthor   = "author"
	ParamVolume   = "volume"
	ParamLetter   = "letter"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)

// Query is the serializable state of one listing. The zero value lists the
// first page of everything in original order.
type Query struct {
	Term       string
	CategoryID string
	AuthorID   string
	VolumeID   string
	Letter     string
	Sort       SortKey
	Page       int
	PageSize   int
}

// ParseQuery rebuilds a query from URL parameters. defaultPageSize applies
// when neither "pageSize" nor "limit" is given.
func ParseQuery(values url.Values, defaultPageSize int) Query {
	params := pagination.FromValues(values)
	if values.Get(ParamPageSize) == "" && values.Get("limit") == "" {
		params.Limit = defaultPageSize
	}

	return Query{
		Term:       values.Get(ParamTerm),
		CategoryID: strings.TrimSpace(values.Get(ParamCategory)),
		AuthorID:   strings.TrimSpace(values.Get(ParamAuthor)),
		VolumeID:   strings.TrimSpace(values.Get(ParamVolume)),
		Letter:     strings.TrimSpace(values.Get(ParamLetter)),
		Sort:       SortKey(strings.TrimSpace(values.Get(ParamSort))),
		Page:       params.Page,
		PageSize:   params.Limit,
	}
}

// Values turns q back into URL parameters. Empty fields and the first page
// are omitted; ParseQuery(q.Values(), n) selects the same results as q.
func (q Query) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set(ParamTerm, q.Term)
	set(ParamCategory, q.CategoryID)
	set(ParamAuthor, q.AuthorID)
	set(ParamVolume, q.VolumeID)
	set(ParamLetter, q.Letter)
	set(ParamSort, string(q.Sort))
	if q.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	}
	return values
}

// effectiveTerm returns the trimmed term, or "" when it is too short to filter.
func (q Query) effectiveTerm() string {
	term := strings.TrimSpace(q.Term)
	if len([]rune(term)) < MinTermLength {
		return ""
	}
	return term
}
