// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"cmp"
	"slices"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/pkg/pagination"
	"github.com/taibuivan/ansiklopedi/pkg/slice"
	"github.com/taibuivan/ansiklopedi/pkg/textnorm"
)

// Result is one page of a filtered, sorted collection.
//
// Total counts every item that passed the filters; Page is the page actually
// served after clamping.
type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Meta returns the pagination block for the response envelope.
func (r Result[T]) Meta() pagination.Meta {
	return pagination.Meta{
		Page:       r.Page,
		Limit:      r.PageSize,
		Total:      r.Total,
		TotalPages: r.TotalPages,
	}
}

// collection describes how the engine reads one record type.
type collection[T any] struct {
	visible   func(T) bool
	texts     func(T) []string
	relations func(T, Query) bool
	title     func(T) string
	compare   func(SortKey) func(a, b T) int
}

// # Entries

var entryCollection = collection[catalog.Entry]{
	visible: catalog.Entry.IsPublished,
	texts: func(entry catalog.Entry) []string {
		texts := make([]string, 0, 3+len(entry.Places)*3)
		texts = append(texts, entry.Title, entry.Summary, entry.Body)
		for _, place := range entry.Places {
			texts = append(texts, place.Name)
			if place.Admin != nil {
				texts = append(texts, place.Admin.Il, place.Admin.Ilce)
			}
		}
		return texts
	},
	relations: func(entry catalog.Entry, q Query) bool {
		if q.CategoryID != "" && !entry.HasCategory(q.CategoryID) {
			return false
		}
		if q.AuthorID != "" && !entry.HasAuthor(q.AuthorID) {
			return false
		}
		if q.VolumeID != "" && entry.VolumeID() != q.VolumeID {
			return false
		}
		return true
	},
	title:   func(entry catalog.Entry) string { return entry.Title },
	compare: entryComparator,
}

// EntryParams returns the filters of q that an upstream source can apply.
// The letter, the sort and the page window are always applied by [Entries].
func (q Query) EntryParams() catalog.EntryParams {
	return catalog.EntryParams{
		Query:      q.effectiveTerm(),
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		VolumeID:   q.VolumeID,
	}
}

// Entries runs q over a list of entries. Unpublished entries never appear.
func Entries(list []catalog.Entry, q Query) Result[catalog.Entry] {
	return run(list, q, entryCollection)
}

// # Authors

var authorCollection = collection[catalog.Author]{
	visible: func(catalog.Author) bool { return true },
	texts: func(author catalog.Author) []string {
		return []string{author.FullName, author.Bio, author.Affiliation}
	},
	relations: func(catalog.Author, Query) bool { return true },
	title:     func(author catalog.Author) string { return author.FullName },
	compare:   authorComparator,
}

// Authors runs q over a list of authors.
//
// Only the title sorts apply (by full name); relational filters are ignored.
func Authors(list []catalog.Author, q Query) Result[catalog.Author] {
	return run(list, q, authorCollection)
}

// # Pipeline

func run[T any](list []T, q Query, c collection[T]) Result[T] {
	term := textnorm.Normalize(q.effectiveTerm())

	var bucket string
	if q.Letter != "" {
		bucket = textnorm.BucketOf(q.Letter)
	}

	filtered := slice.Filter(list, func(item T) bool {
		if !c.visible(item) {
			return false
		}
		if term != "" && !matchesTerm(c.texts(item), term) {
			return false
		}
		if !c.relations(item, q) {
			return false
		}
		if bucket != "" && textnorm.Letter(c.title(item)) != bucket {
			return false
		}
		return true
	})

	if compare := c.compare(q.Sort); compare != nil {
		slices.SortStableFunc(filtered, compare)
	}

	window := pagination.Params{Page: q.Page, Limit: q.PageSize}.Clamp(len(filtered))
	return Result[T]{
		Items:      filtered[window.Start:window.End:window.End],
		Total:      window.Total,
		Page:       window.Page,
		PageSize:   window.Limit,
		TotalPages: window.TotalPages,
	}
}

func matchesTerm(texts []string, normalizedTerm string) bool {
	for _, text := range texts {
		if text != "" && textnorm.Contains(text, normalizedTerm) {
			return true
		}
	}
	return false
}

// # Comparators

// entryComparator returns nil for an empty or unknown key, keeping original order.
func entryComparator(key SortKey) func(a, b catalog.Entry) int {
	switch key {
	case SortTitleAsc:
		compareTitles := textnorm.Comparer()
		return func(a, b catalog.Entry) int { return compareTitles(a.Title, b.Title) }
	case SortTitleDesc:
		compareTitles := textnorm.Comparer()
		return func(a, b catalog.Entry) int { return compareTitles(b.Title, a.Title) }
	case SortNewest:
		return func(a, b catalog.Entry) int { return b.CreatedAt.Compare(a.CreatedAt.Time) }
	case SortMostViewed:
		return func(a, b catalog.Entry) int { return cmp.Compare(b.Stats.ViewCount, a.Stats.ViewCount) }
	case SortPopular:
		return func(a, b catalog.Entry) int { return cmp.Compare(Popularity(b), Popularity(a)) }
	case SortMostLiked:
		return func(a, b catalog.Entry) int { return cmp.Compare(b.Stats.LikeCount, a.Stats.LikeCount) }
	case SortPage:
		return func(a, b catalog.Entry) int {
			switch {
			case a.Volume == nil || b.Volume == nil:
				return cmp.Compare(boolRank(a.Volume == nil), boolRank(b.Volume == nil))
			default:
				return cmp.Compare(a.Volume.PageStart, b.Volume.PageStart)
			}
		}
	}
	return nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func authorComparator(key SortKey) func(a, b catalog.Author) int {
	switch key {
	case SortTitleAsc:
		compareNames := textnorm.Comparer()
		return func(a, b catalog.Author) int { return compareNames(a.FullName, b.FullName) }
	case SortTitleDesc:
		compareNames := textnorm.Comparer()
		return func(a, b catalog.Author) int { return compareNames(b.FullName, a.FullName) }
	}
	return nil
}

// Popularity is the weighted engagement score used by [SortPopular].
func Popularity(entry catalog.Entry) int64 {
	return entry.Stats.ViewCount + entry.Stats.LikeCount*PopularityWeight
}
