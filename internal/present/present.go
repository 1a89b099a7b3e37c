// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package present turns raw catalogue records into display records.

A [Presenter] is built once per [catalog.Snapshot] and resolves the foreign
keys of entries (authors, categories, volumes) through maps instead of ad hoc
scans. Search and sorting never see these display strings; they work on the
raw records in package search.

Resolution never fails. A dangling reference resolves to a fallback label:

  - Author: [UnknownAuthor]
  - Category and volume: [UnknownLabel]
*/
package present

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/pkg/slice"
	"github.com/taibuivan/ansiklopedi/pkg/textnorm"
)

const (
	// UnknownAuthor is shown for an authorship whose author is missing.
	UnknownAuthor = "Unknown Author"

	// UnknownLabel is shown for a missing category or volume.
	UnknownLabel = "Unknown"

	// RelatedLimit caps the related entries shown on a detail page.
	RelatedLimit = 6
)

// Presenter resolves display fields against one snapshot.
type Presenter struct {
	snapshot   *catalog.Snapshot
	authors    map[string]catalog.Author
	categories map[string]catalog.Category
	volumes    map[string]catalog.Volume
}

// New indexes the snapshot's authors, categories and volumes.
func New(snapshot *catalog.Snapshot) *Presenter {
	return &Presenter{
		snapshot:   snapshot,
		authors:    slice.IndexBy(snapshot.Authors, func(a catalog.Author) string { return a.ID }),
		categories: slice.IndexBy(snapshot.Categories, func(c catalog.Category) string { return c.ID }),
		volumes:    slice.IndexBy(snapshot.Volumes, func(v catalog.Volume) string { return v.ID }),
	}
}

// rebind returns a presenter over snapshot that reuses p's lookup maps.
// snapshot must share p's authors, categories and volumes.
func (p *Presenter) rebind(snapshot *catalog.Snapshot) *Presenter {
	next := *p
	next.snapshot = snapshot
	return &next
}

// AuthorName resolves one author id.
func (p *Presenter) AuthorName(id string) string {
	if author, ok := p.authors[id]; ok && author.FullName != "" {
		return author.FullName
	}
	return UnknownAuthor
}

// orderedAuthorships returns the entry's authorships by ascending Order.
func orderedAuthorships(entry catalog.Entry) []catalog.Authorship {
	ordered := slices.Clone(entry.Authorships)
	slices.SortStableFunc(ordered, func(a, b catalog.Authorship) int { return cmp.Compare(a.Order, b.Order) })
	return ordered
}

/*
AuthorLine joins the entry's author names in authorship order.

	one author    "Name Y"
	two authors   "Name Y and Name X"
	three or more "Name Y and 2 others"
*/
func (p *Presenter) AuthorLine(entry catalog.Entry) string {
	ordered := orderedAuthorships(entry)

	switch len(ordered) {
	case 0:
		return UnknownAuthor
	case 1:
		return p.AuthorName(ordered[0].AuthorID)
	case 2:
		return p.AuthorName(ordered[0].AuthorID) + " and " + p.AuthorName(ordered[1].AuthorID)
	default:
		return fmt.Sprintf("%s and %d others", p.AuthorName(ordered[0].AuthorID), len(ordered)-1)
	}
}

// CategoryName resolves a category id.
func (p *Presenter) CategoryName(id string) string {
	if category, ok := p.categories[id]; ok && category.Name != "" {
		return category.Name
	}
	return UnknownLabel
}

// VolumeLabel resolves the title of the entry's volume.
func (p *Presenter) VolumeLabel(entry catalog.Entry) string {
	if volume, ok := p.volumes[entry.VolumeID()]; ok && volume.Title != "" {
		return volume.Title
	}
	return UnknownLabel
}

/*
Related returns the entries to show next to entry.

Explicit RelatedEntryIDs win: they are resolved in listed order and unknown
or unpublished ids are skipped. Without explicit links, other published
entries sharing at least one category are used, ordered by title. Either way
at most limit entries are returned; limit <= 0 means [RelatedLimit].
*/
func (p *Presenter) Related(entry catalog.Entry, limit int) []catalog.Entry {
	if limit <= 0 {
		limit = RelatedLimit
	}

	if len(entry.RelatedEntryIDs) > 0 {
		related := make([]catalog.Entry, 0, min(limit, len(entry.RelatedEntryIDs)))
		for _, id := range entry.RelatedEntryIDs {
			if len(related) == limit {
				break
			}
			candidate, ok := p.snapshot.Entry(id)
			if ok && candidate.IsPublished() && candidate.ID != entry.ID {
				related = append(related, candidate)
			}
		}
		return related
	}

	related := slice.Filter(p.snapshot.Entries, func(candidate catalog.Entry) bool {
		if !candidate.IsPublished() || candidate.ID == entry.ID {
			return false
		}
		return slices.ContainsFunc(entry.CategoryIDs, candidate.HasCategory)
	})

	compareTitles := textnorm.Comparer()
	slices.SortStableFunc(related, func(a, b catalog.Entry) int { return compareTitles(a.Title, b.Title) })

	if len(related) > limit {
		related = related[:limit:limit]
	}
	return related
}
