// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package present

import (
	"cmp"
	"slices"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/pkg/slice"
)

const (
	// RecentWindow is how far back an entry counts as recently added.
	RecentWindow = 30 * 24 * time.Hour

	// CategoryRecentLimit caps the recent entries listed per category.
	CategoryRecentLimit = 5
)

// Statistics are the catalogue totals shown on the home page.
type Statistics struct {
	PublishedEntries    int    `json:"publishedEntries"`
	Categories          int    `json:"categories"`
	Authors             int    `json:"authors"`
	TotalViews          int64  `json:"totalViews"`
	TotalLikes          int64  `json:"totalLikes"`
	RecentlyAdded       int    `json:"recentlyAdded"`
	MostPopularCategory string `json:"mostPopularCategory,omitempty"`
}

// CategoryStats is a category with its published entry figures.
type CategoryStats struct {
	catalog.Category

	EntryCount    int    `json:"entryCount"`
	TotalViews    int64  `json:"totalViews"`
	RecentEntries []Card `json:"recentEntries"`
}

// AuthorStats summarises an author's published entries.
type AuthorStats struct {
	EntryCount     int      `json:"entryCount"`
	TotalViews     int64    `json:"totalViews"`
	TotalLikes     int64    `json:"totalLikes"`
	CategoriesUsed []string `json:"categoriesUsed"`
}

// VolumeSummary is a volume with the number of published entries it holds.
type VolumeSummary struct {
	catalog.Volume

	EntryCount int `json:"entryCount"`
}

func (p *Presenter) published() []catalog.Entry {
	return slice.Filter(p.snapshot.Entries, catalog.Entry.IsPublished)
}

// Statistics computes the home page totals. Entries created within
// [RecentWindow] before now count as recently added. The most popular
// category is the one with the most views; the first one wins a tie.
func (p *Presenter) Statistics(now time.Time) Statistics {
	published := p.published()
	since := now.Add(-RecentWindow)

	stats := Statistics{
		PublishedEntries: len(published),
		Categories:       len(p.snapshot.Categories),
		Authors:          len(p.snapshot.Authors),
	}
	for _, entry := range published {
		stats.TotalViews += entry.Stats.ViewCount
		stats.TotalLikes += entry.Stats.LikeCount
		if !entry.CreatedAt.IsZero() && entry.CreatedAt.After(since) {
			stats.RecentlyAdded++
		}
	}

	var best *CategoryStats
	categories := p.CategoryStats()
	for i := range categories {
		if best == nil || categories[i].TotalViews > best.TotalViews {
			best = &categories[i]
		}
	}
	if best != nil {
		stats.MostPopularCategory = best.Name
	}
	return stats
}

// CategoryStats returns every category with its entry count, total views and
// newest entries, ordered by entry count descending.
func (p *Presenter) CategoryStats() []CategoryStats {
	published := p.published()

	result := make([]CategoryStats, 0, len(p.snapshot.Categories))
	for _, category := range p.snapshot.Categories {
		members := slice.Filter(published, func(entry catalog.Entry) bool { return entry.HasCategory(category.ID) })

		stats := CategoryStats{Category: category, EntryCount: len(members), TotalViews: sumViews(members)}

		slices.SortStableFunc(members, func(a, b catalog.Entry) int { return b.CreatedAt.Compare(a.CreatedAt.Time) })
		stats.RecentEntries = p.Cards(members[:min(len(members), CategoryRecentLimit)])

		result = append(result, stats)
	}

	slices.SortStableFunc(result, func(a, b CategoryStats) int { return cmp.Compare(b.EntryCount, a.EntryCount) })
	return result
}

// CategoryViews sums the views of the published entries filed under categoryID.
func (p *Presenter) CategoryViews(categoryID string) int64 {
	return sumViews(slice.Filter(p.published(), func(entry catalog.Entry) bool { return entry.HasCategory(categoryID) }))
}

func sumViews(entries []catalog.Entry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.Stats.ViewCount
	}
	return total
}

// AuthorStats summarises the published entries of the given author. Category
// names are listed once, in first-seen order.
func (p *Presenter) AuthorStats(authorID string) AuthorStats {
	stats := AuthorStats{CategoriesUsed: []string{}}
	seen := map[string]bool{}

	for _, entry := range p.snapshot.Entries {
		if !entry.IsPublished() || !entry.HasAuthor(authorID) {
			continue
		}

		stats.EntryCount++
		stats.TotalViews += entry.Stats.ViewCount
		stats.TotalLikes += entry.Stats.LikeCount

		for _, id := range entry.CategoryIDs {
			if !seen[id] {
				seen[id] = true
				stats.CategoriesUsed = append(stats.CategoriesUsed, p.CategoryName(id))
			}
		}
	}
	return stats
}

// VolumeSummaries lists the volumes by number with their entry counts.
func (p *Presenter) VolumeSummaries() []VolumeSummary {
	counts := map[string]int{}
	for _, entry := range p.published() {
		if id := entry.VolumeID(); id != "" {
			counts[id]++
		}
	}

	result := slice.Map(p.snapshot.Volumes, func(volume catalog.Volume) VolumeSummary {
		return VolumeSummary{Volume: volume, EntryCount: counts[volume.ID]}
	})
	if result == nil {
		return []VolumeSummary{}
	}

	slices.SortStableFunc(result, func(a, b VolumeSummary) int { return cmp.Compare(a.Number, b.Number) })
	return result
}
