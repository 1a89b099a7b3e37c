// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"strings"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/pkg/textnorm"
)

// MaxSuggestions caps the titles returned by [Suggest].
const MaxSuggestions = 5

// Suggest returns titles of published entries that start with prefix, in
// original order. Matching is normalized, so "sak" suggests "Sakarya Nehri".
// A prefix shorter than [MinTermLength] suggests nothing.
func Suggest(list []catalog.Entry, prefix string, limit int) []string {
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	prefix = strings.TrimSpace(prefix)
	if len([]rune(prefix)) < MinTermLength {
		return []string{}
	}
	normalized := textnorm.Normalize(prefix)

	titles := make([]string, 0, limit)
	for _, entry := range list {
		if !entry.IsPublished() {
			continue
		}
		if strings.HasPrefix(textnorm.Normalize(entry.Title), normalized) {
			titles = append(titles, entry.Title)
			if len(titles) == limit {
				break
			}
		}
	}
	return titles
}

// LetterCount is the number of published entries in one letter bucket.
type LetterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// LetterCounts returns one count per bucket of [textnorm.Alphabet], in
// alphabet order, including empty buckets.
func LetterCounts(list []catalog.Entry) []LetterCount {
	counts := make(map[string]int, len(textnorm.Alphabet))
	for _, entry := range list {
		if entry.IsPublished() {
			counts[textnorm.Letter(entry.Title)]++
		}
	}

	result := make([]LetterCount, 0, len(textnorm.Alphabet))
	for _, letter := range textnorm.Alphabet {
		result = append(result, LetterCount{Letter: letter, Count: counts[letter]})
	}
	return result
}
