// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides page windows over in-memory result lists.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters,
// how a requested page is clamped against the filtered length, and how the
// resulting metadata is delivered in the API response envelope.
//
// Every derived quantity (total pages, slice bounds) is computed from the
// current total. Nothing is cached between calls.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified (3x4 grid).
	DefaultLimit = 12
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the requested page and limit.
type Params struct {
	Page  int
	Limit int
}

// Normalize replaces invalid values with defaults and caps the limit.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Window is a clamped page over a list of a known length.
type Window struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	Start      int
	End        int
}

// Clamp resolves p against total.
//
// # Clamping
//
// A page beyond the last one resolves to the last page whenever total > 0, so
// a stale page number never produces an empty result for a non-empty list.
func (p Params) Clamp(total int) Window {
	p = p.Normalize()
	if total < 0 {
		total = 0
	}

	totalPages := TotalPages(total, p.Limit)
	page := p.Page
	if totalPages == 0 {
		page = DefaultPage
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * p.Limit
	end := start + p.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Window{
		Page:       page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Meta returns the response metadata for the window.
func (w Window) Meta() Meta {
	return Meta{
		Page:       w.Page,
		Limit:      w.Limit,
		Total:      w.Total,
		TotalPages: w.TotalPages,
	}
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FromValues parses "page" and "pageSize" (or its alias "limit") from URL query
// values. Unparseable values fall back to defaults; range checks happen in
// [Params.Normalize].
func FromValues(values url.Values) Params {
	limitKey := "pageSize"
	if values.Get(limitKey) == "" {
		limitKey = "limit"
	}

	return Params{
		Page:  parseIntParam(values, "page", DefaultPage),
		Limit: parseIntParam(values, limitKey, DefaultLimit),
	}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) int {
	raw := values.Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
