// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from Turkish titles.
//
// # Usage
//
// Slugs are used as human-readable identifiers for entries
// (e.g., "izmit-korfezi"). Creation drafts get one from their title when the
// author leaves the slug blank.
package slug

import (
	"regexp"
	"strings"

	"github.com/taibuivan/ansiklopedi/pkg/textnorm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary title into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Fold with [textnorm.Normalize] (Turkish lower-case, accents removed).
//  2. Map the dotless ı onto i, it has no ASCII decomposition.
//  3. Replace every other run of non-alphanumerics with a hyphen.
//  4. Collapse and trim hyphens.
func From(s string) string {
	result := textnorm.Normalize(s)
	result = strings.ReplaceAll(result, "ı", "i")

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
