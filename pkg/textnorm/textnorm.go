// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm folds Turkish text into a comparison form.
//
// # Usage
//
// Search matching, letter bucketing and title ordering all go through this
// package so that "SAKARYA", "Sakarya" and "sakarya" compare equal and "Çark"
// lands next to "Cami" in the A–Z bar.
//
// # Transformation Pipeline
//
//  1. Lower-case with the Turkish rules (I → ı, İ → i).
//  2. Normalize to NFD (ş → s + combining cedilla).
//  3. Remove combining marks.
//  4. Recompose to NFC.
//
// The dotless ı has no decomposition, so "Irmak" and "İrmak" stay distinct.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OtherBucket is the letter bucket for titles that start with a digit, a symbol
// or nothing at all.
const OtherBucket = "#"

// Alphabet lists the letter buckets in navigation order.
//
// Letters carrying diacritics (Ç, Ğ, Ö, Ş, Ü) fold onto their base letter, while
// the dotted and dotless I keep separate buckets.
var Alphabet = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "İ", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	OtherBucket,
}

// Normalize returns the comparison form of s.
//
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Casers and transformers carry state, so a fresh chain is built per call.
	chain := transform.Chain(
		cases.Lower(language.Turkish),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)

	result, _, err := transform.String(chain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// Contains reports whether the normalized haystack contains the already
// normalized needle.
func Contains(haystack, normalizedNeedle string) bool {
	return strings.Contains(Normalize(haystack), normalizedNeedle)
}

// Letter returns the A–Z bucket of a title.
func Letter(title string) string {
	normalized := Normalize(strings.TrimSpace(title))
	first, size := utf8.DecodeRuneInString(normalized)
	if size == 0 || !isAlphabetRune(first) {
		return OtherBucket
	}
	return cases.Upper(language.Turkish).String(string(first))
}

// BucketOf normalizes a user supplied letter ("ç", "Ş", "i", "#") into the
// bucket it selects. Anything outside the alphabet selects [OtherBucket].
func BucketOf(letter string) string {
	letter = strings.TrimSpace(letter)
	if letter == OtherBucket {
		return OtherBucket
	}
	return Letter(letter)
}

// Comparer returns a Turkish collation compare function.
//
// The returned function is not safe for concurrent use; obtain one per sort.
func Comparer() func(a, b string) int {
	collator := collate.New(language.Turkish, collate.IgnoreCase)
	return collator.CompareString
}

// isAlphabetRune reports whether r starts a lettered bucket after normalization.
func isAlphabetRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || r == 'ı'
}
