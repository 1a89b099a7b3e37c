// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the encyclopedia records and the sources they are read from.

It covers the four collections served by the upstream catalogue (entries, authors,
categories, volumes), the [Source] contract that reads them, and the in-memory
[Store] that the query engine and the presentation adapter work against.

Core Responsibility:

  - Records: Entry, Author, Category and Volume shapes as returned by the backend.
  - Sources: REST, PostgreSQL and Redis-cached implementations of [Source].
  - Snapshot: One consistent, fully loaded set of collections per refresh.

Records are decoded with the union of all fields observed across the backend's
variants; unknown fields are ignored and missing ones stay zero.
*/
package catalog

import (
	"bytes"
	"encoding/json"
	"time"
)

// # Domain Enums

// Status is the lifecycle state of an [Entry].
type Status string

const (
	// StatusDraft is a locally prepared entry not yet submitted.
	StatusDraft Status = "draft"

	// StatusPending is a submitted entry awaiting editorial review.
	StatusPending Status = "pending"

	// StatusPublished entries are the only ones eligible for listing and search.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished:
		return true
	}
	return false
}

// # Core Entities

// Entry is a single encyclopedia article ("madde").
type Entry struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	MaddeNo int    `json:"maddeNo"` // display ordinal, not unique
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body,omitempty"`

	CategoryIDs []string     `json:"categoryIds"`
	TagIDs      []string     `json:"tagIds,omitempty"`
	Authorships []Authorship `json:"authorships,omitempty"`
	Volume      *VolumeRef   `json:"volume,omitempty"`
	Dates       *Period      `json:"dates,omitempty"`
	Places      []Place      `json:"places,omitempty"`
	Media       []Media      `json:"media,omitempty"`
	References  []Reference  `json:"references,omitempty"`

	RelatedEntryIDs []string `json:"relatedEntryIds,omitempty"`
	SEO             *SEO     `json:"seo,omitempty"`
	Stats           Stats    `json:"stats"`
	Status          Status   `json:"status"`
	Language        string   `json:"language,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// IsPublished reports whether the entry may appear in public listings.
func (e Entry) IsPublished() bool {
	return e.Status == StatusPublished
}

// HasCategory reports whether id is one of the entry's categories.
func (e Entry) HasCategory(id string) bool {
	for _, categoryID := range e.CategoryIDs {
		if categoryID == id {
			return true
		}
	}
	return false
}

// HasAuthor reports whether any authorship references id.
func (e Entry) HasAuthor(id string) bool {
	for _, authorship := range e.Authorships {
		if authorship.AuthorID == id {
			return true
		}
	}
	return false
}

// VolumeID returns the referenced volume id, or "" when the entry is unplaced.
func (e Entry) VolumeID() string {
	if e.Volume == nil {
		return ""
	}
	return e.Volume.VolumeID
}

// Authorship links an entry to an [Author]. Lower Order displays first.
type Authorship struct {
	AuthorID string `json:"authorId"`
	Role     string `json:"role"`
	Order    int    `json:"order"`
}

// VolumeRef places an entry on a page range of a printed [Volume].
type VolumeRef struct {
	VolumeID  string `json:"volumeId"`
	PageStart int    `json:"pageStart,omitempty"`
	PageEnd   int    `json:"pageEnd,omitempty"`
}

// Period is the historical span an entry is about (years, nullable).
type Period struct {
	PeriodStart *int `json:"periodStart,omitempty"`
	PeriodEnd   *int `json:"periodEnd,omitempty"`
}

// Place is a location an entry refers to.
type Place struct {
	Name  string `json:"name"`
	Geo   *Geo   `json:"geo,omitempty"`
	Admin *Admin `json:"admin,omitempty"`
}

// Geo is a WGS84 coordinate.
type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Admin is the administrative region of a [Place] (province and district).
type Admin struct {
	Il   string `json:"il"`
	Ilce string `json:"ilce,omitempty"`
}

// Media references an attached image or document.
type Media struct {
	MediaID string `json:"mediaId"`
	Caption string `json:"caption,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

// Reference is a bibliography item (book, article, url, archive).
type Reference struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// SEO holds the page metadata supplied by editors.
type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
}

// Stats holds engagement counters. They only grow.
type Stats struct {
	ViewCount int64 `json:"viewCount"`
	LikeCount int64 `json:"likeCount"`
}

// Author writes entries. Referenced by id from [Authorship].
type Author struct {
	ID           string         `json:"id"`
	FullName     string         `json:"fullName"`
	Bio          string         `json:"bio,omitempty"`
	Affiliation  string         `json:"affiliation,omitempty"`
	PhotoMediaID string         `json:"photoMediaId,omitempty"`
	Links        map[string]any `json:"links,omitempty"`
}

// Category groups entries. ParentID is carried but the set is treated as flat.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// Volume is a printed book ("cilt") collecting entries by page range.
type Volume struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Number          int       `json:"number"`
	ISBN            string    `json:"isbn,omitempty"`
	PublicationDate Timestamp `json:"publicationDate"`
	PDFURL          string    `json:"pdfUrl,omitempty"`
	PageCount       int       `json:"pageCount,omitempty"`
}

// # Timestamps

// Timestamp is a time decoded leniently from the backend.
//
// Empty strings, nulls and unparseable values decode to the zero time instead
// of failing the whole collection.
type Timestamp struct {
	time.Time
}

// timestampLayouts are tried in order when decoding.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements [json.Unmarshaler].
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON implements [json.Marshaler]. The zero time encodes as "".
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// # Field Identifiers

// Global field names for validation.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldSummary     = "summary"
	FieldBody        = "body"
	FieldCategoryIDs = "categoryIds"
	FieldVolumeID    = "volume.volumeId"
	FieldPageRange   = "volume.pageEnd"
	FieldPeriod      = "dates.periodEnd"
	FieldAuthorID    = "authorships.authorId"
)

// # Collection Names

// Collection names as used in upstream paths, cache keys, metrics and the
// degraded-state list of a [Snapshot].
const (
	CollectionEntries    = "entries"
	CollectionAuthors    = "authors"
	CollectionCategories = "categories"
	CollectionVolumes    = "volumes"
)
