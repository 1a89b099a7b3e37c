// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"
	"time"

	"github.com/taibuivan/ansiklopedi/internal/platform/constants"
	"github.com/taibuivan/ansiklopedi/internal/platform/validate"
	"github.com/taibuivan/ansiklopedi/pkg/query"
	"github.com/taibuivan/ansiklopedi/pkg/slug"
	"github.com/taibuivan/ansiklopedi/pkg/uuid"
)

// Draft limits.
const (
	minTitleLen   = 3
	maxTitleLen   = 200
	minSummaryLen = 10
	maxSummaryLen = 1000
	minBodyLen    = 50
	maxPage       = 10000

	draftIDPrefix = "ent"
	tagIDPrefix   = "tag_"
)

// DraftInput is the client payload for a new entry.
type DraftInput struct {
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Summary     string       `json:"summary"`
	Body        string       `json:"body"`
	CategoryIDs []string     `json:"categoryIds"`
	Tags        string       `json:"tags"` // comma separated
	Authorships []Authorship `json:"authorships"`
	Volume      *VolumeRef   `json:"volume"`
	Dates       *Period      `json:"dates"`
	Places      []Place      `json:"places"`
	References  []Reference  `json:"references"`
	SEO         *SEO         `json:"seo"`
}

/*
NewDraft validates input and builds the creation draft submitted upstream.

Placeholder fields are filled locally and are not authoritative until the
backend accepts the record:

  - ID: "ent_" followed by a UUIDv7.
  - Slug: derived from the title when blank.
  - Stats: zero. Status: pending. Language: tr.
  - SEO: defaults to the title and summary.
  - Timestamps: now.

Places without a name are dropped.
*/
func NewDraft(input DraftInput, now time.Time) (Entry, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Summary = strings.TrimSpace(input.Summary)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = slug.From(input.Title)
	}

	if err := validateDraft(input); err != nil {
		return Entry{}, err
	}

	places := make([]Place, 0, len(input.Places))
	for _, place := range input.Places {
		if strings.TrimSpace(place.Name) != "" {
			places = append(places, place)
		}
	}

	seo := SEO{MetaTitle: input.Title, MetaDescription: input.Summary}
	if input.SEO != nil {
		if input.SEO.MetaTitle != "" {
			seo.MetaTitle = input.SEO.MetaTitle
		}
		if input.SEO.MetaDescription != "" {
			seo.MetaDescription = input.SEO.MetaDescription
		}
	}

	authorships := input.Authorships
	if authorships == nil {
		authorships = []Authorship{}
	}

	timestamp := Timestamp{Time: now.UTC()}
	return Entry{
		ID:              uuid.Prefixed(draftIDPrefix),
		Slug:            input.Slug,
		Title:           input.Title,
		Summary:         input.Summary,
		Body:            input.Body,
		CategoryIDs:     input.CategoryIDs,
		TagIDs:          nonNil(query.Prefixed(input.Tags, tagIDPrefix)),
		Authorships:     authorships,
		Volume:          input.Volume,
		Dates:           input.Dates,
		Places:          places,
		Media:           []Media{},
		References:      nonNil(input.References),
		RelatedEntryIDs: []string{},
		SEO:             &seo,
		Stats:           Stats{},
		Status:          StatusPending,
		Language:        constants.DraftLanguage,
		CreatedAt:       timestamp,
		UpdatedAt:       timestamp,
	}, nil
}

func validateDraft(input DraftInput) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, minTitleLen).
		MaxLen(FieldTitle, input.Title, maxTitleLen).
		Required(FieldSummary, input.Summary).
		MinLen(FieldSummary, input.Summary, minSummaryLen).
		MaxLen(FieldSummary, input.Summary, maxSummaryLen).
		MinLen(FieldBody, strings.TrimSpace(input.Body), minBodyLen).
		NotEmpty(FieldCategoryIDs, input.CategoryIDs).
		Slug(FieldSlug, input.Slug)

	for _, authorship := range input.Authorships {
		v.Required(FieldAuthorID, authorship.AuthorID)
	}

	if input.Volume != nil {
		v.Required(FieldVolumeID, input.Volume.VolumeID)
		if input.Volume.PageStart != 0 || input.Volume.PageEnd != 0 {
			v.Range(FieldPageRange, input.Volume.PageEnd, input.Volume.PageStart, maxPage)
		}
	}

	if input.Dates != nil && input.Dates.PeriodStart != nil && input.Dates.PeriodEnd != nil {
		v.Custom(FieldPeriod, *input.Dates.PeriodEnd < *input.Dates.PeriodStart, "Must not precede periodStart")
	}

	return v.Err()
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
