// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
)

func validDraftInput() catalog.DraftInput {
	return catalog.DraftInput{
		Title:       "Kılıç Ali Paşa Camii",
		Summary:     "Sakarya'da bulunan tarihi bir cami.",
		Body:        strings.Repeat("Caminin tarihçesi ve mimarisi. ", 3),
		CategoryIDs: []string{"cat_01"},
		Tags:        "mimari, tag_tarih, ",
		Places: []catalog.Place{
			{Name: "Adapazarı", Admin: &catalog.Admin{Il: "Sakarya"}},
			{Name: "  "},
		},
	}
}

/*
TestNewDraft verifies the placeholder fields of a creation draft.
*/
func TestNewDraft(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	draft, err := catalog.NewDraft(validDraftInput(), now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(draft.ID, "ent_"))
	assert.Equal(t, "kilic-ali-pasa-camii", draft.Slug)
	assert.Equal(t, catalog.StatusPending, draft.Status)
	assert.Equal(t, "tr", draft.Language)
	assert.Equal(t, catalog.Stats{}, draft.Stats)
	assert.Equal(t, []string{"tag_mimari", "tag_tarih"}, draft.TagIDs)
	assert.Len(t, draft.Places, 1)
	assert.Equal(t, "Kılıç Ali Paşa Camii", draft.SEO.MetaTitle)
	assert.Equal(t, "Sakarya'da bulunan tarihi bir cami.", draft.SEO.MetaDescription)
	assert.True(t, now.Equal(draft.CreatedAt.Time))
	assert.NotNil(t, draft.Authorships)
	assert.NotNil(t, draft.RelatedEntryIDs)
}

/*
TestNewDraft_Validation checks that each invalid field is reported.
*/
func TestNewDraft_Validation(t *testing.T) {
	start, end := 1900, 1800

	tests := []struct {
		name   string
		mutate func(*catalog.DraftInput)
		field  string
	}{
		{"short_title", func(in *catalog.DraftInput) { in.Title = "ab" }, catalog.FieldTitle},
		{"missing_summary", func(in *catalog.DraftInput) { in.Summary = " " }, catalog.FieldSummary},
		{"short_body", func(in *catalog.DraftInput) { in.Body = "kısa" }, catalog.FieldBody},
		{"no_category", func(in *catalog.DraftInput) { in.CategoryIDs = nil }, catalog.FieldCategoryIDs},
		{"bad_slug", func(in *catalog.DraftInput) { in.Slug = "Kötü Slug" }, catalog.FieldSlug},
		{"blank_author", func(in *catalog.DraftInput) {
			in.Authorships = []catalog.Authorship{{AuthorID: ""}}
		}, catalog.FieldAuthorID},
		{"inverted_pages", func(in *catalog.DraftInput) {
			in.Volume = &catalog.VolumeRef{VolumeID: "vol_01", PageStart: 9, PageEnd: 3}
		}, catalog.FieldPageRange},
		{"inverted_period", func(in *catalog.DraftInput) {
			in.Dates = &catalog.Period{PeriodStart: &start, PeriodEnd: &end}
		}, catalog.FieldPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validDraftInput()
			tt.mutate(&input)

			_, err := catalog.NewDraft(input, time.Now())
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			fields := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}
