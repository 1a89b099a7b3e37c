// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package present

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/search"
	"github.com/taibuivan/ansiklopedi/pkg/slice"
	"github.com/taibuivan/ansiklopedi/pkg/textnorm"
)

// markdown renders entry bodies. Raw HTML in a body is escaped.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// CategoryLabel is a resolved category reference.
type CategoryLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// AuthorLabel is a resolved authorship.
type AuthorLabel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Card is the list display record of an entry.
type Card struct {
	ID         string            `json:"id"`
	Slug       string            `json:"slug"`
	MaddeNo    int               `json:"maddeNo,omitempty"`
	Title      string            `json:"title"`
	Summary    string            `json:"summary"`
	Letter     string            `json:"letter"`
	Authors    string            `json:"authors"`
	Categories []CategoryLabel   `json:"categories"`
	Volume     string            `json:"volume,omitempty"`
	Stats      catalog.Stats     `json:"stats"`
	Popularity int64             `json:"popularity"`
	CreatedAt  catalog.Timestamp `json:"createdAt"`
}

// Detail is the full display record of an entry.
type Detail struct {
	Card

	BodyHTML     string              `json:"bodyHtml"`
	AuthorList   []AuthorLabel       `json:"authorList"`
	VolumeNumber int                 `json:"volumeNumber,omitempty"`
	Pages        string              `json:"pages,omitempty"`
	Period       string              `json:"period,omitempty"`
	Places       string              `json:"places,omitempty"`
	Tags         []string            `json:"tags"`
	References   []catalog.Reference `json:"references"`
	SEO          *catalog.SEO        `json:"seo,omitempty"`
	Related      []Card              `json:"related"`
	UpdatedAt    catalog.Timestamp   `json:"updatedAt"`
}

// Card builds the list record of entry.
func (p *Presenter) Card(entry catalog.Entry) Card {
	categories := make([]CategoryLabel, 0, len(entry.CategoryIDs))
	for _, id := range entry.CategoryIDs {
		label := CategoryLabel{ID: id, Name: p.CategoryName(id)}
		if category, ok := p.categories[id]; ok {
			label.Color = category.Color
		}
		categories = append(categories, label)
	}

	card := Card{
		ID:         entry.ID,
		Slug:       entry.Slug,
		MaddeNo:    entry.MaddeNo,
		Title:      entry.Title,
		Summary:    entry.Summary,
		Letter:     textnorm.Letter(entry.Title),
		Authors:    p.AuthorLine(entry),
		Categories: categories,
		Stats:      entry.Stats,
		Popularity: search.Popularity(entry),
		CreatedAt:  entry.CreatedAt,
	}
	if entry.Volume != nil {
		card.Volume = p.VolumeLabel(entry)
	}
	return card
}

// Cards builds the list records of a page of entries.
func (p *Presenter) Cards(entries []catalog.Entry) []Card {
	cards := slice.Map(entries, p.Card)
	if cards == nil {
		return []Card{}
	}
	return cards
}

// Detail builds the full record of entry, including related cards. It fails
// only when the body cannot be rendered.
func (p *Presenter) Detail(entry catalog.Entry) (Detail, error) {
	body, err := RenderBody(entry.Body)
	if err != nil {
		return Detail{}, fmt.Errorf("present: render body of %s: %w", entry.ID, err)
	}

	authors := slice.Map(orderedAuthorships(entry), func(a catalog.Authorship) AuthorLabel {
		return AuthorLabel{ID: a.AuthorID, Name: p.AuthorName(a.AuthorID), Role: a.Role}
	})
	if authors == nil {
		authors = []AuthorLabel{}
	}

	detail := Detail{
		Card:       p.Card(entry),
		BodyHTML:   body,
		AuthorList: authors,
		Period:     PeriodText(entry.Dates),
		Places:     PlacesText(entry.Places),
		Tags:       nonNil(entry.TagIDs),
		References: nonNil(entry.References),
		SEO:        entry.SEO,
		Related:    p.Cards(p.Related(entry, RelatedLimit)),
		UpdatedAt:  entry.UpdatedAt,
	}

	if entry.Volume != nil {
		detail.Pages = PageRange(*entry.Volume)
		if volume, ok := p.volumes[entry.Volume.VolumeID]; ok {
			detail.VolumeNumber = volume.Number
		}
	}
	return detail, nil
}

// RenderBody converts a Markdown body to HTML.
func RenderBody(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlacesText formats places as "name (ilçe/il)", comma separated. Missing
// region parts are left out.
func PlacesText(places []catalog.Place) string {
	parts := make([]string, 0, len(places))
	for _, place := range places {
		if place.Name == "" {
			continue
		}

		var region []string
		if place.Admin != nil {
			for _, part := range []string{place.Admin.Ilce, place.Admin.Il} {
				if part != "" {
					region = append(region, part)
				}
			}
		}

		if len(region) == 0 {
			parts = append(parts, place.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", place.Name, strings.Join(region, "/")))
	}
	return strings.Join(parts, ", ")
}

// PeriodText formats the historical period as "start - end", or whichever
// bound is known.
func PeriodText(dates *catalog.Period) string {
	if dates == nil {
		return ""
	}

	switch {
	case dates.PeriodStart != nil && dates.PeriodEnd != nil:
		return fmt.Sprintf("%d - %d", *dates.PeriodStart, *dates.PeriodEnd)
	case dates.PeriodStart != nil:
		return strconv.Itoa(*dates.PeriodStart)
	case dates.PeriodEnd != nil:
		return strconv.Itoa(*dates.PeriodEnd)
	}
	return ""
}

// PageRange formats the page span of a volume reference.
func PageRange(ref catalog.VolumeRef) string {
	switch {
	case ref.PageStart > 0 && ref.PageEnd > ref.PageStart:
		return fmt.Sprintf("%d-%d", ref.PageStart, ref.PageEnd)
	case ref.PageStart > 0:
		return strconv.Itoa(ref.PageStart)
	}
	return ""
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
