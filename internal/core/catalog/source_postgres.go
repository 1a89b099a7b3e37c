// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/ansiklopedi/internal/platform/database/schema"
	"github.com/taibuivan/ansiklopedi/internal/platform/dberr"
)

// Querier is the subset of *pgxpool.Pool used by [PostgresSource].
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads collections stored as JSONB documents.
//
// Lists are returned in insertion order, the equivalent of the REST backend's
// array order.
type PostgresSource struct {
	db Querier
}

// NewPostgresSource creates a source over db.
func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// # Entries

// ListEntries implements [Source].
func (s *PostgresSource) ListEntries(ctx context.Context, params EntryParams) ([]Entry, error) {
	query, args := entrySelect(params)
	return listDocuments[Entry](ctx, s.db, query, args...)
}

// GetEntry implements [Source]. id may also be the entry's slug.
func (s *PostgresSource) GetEntry(ctx context.Context, id string) (*Entry, error) {
	table := schema.CatalogEntry
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s->>'slug' = $1 ORDER BY %s LIMIT 1`,
		table.Doc, table.Table, table.ID, table.Doc, table.Position)
	return getDocument[Entry](ctx, s.db, query, id)
}

// CreateEntry implements [Source]. A duplicate id is reported as a conflict.
func (s *PostgresSource) CreateEntry(ctx context.Context, entry Entry) (*Entry, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode entry: %w", err)
	}

	table := schema.CatalogEntry
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.ID, table.Doc, table.Doc)

	var raw []byte
	if err := s.db.QueryRow(ctx, query, entry.ID, payload).Scan(&raw); err != nil {
		return nil, dberr.Wrap(err, "Entry")
	}

	var created Entry
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("catalog: decode created entry: %w", err)
	}
	return &created, nil
}

// # Authors, Categories, Volumes

// ListAuthors implements [Source].
func (s *PostgresSource) ListAuthors(ctx context.Context) ([]Author, error) {
	return listDocuments[Author](ctx, s.db, selectAll(schema.CatalogAuthor))
}

// GetAuthor implements [Source].
func (s *PostgresSource) GetAuthor(ctx context.Context, id string) (*Author, error) {
	return getDocument[Author](ctx, s.db, selectByID(schema.CatalogAuthor), id)
}

// ListCategories implements [Source].
func (s *PostgresSource) ListCategories(ctx context.Context) ([]Category, error) {
	return listDocuments[Category](ctx, s.db, selectAll(schema.CatalogCategory))
}

// GetCategory implements [Source].
func (s *PostgresSource) GetCategory(ctx context.Context, id string) (*Category, error) {
	return getDocument[Category](ctx, s.db, selectByID(schema.CatalogCategory), id)
}

// ListVolumes implements [Source].
func (s *PostgresSource) ListVolumes(ctx context.Context) ([]Volume, error) {
	return listDocuments[Volume](ctx, s.db, selectAll(schema.CatalogVolume))
}

// # Query Building

func selectAll(table schema.DocumentTable) string {
	return fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, table.Doc, table.Table, table.Position)
}

func selectByID(table schema.DocumentTable) string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, table.Doc, table.Table, table.ID)
}

// entrySelect builds the filtered entry listing. Only the relational filters
// and the term are pushed down.
func entrySelect(params EntryParams) (string, []any) {
	table := schema.CatalogEntry

	var (
		conditions []string
		args       []any
	)
	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if term := strings.TrimSpace(params.Query); term != "" {
		placeholder := next("%" + term + "%")
		conditions = append(conditions, fmt.Sprintf(
			`(%[1]s->>'title' ILIKE %[2]s OR %[1]s->>'summary' ILIKE %[2]s OR %[1]s->>'body' ILIKE %[2]s)`,
			table.Doc, placeholder))
	}
	if categoryID := strings.TrimSpace(params.CategoryID); categoryID != "" {
		conditions = append(conditions, fmt.Sprintf(`%s->'categoryIds' ? %s`, table.Doc, next(categoryID)))
	}
	if authorID := strings.TrimSpace(params.AuthorID); authorID != "" {
		conditions = append(conditions, fmt.Sprintf(
			`%s->'authorships' @> jsonb_build_array(jsonb_build_object('authorId', %s::text))`,
			table.Doc, next(authorID)))
	}
	if volumeID := strings.TrimSpace(params.VolumeID); volumeID != "" {
		conditions = append(conditions, fmt.Sprintf(`%s->'volume'->>'volumeId' = %s`, table.Doc, next(volumeID)))
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, `SELECT %s FROM %s`, table.Doc, table.Table)
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	fmt.Fprintf(&builder, ` ORDER BY %s`, table.Position)

	return builder.String(), args
}

// # Document Scanning

func listDocuments[T any](ctx context.Context, db Querier, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: query documents: %w", err)
	}
	defer rows.Close()

	documents := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("catalog: scan document: %w", err)
		}

		var document T
		if err := json.Unmarshal(raw, &document); err != nil {
			return nil, fmt.Errorf("catalog: decode document: %w", err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate documents: %w", err)
	}
	return documents, nil
}

func getDocument[T any](ctx context.Context, db Querier, query string, args ...any) (*T, error) {
	var raw []byte
	if err := db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: query document: %w", err)
	}

	var document T
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("catalog: decode document: %w", err)
	}
	return &document, nil
}
