// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an upstream error body is kept for logs.
const maxErrorBody = 512

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s %s: upstream status %d", e.Method, e.Path, e.StatusCode)
}

// RESTSource reads collections from a json-server style backend.
//
// # Endpoints
//
//	GET  /entries          GET /entries/{id}   POST /entries
//	GET  /authors          GET /authors/{id}
//	GET  /categories       GET /categories/{id}
//	GET  /volumes
type RESTSource struct {
	baseURL *url.URL
	client  *http.Client
}

// NewRESTSource creates a source for the backend at baseURL.
// A nil client gets a default one with the given timeout.
func NewRESTSource(baseURL string, timeout time.Duration, client *http.Client) (*RESTSource, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid upstream url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("catalog: upstream url %q must be absolute", baseURL)
	}

	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &RESTSource{baseURL: parsed, client: client}, nil
}

// # Entries

// ListEntries implements [Source]. Non-empty params are forwarded with the
// backend's own parameter names.
func (s *RESTSource) ListEntries(ctx context.Context, params EntryParams) ([]Entry, error) {
	var entries []Entry
	if err := s.get(ctx, "/"+CollectionEntries, entryQuery(params), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry implements [Source].
func (s *RESTSource) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	if err := s.get(ctx, "/"+CollectionEntries+"/"+url.PathEscape(id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateEntry implements [Source]. The backend's stored copy is returned.
func (s *RESTSource) CreateEntry(ctx context.Context, entry Entry) (*Entry, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode entry: %w", err)
	}

	var created Entry
	if err := s.do(ctx, http.MethodPost, "/"+CollectionEntries, nil, bytes.NewReader(payload), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// # Authors, Categories, Volumes

// ListAuthors implements [Source].
func (s *RESTSource) ListAuthors(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := s.get(ctx, "/"+CollectionAuthors, nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// GetAuthor implements [Source].
func (s *RESTSource) GetAuthor(ctx context.Context, id string) (*Author, error) {
	var author Author
	if err := s.get(ctx, "/"+CollectionAuthors+"/"+url.PathEscape(id), nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// ListCategories implements [Source].
func (s *RESTSource) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.get(ctx, "/"+CollectionCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory implements [Source].
func (s *RESTSource) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := s.get(ctx, "/"+CollectionCategories+"/"+url.PathEscape(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListVolumes implements [Source].
func (s *RESTSource) ListVolumes(ctx context.Context) ([]Volume, error) {
	var volumes []Volume
	if err := s.get(ctx, "/"+CollectionVolumes, nil, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

// # Transport

func (s *RESTSource) get(ctx context.Context, path string, query url.Values, target any) error {
	return s.do(ctx, http.MethodGet, path, query, nil, target)
}

// do performs one request and decodes a 2xx JSON body into target.
// 404 maps to [ErrNotFound]; any other non-2xx status to [*StatusError].
func (s *RESTSource) do(ctx context.Context, method, path string, query url.Values, body io.Reader, target any) error {
	endpoint := *s.baseURL
	endpoint.Path = s.baseURL.Path + path
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("catalog: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: response.StatusCode,
			Body:       string(snippet),
		}
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}

// entryQuery maps [EntryParams] onto json-server query parameters.
func entryQuery(params EntryParams) url.Values {
	query := url.Values{}
	setIf := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			query.Set(key, value)
		}
	}

	setIf("q", params.Query)
	setIf("categoryIds_like", params.CategoryID)
	setIf("authorships_like", params.AuthorID)
	setIf("volume.volumeId", params.VolumeID)
	return query
}
