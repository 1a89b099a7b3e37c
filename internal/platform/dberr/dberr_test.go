// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
	"github.com/taibuivan/ansiklopedi/internal/platform/dberr"
)

/*
TestWrap verifies the mapping from pgx errors to application errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Entry"))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no_rows", fmt.Errorf("select: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "CONFLICT"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "Entry"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}
