// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/dberr"
)

/*
TestWrap verifies constraint violations map to client errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, apperr.CodeConflict},
		{"foreign_key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, apperr.CodeValidation},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := apperr.As(dberr.Wrap(tt.err, "movie: create"))
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.status, wrapped.HTTPStatus)
			assert.Equal(t, tt.code, wrapped.Code)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.Contains(t, wrapped.Cause.Error(), "movie: create")
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "movie: create"))
}
