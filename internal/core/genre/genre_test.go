// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/genre"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

var (
	seededAt     = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	genreColumns = []string{"id", "name", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}

	curator = &sec.AuthClaims{UserID: "u-1", Username: "cara", Role: string(sec.RoleCurator)}
	member  = &sec.AuthClaims{UserID: "u-2", Username: "mo", Role: string(sec.RoleMember)}
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func newRouter(t *testing.T, claims *sec.AuthClaims) (pgxmock.PgxPoolIface, http.Handler) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})

	factory := catalog.NewFactory(mock, nil, pagination.DefaultBounds)
	router.Mount("/genres", genre.NewHandler(factory, pagination.DefaultBounds, nil).Routes())
	return mock, router
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

/*
TestHandler_List verifies the page travels in the envelope and the metadata
in the pagination header.
*/
func TestHandler_List(t *testing.T) {
	mock, router := newRouter(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM catalog.genre WHERE isdeleted = false")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE isdeleted = false ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(2, 0).
		WillReturnRows(pgxmock.NewRows(genreColumns).
			AddRow(1, "Drama", seededAt, "seed", seededAt, "seed", false).
			AddRow(2, "Crime", seededAt, "seed", seededAt, "seed", false))

	recorder, body := serve(t, router, http.MethodGet, "/genres?pagenumber=1&recordsperpage=2", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var genres []catalog.Genre
	require.NoError(t, json.Unmarshal(body.Data, &genres))
	assert.Len(t, genres, 2)

	metadata, ok, err := pagination.ReadHeader(recorder.Header())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, metadata.TotalRecords)
	assert.Equal(t, 2, metadata.TotalPages)
	assert.True(t, metadata.HasNext)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_All verifies the unpaginated listing carries no pagination header.
*/
func TestHandler_All(t *testing.T) {
	mock, router := newRouter(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE isdeleted = false ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(genreColumns).
			AddRow(1, "Drama", seededAt, "seed", seededAt, "seed", false).
			AddRow(2, "Crime", seededAt, "seed", seededAt, "seed", false))

	recorder, body := serve(t, router, http.MethodGet, "/genres/all", "")
	require.Equal(t, http.StatusOK, recorder.Code, body.Error)

	var genres []catalog.Genre
	require.NoError(t, json.Unmarshal(body.Data, &genres))
	require.Len(t, genres, 2)
	assert.Equal(t, "Crime", genres[1].Name)

	_, ok, err := pagination.ReadHeader(recorder.Header())
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_Filter verifies an empty filter is rejected before any query and
a valid filter with no matches is an empty page.
*/
func TestHandler_Filter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		mock, router := newRouter(t, nil)

		recorder, body := serve(t, router, http.MethodGet, "/genres/filter", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_FILTER", body.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no_matches", func(t *testing.T) {
		mock, router := newRouter(t, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM catalog.genre WHERE isdeleted = false AND name ILIKE '%' || $1 || '%'")).
			WithArgs("dra").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		recorder, body := serve(t, router, http.MethodGet, "/genres/filter?name=dra", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", string(body.Data))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

/*
TestHandler_Get verifies absence and malformed ids.
*/
func TestHandler_Get(t *testing.T) {
	mock, router := newRouter(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE isdeleted = false AND id = $1")).
		WithArgs(9).WillReturnRows(pgxmock.NewRows(genreColumns))

	recorder, body := serve(t, router, http.MethodGet, "/genres/9", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Genre not found", body.Error)

	recorder, body = serve(t, router, http.MethodGet, "/genres/abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "BAD_REQUEST", body.Code)
}

/*
TestHandler_CreateRequiresCurator verifies write routes check the role.
*/
func TestHandler_CreateRequiresCurator(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", member, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, router := newRouter(t, tt.claims)

			recorder, _ := serve(t, router, http.MethodPost, "/genres", `{"name":"Noir"}`)
			assert.Equal(t, tt.status, recorder.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestHandler_Create verifies the genre is persisted with the curator as actor.
*/
func TestHandler_Create(t *testing.T) {
	mock, router := newRouter(t, curator)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.genre (name, createdat, createdby, updatedat, updatedby, isdeleted) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs("Noir", pgxmock.AnyArg(), "cara", pgxmock.AnyArg(), "cara", false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	recorder, body := serve(t, router, http.MethodPost, "/genres", `{"name":"Noir"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created catalog.Genre
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, "cara", created.CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_CreateValidation verifies an empty name never reaches the database.
*/
func TestHandler_CreateValidation(t *testing.T) {
	mock, router := newRouter(t, curator)

	recorder, body := serve(t, router, http.MethodPost, "/genres", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_Delete verifies the removed genre is flagged and returned.
*/
func TestHandler_Delete(t *testing.T) {
	mock, router := newRouter(t, curator)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE isdeleted = false AND id = $1")).
		WithArgs(4).
		WillReturnRows(pgxmock.NewRows(genreColumns).AddRow(4, "Western", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.genre SET name = $1, createdat = $2, createdby = $3, updatedat = $4, updatedby = $5, isdeleted = $6 WHERE id = $7")).
		WithArgs("Western", seededAt, "seed", pgxmock.AnyArg(), "cara", true, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	recorder, body := serve(t, router, http.MethodDelete, "/genres/4", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var removed catalog.Genre
	require.NoError(t, json.Unmarshal(body.Data, &removed))
	assert.Equal(t, 4, removed.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
