// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating_test

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
	"github.com/taibuivan/reelbase/internal/core/rating"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

var (
	seededAt      = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	movieColumns  = []string{"id", "title", "slug", "summary", "trailer", "intheaters", "releasedate", "poster", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}
	ratingColumns = []string{"id", "movieid", "userid", "rate", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}

	member = &sec.AuthClaims{UserID: "u-2", Username: "mo", Role: string(sec.RoleMember)}
)

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

	service := rating.NewService(catalog.NewFactory(mock, nil, pagination.DefaultBounds), nil)
	router.Mount("/ratings", rating.NewHandler(service).Routes())
	return mock, router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(body)))
	return recorder
}

/*
TestHandler_RateRequiresAuth verifies anonymous callers cannot rate.
*/
func TestHandler_RateRequiresAuth(t *testing.T) {
	mock, router := newRouter(t, nil)

	recorder := post(router, `{"movieId":42,"rate":4}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_RateOutOfRange verifies rates outside 1..5 are rejected.
*/
func TestHandler_RateOutOfRange(t *testing.T) {
	mock, router := newRouter(t, member)

	recorder := post(router, `{"movieId":42,"rate":9}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_RateFirstTime verifies a first rate is inserted for the caller.
*/
func TestHandler_RateFirstTime(t *testing.T) {
	mock, router := newRouter(t, member)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movie WHERE isdeleted = false AND id = $1")).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(movieColumns).
			AddRow(42, "Heat", "heat", "", "", true, seededAt, "", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.rating WHERE isdeleted = false AND movieid = $1 AND userid = $2")).
		WithArgs(42, "u-2").WillReturnRows(pgxmock.NewRows(ratingColumns))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.rating (movieid, userid, rate, createdat, createdby, updatedat, updatedby, isdeleted)")).
		WithArgs(42, "u-2", 4, pgxmock.AnyArg(), "mo", pgxmock.AnyArg(), "mo", false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	recorder := post(router, `{"movieId":42,"rate":4}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Data catalog.Rating `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.ID)
	assert.Equal(t, "u-2", body.Data.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_RateUnknownMovie verifies rating a missing movie is NOT_FOUND.
*/
func TestHandler_RateUnknownMovie(t *testing.T) {
	mock, router := newRouter(t, member)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movie WHERE isdeleted = false AND id = $1")).
		WithArgs(404).WillReturnRows(pgxmock.NewRows(movieColumns))

	recorder := post(router, `{"movieId":404,"rate":4}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Movie not found")
	require.NoError(t, mock.ExpectationsWereMet())
}
