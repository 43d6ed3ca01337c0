// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

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
	"github.com/taibuivan/reelbase/internal/core/movie"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

var (
	seededAt  = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	releaseAt = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	movieColumns      = []string{"id", "title", "slug", "summary", "trailer", "intheaters", "releasedate", "poster", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}
	genreColumns      = []string{"id", "name", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}
	personColumns     = []string{"id", "name", "biography", "dateofbirth", "picture", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}
	movieActorColumns = []string{"id", "movieid", "personid", "charactername", "designatedorder", "createdat", "createdby", "updatedat", "updatedby", "isdeleted"}

	curator = &sec.AuthClaims{UserID: "u-1", Username: "cara", Role: string(sec.RoleCurator)}
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

	service := movie.NewService(catalog.NewFactory(mock, nil, pagination.DefaultBounds), nil)
	router.Mount("/movies", movie.NewHandler(service, pagination.DefaultBounds).Routes())
	return mock, router
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

/*
TestHandler_CreateMovie verifies the whole graph is committed and returned
with the cast in input order.
*/
func TestHandler_CreateMovie(t *testing.T) {
	mock, router := newRouter(t, curator)
	dateOfBirth := time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE isdeleted = false AND id = $1")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(genreColumns).AddRow(2, "Drama", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.person WHERE isdeleted = false AND id = $1")).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(personColumns).AddRow(7, "Ana", "", &dateOfBirth, "", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.movie (")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog.moviegenre (movieid, genreid)")).
		WithArgs(42, 2).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.movieactor (")).
		WithArgs(42, 7, "Lead", 1, pgxmock.AnyArg(), "cara", pgxmock.AnyArg(), "cara", false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectCommit()

	payload := `{"title":"The Long Night","releaseDate":"2026-03-06T00:00:00Z","genreIds":[2],"actors":[{"personId":7,"character":"Lead"}]}`
	recorder, body := serve(t, router, http.MethodPost, "/movies", payload)
	require.Equal(t, http.StatusCreated, recorder.Code, body.Error)

	var created catalog.Movie
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "the-long-night", created.Slug)
	assert.Equal(t, []int{2}, created.GenreIDs())
	require.Len(t, created.Actors, 1)
	assert.Equal(t, 7, created.Actors[0].PersonID)
	assert.Equal(t, 1, created.Actors[0].DesignatedOrder)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_CreateMovieValidation verifies a payload without a title is rejected.
*/
func TestHandler_CreateMovieValidation(t *testing.T) {
	mock, router := newRouter(t, curator)

	recorder, body := serve(t, router, http.MethodPost, "/movies", `{"releaseDate":"2026-03-06T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	recorder, _ = serve(t, router, http.MethodPost, "/movies", `{"title":"Heat","releaseDate":"2026-03-06T00:00:00Z","poster":"ftp://cdn/heat.jpg","genreIds":[0]}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"poster"`)
	assert.Contains(t, recorder.Body.String(), `"field":"genreIds"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_Details verifies anonymous details carry the average only.
*/
func TestHandler_Details(t *testing.T) {
	mock, router := newRouter(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movie WHERE isdeleted = false AND id = $1")).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(movieColumns).
			AddRow(42, "Heat", "heat", "", "", true, releaseAt, "", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT movieid, genreid FROM catalog.moviegenre")).
		WithArgs(42).WillReturnRows(pgxmock.NewRows([]string{"movieid", "genreid"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.genre WHERE")).
		WithArgs(42).WillReturnRows(pgxmock.NewRows(genreColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movieactor WHERE")).
		WithArgs(42).WillReturnRows(pgxmock.NewRows(movieActorColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.person WHERE")).
		WithArgs(42).WillReturnRows(pgxmock.NewRows(personColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(rate), 0)::float8 FROM catalog.rating")).
		WithArgs(42).WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow(3.5))

	recorder, body := serve(t, router, http.MethodGet, "/movies/42/details", "")
	require.Equal(t, http.StatusOK, recorder.Code, body.Error)

	var details catalog.MovieDetails
	require.NoError(t, json.Unmarshal(body.Data, &details))
	assert.Equal(t, 42, details.Movie.ID)
	assert.InDelta(t, 3.5, details.AverageRate, 0.001)
	assert.Zero(t, details.UserRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_UpdateAbsent verifies updating an unknown movie is NOT_FOUND.
*/
func TestHandler_UpdateAbsent(t *testing.T) {
	mock, router := newRouter(t, curator)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movie WHERE isdeleted = false AND id = $1")).
		WithArgs(404).WillReturnRows(pgxmock.NewRows(movieColumns))

	recorder, body := serve(t, router, http.MethodPut, "/movies/404", `{"title":"Gone","releaseDate":"2026-03-06T00:00:00Z"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Movie not found", body.Error)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestHandler_PatchKeepsRelations verifies a scalar update writes the movie row
only and leaves genres and cast untouched.
*/
func TestHandler_PatchKeepsRelations(t *testing.T) {
	mock, router := newRouter(t, curator)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.movie WHERE isdeleted = false AND id = $1")).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(movieColumns).
			AddRow(42, "Heat", "heat", "", "", true, releaseAt, "", seededAt, "seed", seededAt, "seed", false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.movie SET")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	payload := `{"title":"Heat (Director's Cut)","releaseDate":"2026-03-06T00:00:00Z","genres":[{"id":9}],"actors":[{"personId":7}]}`
	recorder, body := serve(t, router, http.MethodPatch, "/movies/42", payload)
	require.Equal(t, http.StatusOK, recorder.Code, body.Error)

	var updated catalog.Movie
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	assert.Equal(t, 42, updated.ID)
	assert.Equal(t, "Heat (Director's Cut)", updated.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestLandingLimit verifies small limits fall back to the default and large ones are clamped.
*/
func TestLandingLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, movie.DefaultLandingLimit},
		{"negative uses default", -3, movie.DefaultLandingLimit},
		{"within range", 12, 12},
		{"at maximum", movie.MaxLandingLimit, movie.MaxLandingLimit},
		{"above maximum", 30, movie.MaxLandingLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, movie.LandingLimit(tt.limit))
		})
	}
}

/*
TestParseFilter verifies malformed values are ignored.
*/
func TestParseFilter(t *testing.T) {
	filter := movie.ParseFilter(map[string][]string{
		"title":      {"heat"},
		"genreId":    {"x"},
		"inTheaters": {"false"},
	}).(catalog.MovieFilter)

	require.NotNil(t, filter.Title)
	assert.Equal(t, "heat", *filter.Title)
	assert.Nil(t, filter.GenreID)
	require.NotNil(t, filter.InTheaters)
	assert.False(t, *filter.InTheaters)
	assert.Nil(t, filter.UpcomingReleases)
	assert.Len(t, filter.Conditions(), 2)
}
