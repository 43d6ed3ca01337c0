// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/remote"
	"github.com/taibuivan/reelbase/internal/repository"
)

func newClient(t *testing.T, handler http.HandlerFunc) *catalog.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "secret"})
	return catalog.NewClient(remote.NewConnector(server.URL+"/api/v1", server.Client(), tokens, nil))
}

func respondData(t *testing.T, writer http.ResponseWriter, data any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(writer).Encode(map[string]any{"data": data}))
}

/*
TestMovieClient_Create verifies the creation payload is posted with credentials.
*/
func TestMovieClient_Create(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/movies", request.URL.Path)
		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))

		var creation catalog.MovieCreation
		require.NoError(t, json.NewDecoder(request.Body).Decode(&creation))
		assert.Equal(t, []int{2, 5}, creation.GenreIDs)
		assert.Equal(t, []catalog.ActorCreation{{PersonID: 7, Character: "Lead"}}, creation.Actors)

		respondData(t, writer, map[string]any{
			"id":     42,
			"title":  creation.Title,
			"genres": []map[string]any{{"id": 2}, {"id": 5}},
			"actors": []map[string]any{{"personId": 7, "characterName": "Lead", "designatedOrder": 1}},
		})
	})

	movie, err := client.Movies().Create(context.Background(), &catalog.MovieCreation{
		Title:    "The Long Night",
		GenreIDs: []int{2, 5},
		Actors:   []catalog.ActorCreation{{PersonID: 7, Character: "Lead"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, movie.ID)
	assert.Equal(t, []int{2, 5}, movie.GenreIDs())
	require.Len(t, movie.Actors, 1)
	assert.Equal(t, 1, movie.Actors[0].DesignatedOrder)
}

/*
TestMovieClient_ScalarWrites verifies Add and Update through the repository
contract send the scalar fields only, so the server never rebuilds genres or
cast from a movie body.
*/
func TestMovieClient_ScalarWrites(t *testing.T) {
	var methods []string
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		methods = append(methods, request.Method+" "+request.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Heat", body["title"])
		assert.NotContains(t, body, "genreIds")
		assert.NotContains(t, body, "genres")
		assert.NotContains(t, body, "actors")

		respondData(t, writer, map[string]any{"id": 42, "title": "Heat"})
	})

	var movies repository.Repository[*catalog.Movie] = client.Movies()
	values := &catalog.Movie{
		Title:  "Heat",
		Genres: []*catalog.Genre{{Base: catalog.Base{ID: 2}}, {Base: catalog.Base{ID: 5}}},
		Actors: []*catalog.MovieActor{{PersonID: 7, CharacterName: "Lead"}},
	}

	updated, err := movies.Update(context.Background(), 42, values)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.ID)

	_, err = movies.Add(context.Background(), values)
	require.NoError(t, err)

	assert.Equal(t, []string{"PATCH /api/v1/movies/42", "POST /api/v1/movies"}, methods)

	_, err = movies.Update(context.Background(), 42, nil)
	assert.ErrorIs(t, err, repository.ErrNilArgument)
}

/*
TestMovieClient_Details verifies the details route and the explicit policy.
*/
func TestMovieClient_Details(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/movies/42/details", request.URL.Path)
		assert.Empty(t, request.Header.Get("Authorization"))
		respondData(t, writer, map[string]any{"movie": map[string]any{"id": 42}, "averageRate": 3.5})
	})

	details, err := client.Movies().Details(context.Background(), 42, remote.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, 42, details.Movie.ID)
	assert.InDelta(t, 3.5, details.AverageRate, 0.001)
	assert.Zero(t, details.UserRate)
}

/*
TestMovieClient_Landing verifies the limit is sent as a query parameter.
*/
func TestMovieClient_Landing(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/movies/landing", request.URL.Path)
		assert.Equal(t, "4", request.URL.Query().Get("limit"))
		respondData(t, writer, map[string]any{"inTheaters": []any{map[string]any{"id": 1}}, "upcomingReleases": []any{}})
	})

	landing, err := client.Movies().Landing(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, landing.InTheaters, 1)
	assert.Empty(t, landing.UpcomingReleases)
}

/*
TestRatingClient_Rate verifies ratings are always sent with credentials.
*/
func TestRatingClient_Rate(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/ratings", request.URL.Path)
		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))
		respondData(t, writer, map[string]any{"id": 3, "movieId": 42, "rate": 5})
	})

	rating, err := client.Ratings().Rate(context.Background(), &catalog.RatingCreation{MovieID: 42, Rate: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rate)

	_, err = client.Ratings().Rate(context.Background(), nil)
	assert.Error(t, err)
}

/*
TestClient_GenreNotFound verifies server failures surface their message.
*/
func TestClient_GenreNotFound(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte("Genre not found"))
	})

	_, err := client.Genres().GetByID(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, "Genre not found", err.Error())
	assert.True(t, remote.IsNotFound(err))
}
