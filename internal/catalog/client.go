// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/remote"
	"github.com/taibuivan/reelbase/internal/repository"
)

// Resource names, relative to the API base address.
const (
	ResourceGenres  = "genres"
	ResourcePeople  = "people"
	ResourceMovies  = "movies"
	ResourceRatings = "ratings"
)

// # Remote Client

// Client reaches the catalog over HTTP with the same repository contract the
// server uses against the database.
type Client struct {
	genres  *remote.Repository[*Genre]
	people  *remote.Repository[*Person]
	movies  *MovieClient
	ratings *RatingClient
}

// NewClient creates a catalog client over connector.
func NewClient(connector *remote.Connector) *Client {
	return &Client{
		genres:  remote.NewRepository[*Genre](connector, ResourceGenres, remote.PublicReads),
		people:  remote.NewRepository[*Person](connector, ResourcePeople, remote.PublicReads),
		movies:  &MovieClient{Repository: remote.NewRepository[*Movie](connector, ResourceMovies, remote.PublicReads)},
		ratings: &RatingClient{connector: connector},
	}
}

func (c *Client) Genres() *remote.Repository[*Genre] {
	return c.genres
}

func (c *Client) People() *remote.Repository[*Person] {
	return c.people
}

func (c *Client) Movies() *MovieClient {
	return c.movies
}

func (c *Client) Ratings() *RatingClient {
	return c.ratings
}

// # Movies

// MovieClient mirrors [MovieRepository]. Create and UpdateGraph send the
// creation payload so the server rebuilds the relationship collections; Add
// and Update send the scalar fields only, like their local counterparts.
type MovieClient struct {
	*remote.Repository[*Movie]
}

// Add creates the movie without genres or cast.
func (c *MovieClient) Add(ctx context.Context, movie *Movie) (*Movie, error) {
	if movie == nil {
		return nil, repository.ErrNilArgument
	}

	created, _, err := remote.Invoke[*Movie](ctx, c.Connector(), remote.Call{
		Method: http.MethodPost, Resource: c.Resource(), Policy: remote.Authenticated, Body: movie.Scalars(),
	})
	return created, err
}

// Update copies the scalar fields of values onto movie id. The server keeps
// the existing genres and cast.
func (c *MovieClient) Update(ctx context.Context, id int, values *Movie) (*Movie, error) {
	if values == nil {
		return nil, repository.ErrNilArgument
	}

	updated, _, err := remote.Invoke[*Movie](ctx, c.Connector(), remote.Call{
		Method: http.MethodPatch, Resource: c.Resource(), Suffix: "/" + strconv.Itoa(id), Policy: remote.Authenticated, Body: values.Scalars(),
	})
	return updated, err
}

// Create sends a new movie with its genre ids and ordered cast.
func (c *MovieClient) Create(ctx context.Context, creation *MovieCreation) (*Movie, error) {
	if creation == nil {
		return nil, repository.ErrNilArgument
	}

	movie, _, err := remote.Invoke[*Movie](ctx, c.Connector(), remote.Call{
		Method: http.MethodPost, Resource: c.Resource(), Policy: remote.Authenticated, Body: creation,
	})
	return movie, err
}

// UpdateGraph replaces the scalar fields and both collections of movie id.
func (c *MovieClient) UpdateGraph(ctx context.Context, id int, update *MovieCreation) (*Movie, error) {
	if update == nil {
		return nil, repository.ErrNilArgument
	}

	movie, _, err := remote.Invoke[*Movie](ctx, c.Connector(), remote.Call{
		Method: http.MethodPut, Resource: c.Resource(), Suffix: "/" + strconv.Itoa(id), Policy: remote.Authenticated, Body: update,
	})
	return movie, err
}

// Details returns the movie with its rating summary. With policy
// [remote.Authenticated] the caller's own rate is included.
func (c *MovieClient) Details(ctx context.Context, id int, policy remote.CredentialPolicy) (*MovieDetails, error) {
	details, _, err := remote.Invoke[*MovieDetails](ctx, c.Connector(), remote.Call{
		Method: http.MethodGet, Resource: c.Resource(), Suffix: "/" + strconv.Itoa(id) + "/details", Policy: policy,
	})
	return details, err
}

// Landing returns the front page lists.
func (c *MovieClient) Landing(ctx context.Context, limit int) (*LandingPage, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	landing, _, err := remote.Invoke[*LandingPage](ctx, c.Connector(), remote.Call{
		Method: http.MethodGet, Resource: c.Resource(), Suffix: "/landing?" + query.Encode(), Policy: remote.Anonymous,
	})
	return landing, err
}

// # Ratings

// RatingClient submits the caller's scores.
type RatingClient struct {
	connector *remote.Connector
}

// Rate records the caller's rate for a movie, replacing an earlier one.
func (c *RatingClient) Rate(ctx context.Context, rating *RatingCreation) (*Rating, error) {
	if rating == nil {
		return nil, repository.ErrNilArgument
	}

	stored, _, err := remote.Invoke[*Rating](ctx, c.connector, remote.Call{
		Method: http.MethodPost, Resource: ResourceRatings, Policy: remote.Authenticated, Body: rating,
	})
	return stored, err
}

var (
	_ repository.Repository[*Genre]  = (*persistence.Repository[*Genre])(nil)
	_ repository.Repository[*Genre]  = (*remote.Repository[*Genre])(nil)
	_ repository.Repository[*Person] = (*persistence.Repository[*Person])(nil)
	_ repository.Repository[*Person] = (*remote.Repository[*Person])(nil)
	_ repository.Repository[*Movie]  = (*MovieRepository)(nil)
	_ repository.Repository[*Movie]  = (*MovieClient)(nil)
)
