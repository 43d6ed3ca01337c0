// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/reelbase/internal/repository"
)

// # Movie Payloads

// ActorCreation credits one person; its position in the list is the cast order.
type ActorCreation struct {
	PersonID  int    `json:"personId"`
	Character string `json:"character"`
}

// MovieCreation is the payload of movie create and update.
type MovieCreation struct {
	Title       string          `json:"title"`
	Summary     string          `json:"summary,omitempty"`
	Trailer     string          `json:"trailer,omitempty"`
	InTheaters  bool            `json:"inTheaters"`
	ReleaseDate time.Time       `json:"releaseDate"`
	Poster      string          `json:"poster,omitempty"`
	GenreIDs    []int           `json:"genreIds,omitempty"`
	Actors      []ActorCreation `json:"actors,omitempty"`
}

// Movie returns a detached movie holding the scalar fields of the payload.
func (c MovieCreation) Movie() *Movie {
	return &Movie{
		Title:       c.Title,
		Summary:     c.Summary,
		Trailer:     c.Trailer,
		InTheaters:  c.InTheaters,
		ReleaseDate: c.ReleaseDate,
		Poster:      c.Poster,
	}
}

// Scalars returns the payload of the scalar fields of m. Genres and cast are
// left out.
func (m *Movie) Scalars() *MovieCreation {
	return &MovieCreation{
		Title:       m.Title,
		Summary:     m.Summary,
		Trailer:     m.Trailer,
		InTheaters:  m.InTheaters,
		ReleaseDate: m.ReleaseDate,
		Poster:      m.Poster,
	}
}

// MovieDetails is a movie with its relations and rating summary.
type MovieDetails struct {
	Movie       *Movie  `json:"movie"`
	AverageRate float64 `json:"averageRate"`
	UserRate    int     `json:"userRate"`
}

// LandingPage lists the movies shown on the front page.
type LandingPage struct {
	InTheaters       []*Movie `json:"inTheaters"`
	UpcomingReleases []*Movie `json:"upcomingReleases"`
}

// RatingCreation is the payload of a caller rating a movie.
type RatingCreation struct {
	MovieID int `json:"movieId"`
	Rate    int `json:"rate"`
}

// # Filters

// Filter parameter names, shared by the HTTP layer and the SQL mapping.
const (
	ParamName             = "name"
	ParamTitle            = "title"
	ParamGenreID          = "genreId"
	ParamInTheaters       = "inTheaters"
	ParamUpcomingReleases = "upcomingReleases"
	ParamMovieID          = "movieId"
	ParamUserID           = "userId"
)

// GenreFilter matches genres by name fragment.
type GenreFilter struct {
	Name *string
}

func (f GenreFilter) Conditions() []repository.Condition {
	var conditions []repository.Condition
	if f.Name != nil && *f.Name != "" {
		conditions = append(conditions, repository.Condition{Param: ParamName, Value: *f.Name})
	}
	return conditions
}

// PersonFilter matches people by name fragment.
type PersonFilter struct {
	Name *string
}

func (f PersonFilter) Conditions() []repository.Condition {
	var conditions []repository.Condition
	if f.Name != nil && *f.Name != "" {
		conditions = append(conditions, repository.Condition{Param: ParamName, Value: *f.Name})
	}
	return conditions
}

// MovieFilter ANDs every field that is set.
type MovieFilter struct {
	Title            *string
	GenreID          *int
	InTheaters       *bool
	UpcomingReleases *bool
}

func (f MovieFilter) Conditions() []repository.Condition {
	var conditions []repository.Condition
	if f.Title != nil && *f.Title != "" {
		conditions = append(conditions, repository.Condition{Param: ParamTitle, Value: *f.Title})
	}
	if f.GenreID != nil {
		conditions = append(conditions, repository.Condition{Param: ParamGenreID, Value: *f.GenreID})
	}
	if f.InTheaters != nil {
		conditions = append(conditions, repository.Condition{Param: ParamInTheaters, Value: *f.InTheaters})
	}
	if f.UpcomingReleases != nil {
		conditions = append(conditions, repository.Condition{Param: ParamUpcomingReleases, Value: *f.UpcomingReleases})
	}
	return conditions
}

// RatingFilter matches ratings of one movie or one user.
type RatingFilter struct {
	MovieID *int
	UserID  *string
}

func (f RatingFilter) Conditions() []repository.Condition {
	var conditions []repository.Condition
	if f.MovieID != nil {
		conditions = append(conditions, repository.Condition{Param: ParamMovieID, Value: *f.MovieID})
	}
	if f.UserID != nil && *f.UserID != "" {
		conditions = append(conditions, repository.Condition{Param: ParamUserID, Value: *f.UserID})
	}
	return conditions
}
