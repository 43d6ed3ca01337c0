// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the Reelbase domain: movies, people, genres and ratings.

It binds the generic entity-access layer to concrete types. Server code reaches
the database through [UnitOfWork]; client code reaches the HTTP API through
[Client]. Both expose the same repository contract per entity type.
*/
package catalog

import (
	"time"

	"github.com/taibuivan/reelbase/internal/repository"
)

// # Base Entity

// Base carries the identity and audit metadata shared by every root entity.
type Base struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
	IsDeleted bool      `json:"-"`
}

func (b *Base) GetID() int {
	return b.ID
}

func (b *Base) SetID(id int) {
	b.ID = id
}

// Touch stamps the audit columns. The creation pair is only written once.
func (b *Base) Touch(actor string, at time.Time, created bool) {
	if created {
		b.CreatedAt = at
		b.CreatedBy = actor
	}
	b.UpdatedAt = at
	b.UpdatedBy = actor
}

func (b *Base) MarkDeleted() {
	b.IsDeleted = true
}

func (b *Base) Deleted() bool {
	return b.IsDeleted
}

// # Root Entities

// Genre classifies movies.
type Genre struct {
	Base
	Name string `json:"name"`
}

// Person is anyone credited in a cast.
type Person struct {
	Base
	Name        string     `json:"name"`
	Biography   string     `json:"biography,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Picture     string     `json:"picture,omitempty"`
}

// Movie is the aggregate root of the catalog.
//
// Genres and Actors are only populated by the aggregate operations of
// [MovieRepository]; the generic repository never loads or writes them.
type Movie struct {
	Base
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary,omitempty"`
	Trailer     string    `json:"trailer,omitempty"`
	InTheaters  bool      `json:"inTheaters"`
	ReleaseDate time.Time `json:"releaseDate"`
	Poster      string    `json:"poster,omitempty"`

	Genres []*Genre      `json:"genres,omitempty"`
	Actors []*MovieActor `json:"actors,omitempty"`

	genreLinks      []*MovieGenre
	hiddenActors    []*MovieActor
	relationsLoaded bool
}

// GenreIDs lists the ids of the attached genres in attachment order.
func (m *Movie) GenreIDs() []int {
	ids := make([]int, len(m.Genres))
	for index, genre := range m.Genres {
		ids[index] = genre.ID
	}
	return ids
}

// # Join Entities

// MovieActor credits a person in a movie. It is a soft-deletable entity of
// its own; DesignatedOrder is the 1-based cast position.
type MovieActor struct {
	Base
	MovieID         int     `json:"movieId"`
	PersonID        int     `json:"personId"`
	CharacterName   string  `json:"characterName"`
	DesignatedOrder int     `json:"designatedOrder"`
	Movie           *Movie  `json:"-"`
	Person          *Person `json:"person,omitempty"`
}

// MovieGenre is a plain membership row. It is removed physically.
type MovieGenre struct {
	MovieID int
	GenreID int
	Movie   *Movie
	Genre   *Genre
}

// resolve copies the keys of loaded navigation targets onto the row.
func (l *MovieGenre) resolve() {
	if l.Movie != nil {
		l.MovieID = l.Movie.ID
	}
	if l.Genre != nil {
		l.GenreID = l.Genre.ID
	}
}

func (a *MovieActor) resolve() {
	if a.Movie != nil {
		a.MovieID = a.Movie.ID
	}
	if a.Person != nil {
		a.PersonID = a.Person.ID
	}
}

// Rating is one user's score for a movie, from 1 to 5.
type Rating struct {
	Base
	MovieID int    `json:"movieId"`
	UserID  string `json:"userId"`
	Rate    int    `json:"rate"`
}

// Rate bounds.
const (
	MinRate = 1
	MaxRate = 5
)

// # Contract Assertions

var (
	_ repository.Entity = (*Genre)(nil)
	_ repository.Entity = (*Person)(nil)
	_ repository.Entity = (*Movie)(nil)
	_ repository.Entity = (*MovieActor)(nil)
	_ repository.Entity = (*Rating)(nil)
)
