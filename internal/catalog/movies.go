// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"slices"

	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/database/schema"
	"github.com/taibuivan/reelbase/internal/repository"
)

// MovieRepository is the generic movie repository plus the aggregate
// operations that keep genres and cast in step with the movie.
//
// Create and UpdateGraph only build the in-memory graph; nothing is written
// until the owning unit of work persists.
type MovieRepository struct {
	*persistence.Repository[*Movie]
	genres  *persistence.Repository[*Genre]
	people  *persistence.Repository[*Person]
	session *persistence.Session
}

// NewMovieRepository wires the aggregate over repositories sharing one session.
func NewMovieRepository(movies *persistence.Repository[*Movie], genres *persistence.Repository[*Genre], people *persistence.Repository[*Person]) *MovieRepository {
	return &MovieRepository{
		Repository: movies,
		genres:     genres,
		people:     people,
		session:    movies.Session(),
	}
}

// # Aggregate Operations

// Create tracks a new movie with its genres and ordered cast. Unknown genre
// and person ids are skipped.
func (r *MovieRepository) Create(ctx context.Context, creation *MovieCreation) (*Movie, error) {
	if creation == nil {
		return nil, repository.ErrNilArgument
	}

	movie, err := r.Add(ctx, creation.Movie())
	if err != nil {
		return nil, err
	}
	movie.relationsLoaded = true

	if err := r.attach(ctx, movie, creation); err != nil {
		return nil, err
	}
	return movie, nil
}

// UpdateGraph copies the scalar fields, then replaces both relationship
// collections with the ones described by update. The cast order is derived
// from the new input only. Returns nil when the movie does not exist.
func (r *MovieRepository) UpdateGraph(ctx context.Context, id int, update *MovieCreation) (*Movie, error) {
	if update == nil {
		return nil, repository.ErrNilArgument
	}

	movie, err := r.Update(ctx, id, update.Movie())
	if err != nil || movie == nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, movie); err != nil {
		return nil, err
	}

	r.clear(movie)

	if err := r.attach(ctx, movie, update); err != nil {
		return nil, err
	}
	return movie, nil
}

// GetWithRelations returns the tracked movie with its genres and cast
// ordered by position. Returns nil when absent.
func (r *MovieRepository) GetWithRelations(ctx context.Context, id int) (*Movie, error) {
	movie, err := r.GetByID(ctx, id)
	if err != nil || movie == nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// Delete marks the movie and every relationship row for removal.
// Cast rows are soft-deleted with the movie; genre memberships are removed.
func (r *MovieRepository) Delete(ctx context.Context, id int) (*Movie, error) {
	movie, err := r.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}

	r.clear(movie)
	r.session.Remove(movie)
	return movie, nil
}

// Landing returns up to limit movies currently in theaters and up to limit
// movies releasing after today.
func (r *MovieRepository) Landing(ctx context.Context, limit int) (*LandingPage, error) {
	inTheaters, err := persistence.Find(ctx, r.session, MovieModel, persistence.Query{
		Where: []string{schema.CatalogMovie.InTheaters + " = ?"},
		Args:  []any{true},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	upcoming, err := persistence.Find(ctx, r.session, MovieModel, persistence.Query{
		Where: []string{schema.CatalogMovie.ReleaseDate + " > CURRENT_DATE"},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &LandingPage{InTheaters: inTheaters, UpcomingReleases: upcoming}, nil
}

// # Graph Helpers

// attach looks every related id up through the session and links the
// matches. Cast positions follow the input sequence, starting at 1.
func (r *MovieRepository) attach(ctx context.Context, movie *Movie, input *MovieCreation) error {
	for _, genreID := range input.GenreIDs {
		genre, err := r.genres.GetByID(ctx, genreID)
		if err != nil {
			return err
		}
		if genre == nil || slices.Contains(movie.Genres, genre) {
			continue
		}

		link := &MovieGenre{Movie: movie, Genre: genre}
		if err := r.session.Add(MovieGenreModel, link); err != nil {
			return err
		}
		movie.Genres = append(movie.Genres, genre)
		movie.genreLinks = append(movie.genreLinks, link)
	}

	for index, credit := range input.Actors {
		person, err := r.people.GetByID(ctx, credit.PersonID)
		if err != nil {
			return err
		}
		if person == nil {
			continue
		}

		actor := &MovieActor{
			Movie:           movie,
			Person:          person,
			MovieID:         movie.ID,
			PersonID:        person.ID,
			CharacterName:   credit.Character,
			DesignatedOrder: index + 1,
		}
		if err := r.session.Add(MovieActorModel, actor); err != nil {
			return err
		}
		movie.Actors = append(movie.Actors, actor)
	}

	movie.relationsLoaded = true
	return nil
}

// clear empties both collections, including rows whose genre or person is
// no longer visible. Membership rows are removed; cast rows are soft-deleted
// when the session persists.
func (r *MovieRepository) clear(movie *Movie) {
	for _, link := range movie.genreLinks {
		r.session.Remove(link)
	}
	for _, actor := range slices.Concat(movie.Actors, movie.hiddenActors) {
		r.session.Remove(actor)
	}

	movie.Genres = nil
	movie.genreLinks = nil
	movie.Actors = nil
	movie.hiddenActors = nil
}

// loadRelations populates the collections from storage once per session.
// Later calls keep the in-memory graph, which already holds pending edits.
func (r *MovieRepository) loadRelations(ctx context.Context, movie *Movie) error {
	if movie.relationsLoaded {
		return nil
	}

	links, err := persistence.Find(ctx, r.session, MovieGenreModel, persistence.Query{
		Where: []string{schema.CatalogMovieGenre.MovieID + " = ?"},
		Args:  []any{movie.ID},
		Track: true,
	})
	if err != nil {
		return err
	}

	genres, err := persistence.Find(ctx, r.session, GenreModel, persistence.Query{
		Where: []string{schema.CatalogGenre.ID + " IN (SELECT " + schema.CatalogMovieGenre.GenreID + " FROM " + schema.CatalogMovieGenre.Table + " WHERE " + schema.CatalogMovieGenre.MovieID + " = ?)"},
		Args:  []any{movie.ID},
		Track: true,
	})
	if err != nil {
		return err
	}

	actors, err := persistence.Find(ctx, r.session, MovieActorModel, persistence.Query{
		Where: []string{schema.CatalogMovieActor.MovieID + " = ?"},
		Args:  []any{movie.ID},
		Track: true,
	})
	if err != nil {
		return err
	}

	people, err := persistence.Find(ctx, r.session, PersonModel, persistence.Query{
		Where: []string{schema.CatalogPerson.ID + " IN (SELECT " + schema.CatalogMovieActor.PersonID + " FROM " + schema.CatalogMovieActor.Table + " WHERE " + schema.CatalogMovieActor.MovieID + " = ? AND " + schema.Audit.IsDeleted + " = false)"},
		Args:  []any{movie.ID},
		Track: true,
	})
	if err != nil {
		return err
	}

	genresByID := make(map[int]*Genre, len(genres))
	for _, genre := range genres {
		genresByID[genre.ID] = genre
	}
	peopleByID := make(map[int]*Person, len(people))
	for _, person := range people {
		peopleByID[person.ID] = person
	}

	// Rows pointing at a soft-deleted genre or person stay tracked but are
	// left out of the visible collections.
	movie.Genres = nil
	movie.genreLinks = nil
	for _, link := range links {
		link.Movie = movie
		movie.genreLinks = append(movie.genreLinks, link)

		if genre, ok := genresByID[link.GenreID]; ok {
			link.Genre = genre
			movie.Genres = append(movie.Genres, genre)
		}
	}

	movie.Actors = nil
	movie.hiddenActors = nil
	for _, actor := range actors {
		actor.Movie = movie

		person, ok := peopleByID[actor.PersonID]
		if !ok {
			movie.hiddenActors = append(movie.hiddenActors, actor)
			continue
		}
		actor.Person = person
		movie.Actors = append(movie.Actors, actor)
	}
	slices.SortStableFunc(movie.Actors, func(a, b *MovieActor) int {
		return a.DesignatedOrder - b.DesignatedOrder
	})

	movie.relationsLoaded = true
	return nil
}
