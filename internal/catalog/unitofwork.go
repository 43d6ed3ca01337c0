// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// UnitOfWork exposes one repository per catalog entity, all sharing the
// session of a single business transaction.
type UnitOfWork struct {
	*persistence.UnitOfWork

	genres      *persistence.Repository[*Genre]
	people      *persistence.Repository[*Person]
	movies      *MovieRepository
	movieActors *persistence.Repository[*MovieActor]
	ratings     *RatingRepository
}

// NewUnitOfWork opens a unit of work over db.
func NewUnitOfWork(db persistence.DB, logger *slog.Logger, bounds pagination.Bounds) *UnitOfWork {
	core := persistence.NewUnitOfWork(db, logger)
	session := core.Session()

	genres := persistence.NewRepository(session, GenreModel, bounds)
	people := persistence.NewRepository(session, PersonModel, bounds)

	return &UnitOfWork{
		UnitOfWork:  core,
		genres:      genres,
		people:      people,
		movies:      NewMovieRepository(persistence.NewRepository(session, MovieModel, bounds), genres, people),
		movieActors: persistence.NewRepository(session, MovieActorModel, bounds),
		ratings:     NewRatingRepository(persistence.NewRepository(session, RatingModel, bounds)),
	}
}

// NewFactory returns a factory opening one unit of work per transaction.
func NewFactory(db persistence.DB, logger *slog.Logger, bounds pagination.Bounds) persistence.Factory[*UnitOfWork] {
	return func(context.Context) (*UnitOfWork, error) {
		return NewUnitOfWork(db, logger, bounds), nil
	}
}

func (u *UnitOfWork) Genres() *persistence.Repository[*Genre] {
	return u.genres
}

func (u *UnitOfWork) People() *persistence.Repository[*Person] {
	return u.people
}

func (u *UnitOfWork) Movies() *MovieRepository {
	return u.movies
}

func (u *UnitOfWork) MovieActors() *persistence.Repository[*MovieActor] {
	return u.movieActors
}

func (u *UnitOfWork) Ratings() *RatingRepository {
	return u.ratings
}
