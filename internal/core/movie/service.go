// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package movie serves the movie aggregate: scalar fields, genres and cast.
package movie

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/crud"
	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/validate"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/convert"
	"github.com/taibuivan/reelbase/pkg/pointer"
)

const (
	FieldTitle       = "title"
	FieldReleaseDate = "releaseDate"
	FieldTrailer     = "trailer"
	FieldPoster      = "poster"
	FieldGenreIDs    = "genreIds"
	FieldActors      = "actors"

	MaxTitleLength     = 300
	MaxCharacterLength = 100

	// DefaultLandingLimit is the size of each front page list.
	DefaultLandingLimit = 6
	MaxLandingLimit     = constants.MaxLandingPageSize
)

// Resource describes the scalar side of movies to the generic catalog service.
var Resource = crud.Resource[*catalog.Movie]{
	Name: "Movie",
	New:  func() *catalog.Movie { return &catalog.Movie{} },
	Repository: func(uow *catalog.UnitOfWork) repository.Repository[*catalog.Movie] {
		return uow.Movies()
	},
	Filter:   ParseFilter,
	Validate: ValidateScalars,
}

// ParseFilter reads title, genreId, inTheaters and upcomingReleases.
// Malformed numbers and booleans are ignored.
func ParseFilter(values url.Values) repository.Filter {
	return catalog.MovieFilter{
		Title:            pointer.NonZero(values.Get(catalog.ParamTitle)),
		GenreID:          convert.PositiveInt(values.Get(catalog.ParamGenreID)),
		InTheaters:       convert.Bool(values.Get(catalog.ParamInTheaters)),
		UpcomingReleases: convert.Bool(values.Get(catalog.ParamUpcomingReleases)),
	}
}

// Validate checks a create or update payload.
func Validate(creation *catalog.MovieCreation) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, creation.Title).MaxLen(FieldTitle, creation.Title, MaxTitleLength)
	validator.RequiredTime(FieldReleaseDate, creation.ReleaseDate)
	validator.HTTPURL(FieldTrailer, creation.Trailer).HTTPURL(FieldPoster, creation.Poster)
	validator.IDs(FieldGenreIDs, creation.GenreIDs)

	for _, actor := range creation.Actors {
		validator.ID(FieldActors, actor.PersonID).MaxLen(FieldActors, actor.Character, MaxCharacterLength)
	}
	return validator.Err()
}

// ValidateScalars checks a scalar-only update.
func ValidateScalars(values *catalog.Movie) error {
	return Validate(values.Scalars())
}

// LandingLimit normalizes the size of each landing list.
func LandingLimit(limit int) int {
	if limit < 1 {
		return DefaultLandingLimit
	}
	return min(limit, MaxLandingLimit)
}

// # Service

// Service adds the aggregate operations to the generic movie service.
type Service struct {
	*crud.Service[*catalog.Movie]
	logger *slog.Logger
}

func NewService(factory persistence.Factory[*catalog.UnitOfWork], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Service: crud.NewService(factory, Resource, logger), logger: logger}
}

// Create stores a movie with its genres and ordered cast in one commit.
func (service *Service) Create(ctx context.Context, creation *catalog.MovieCreation) (*catalog.Movie, error) {
	if creation == nil {
		return nil, apperr.BadRequest("Request body is required")
	}
	if err := Validate(creation); err != nil {
		return nil, err
	}

	movie, err := crud.Within(ctx, service.Factory(), Resource.Name, "create", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.Movie, error) {
		movie, err := uow.Movies().Create(ctx, creation)
		if err != nil {
			return nil, err
		}
		_, err = uow.PersistToDatabase(ctx)
		return movie, err
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "movie_created",
		slog.Int("id", movie.ID),
		slog.Int("genres", len(movie.Genres)),
		slog.Int("actors", len(movie.Actors)),
	)
	return movie, nil
}

// UpdateGraph replaces the scalar fields and both relationship collections.
func (service *Service) UpdateGraph(ctx context.Context, id int, update *catalog.MovieCreation) (*catalog.Movie, error) {
	if update == nil {
		return nil, apperr.BadRequest("Request body is required")
	}
	if err := Validate(update); err != nil {
		return nil, err
	}

	movie, err := crud.Within(ctx, service.Factory(), Resource.Name, "update", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.Movie, error) {
		movie, err := uow.Movies().UpdateGraph(ctx, id, update)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, repository.ErrNotFound
		}
		_, err = uow.PersistToDatabase(ctx)
		return movie, err
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "movie_updated", slog.Int("id", id))
	return movie, nil
}

// GetWithRelations returns the movie with its genres and ordered cast.
func (service *Service) GetWithRelations(ctx context.Context, id int) (*catalog.Movie, error) {
	return crud.Within(ctx, service.Factory(), Resource.Name, "get", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.Movie, error) {
		movie, err := uow.Movies().GetWithRelations(ctx, id)
		if err == nil && movie == nil {
			return nil, repository.ErrNotFound
		}
		return movie, err
	})
}

// Details returns the movie with its average rate, plus the rate of userID
// when one is given.
func (service *Service) Details(ctx context.Context, id int, userID string) (*catalog.MovieDetails, error) {
	return crud.Within(ctx, service.Factory(), Resource.Name, "details", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.MovieDetails, error) {
		movie, err := uow.Movies().GetWithRelations(ctx, id)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, repository.ErrNotFound
		}

		average, err := uow.Ratings().Average(ctx, id)
		if err != nil {
			return nil, err
		}
		details := &catalog.MovieDetails{Movie: movie, AverageRate: average}

		if userID == "" {
			return details, nil
		}

		rating, err := uow.Ratings().FindByUser(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		if rating != nil {
			details.UserRate = rating.Rate
		}
		return details, nil
	})
}

// Landing returns the front page lists, limit movies each. A limit below 1
// falls back to the default; one above the maximum is clamped.
func (service *Service) Landing(ctx context.Context, limit int) (*catalog.LandingPage, error) {
	limit = LandingLimit(limit)

	return crud.Within(ctx, service.Factory(), Resource.Name, "landing", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.LandingPage, error) {
		return uow.Movies().Landing(ctx, limit)
	})
}
