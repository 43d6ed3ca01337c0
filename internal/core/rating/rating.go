// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package rating records the scores members give movies.
package rating

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/crud"
	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/middleware"
	requestutil "github.com/taibuivan/reelbase/internal/platform/request"
	"github.com/taibuivan/reelbase/internal/platform/respond"
	"github.com/taibuivan/reelbase/internal/platform/validate"
)

const (
	FieldMovieID = "movieId"
	FieldRate    = "rate"

	resourceName = "Rating"
)

// # Service

type Service struct {
	factory persistence.Factory[*catalog.UnitOfWork]
	logger  *slog.Logger
}

func NewService(factory persistence.Factory[*catalog.UnitOfWork], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{factory: factory, logger: logger}
}

// Rate stores userID's rate for a movie. A second rate replaces the first.
func (service *Service) Rate(ctx context.Context, userID string, input *catalog.RatingCreation) (*catalog.Rating, error) {
	validator := &validate.Validator{}
	validator.ID(FieldMovieID, input.MovieID)
	validator.Range(FieldRate, input.Rate, catalog.MinRate, catalog.MaxRate)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	rating, err := crud.Within(ctx, service.factory, resourceName, "rate", func(ctx context.Context, uow *catalog.UnitOfWork) (*catalog.Rating, error) {
		movie, err := uow.Movies().GetByID(ctx, input.MovieID)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, apperr.NotFound("Movie")
		}

		rating, err := uow.Ratings().Upsert(ctx, input.MovieID, userID, input.Rate)
		if err != nil {
			return nil, err
		}
		_, err = uow.PersistToDatabase(ctx)
		return rating, err
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "movie_rated",
		slog.Int("movie_id", input.MovieID),
		slog.String("user_id", userID),
		slog.Int("rate", input.Rate),
	)
	return rating, nil
}

// # HTTP

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Members only
	router.With(middleware.RequireAuth).Post("/", handler.rate)

	return router
}

func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input catalog.RatingCreation
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.service.Rate(request.Context(), userID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rating)
}
