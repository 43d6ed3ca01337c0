// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/crud"
	"github.com/taibuivan/reelbase/internal/platform/middleware"
	requestutil "github.com/taibuivan/reelbase/internal/platform/request"
	"github.com/taibuivan/reelbase/internal/platform/respond"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/pkg/convert"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

type Handler struct {
	service      *Service
	generic      *crud.Handler[*catalog.Movie]
	landingLimit int
}

func NewHandler(service *Service, bounds pagination.Bounds) *Handler {
	return &Handler{
		service:      service,
		generic:      crud.NewHandler(service.Service, bounds, sec.RoleCurator),
		landingLimit: DefaultLandingLimit,
	}
}

// WithLandingLimit sets the section size used when /landing names no limit.
func (handler *Handler) WithLandingLimit(limit int) *Handler {
	if limit > 0 {
		handler.landingLimit = limit
	}
	return handler
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.generic.List)
	router.Get("/all", handler.generic.All)
	router.Get("/filter", handler.generic.Filter)
	router.Get("/landing", handler.landing)
	router.Get("/{id}", handler.getMovie)
	router.Get("/{id}/details", handler.getDetails)

	// Curators
	router.Group(func(curatorRoute chi.Router) {
		curatorRoute.Use(middleware.RequireRole(handler.generic.Writer()))

		curatorRoute.Post("/", handler.createMovie)
		curatorRoute.Put("/{id}", handler.updateMovie)
		curatorRoute.Patch("/{id}", handler.generic.Update)
		curatorRoute.Delete("/{id}", handler.generic.Delete)
	})

	return router
}

func (handler *Handler) landing(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), handler.landingLimit)

	landing, err := handler.service.Landing(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, landing)
}

func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.GetWithRelations(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movie)
}

// getDetails includes the caller's own rate when the request is authenticated.
func (handler *Handler) getDetails(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var userID string
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	details, err := handler.service.Details(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input catalog.MovieCreation
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Create(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, movie)
}

func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input catalog.MovieCreation
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.UpdateGraph(request.Context(), id, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movie)
}
