// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelbase/internal/platform/middleware"
	requestutil "github.com/taibuivan/reelbase/internal/platform/request"
	"github.com/taibuivan/reelbase/internal/platform/respond"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Handler exposes a [Service] over HTTP.
type Handler[T repository.Entity] struct {
	service *Service[T]
	bounds  pagination.Bounds
	writer  sec.UserRole
}

// NewHandler creates a handler whose write routes require the writer role.
func NewHandler[T repository.Entity](service *Service[T], bounds pagination.Bounds, writer sec.UserRole) *Handler[T] {
	return &Handler[T]{service: service, bounds: bounds, writer: writer}
}

// Routes returns a router serving the resource, ready to be mounted.
func (handler *Handler[T]) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts the read routes publicly and the write routes behind
// the writer role.
func (handler *Handler[T]) RegisterRoutes(router chi.Router) {
	handler.RegisterReads(router)

	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(middleware.RequireRole(handler.writer))

		writeRoute.Post("/", handler.Create)
		writeRoute.Put("/{id}", handler.Update)
		writeRoute.Delete("/{id}", handler.Delete)
	})
}

// RegisterReads mounts the public read routes.
func (handler *Handler[T]) RegisterReads(router chi.Router) {
	router.Get("/", handler.List)
	router.Get("/all", handler.All)
	router.Get("/filter", handler.Filter)
	router.Get("/{id}", handler.Get)
}

// Bounds returns the page size policy.
func (handler *Handler[T]) Bounds() pagination.Bounds {
	return handler.bounds
}

// Writer returns the role required by write routes.
func (handler *Handler[T]) Writer() sec.UserRole {
	return handler.writer
}

func (handler *Handler[T]) List(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), pagination.FromRequest(request, handler.bounds))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Data, page.Metadata)
}

func (handler *Handler[T]) All(writer http.ResponseWriter, request *http.Request) {
	all, err := handler.service.All(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, all)
}

func (handler *Handler[T]) Filter(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Filter(request.Context(), request.URL.Query(), pagination.FromRequest(request, handler.bounds))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Data, page.Metadata)
}

func (handler *Handler[T]) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler[T]) Create(writer http.ResponseWriter, request *http.Request) {
	input := handler.service.resource.New()
	if err := requestutil.DecodeJSON(writer, request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler[T]) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := handler.service.resource.New()
	if err := requestutil.DecodeJSON(writer, request, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// Delete answers with the removed instance.
func (handler *Handler[T]) Delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, removed)
}
