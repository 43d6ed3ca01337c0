// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package crud serves any catalog entity through the shared repository contract.

Every call opens one unit of work, runs the repository operation, persists
when the operation writes, and releases the unit of work on every exit path.
Domain packages describe their entity with a [Resource] and reuse [Service]
and [Handler] as they are, or embed them to add aggregate routes.
*/
package crud

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/dberr"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Resource describes one entity type to the generic service.
type Resource[T repository.Entity] struct {
	// Name is used in client messages, e.g. "Genre not found".
	Name string

	// New returns an empty payload to decode requests into.
	New func() T

	// Repository selects the repository of T from a unit of work.
	Repository func(uow *catalog.UnitOfWork) repository.Repository[T]

	// Filter builds the filter of a query string.
	Filter func(values url.Values) repository.Filter

	// Validate checks a create or update payload.
	Validate func(entity T) error
}

// Service runs repository operations of one resource inside units of work.
type Service[T repository.Entity] struct {
	factory  persistence.Factory[*catalog.UnitOfWork]
	resource Resource[T]
	logger   *slog.Logger
}

// NewService creates the service of resource.
func NewService[T repository.Entity](factory persistence.Factory[*catalog.UnitOfWork], resource Resource[T], logger *slog.Logger) *Service[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service[T]{factory: factory, resource: resource, logger: logger}
}

// Resource returns the resource description.
func (service *Service[T]) Resource() Resource[T] {
	return service.resource
}

// Factory returns the unit of work factory.
func (service *Service[T]) Factory() persistence.Factory[*catalog.UnitOfWork] {
	return service.factory
}

// # Reads

func (service *Service[T]) List(ctx context.Context, request pagination.Request) (repository.Page[T], error) {
	return Within(ctx, service.factory, service.resource.Name, "list", func(ctx context.Context, uow *catalog.UnitOfWork) (repository.Page[T], error) {
		return service.resource.Repository(uow).GetPaginated(ctx, &request)
	})
}

func (service *Service[T]) All(ctx context.Context) ([]T, error) {
	return Within(ctx, service.factory, service.resource.Name, "list all", func(ctx context.Context, uow *catalog.UnitOfWork) ([]T, error) {
		return service.resource.Repository(uow).GetAll(ctx)
	})
}

// Get returns the entity or a NOT_FOUND error.
func (service *Service[T]) Get(ctx context.Context, id int) (T, error) {
	return Within(ctx, service.factory, service.resource.Name, "get", func(ctx context.Context, uow *catalog.UnitOfWork) (T, error) {
		return found(service.resource.Repository(uow).GetByID(ctx, id))
	})
}

// Filter applies the query string filter. Without any criteria it fails with
// INVALID_FILTER rather than listing everything.
func (service *Service[T]) Filter(ctx context.Context, values url.Values, request pagination.Request) (repository.Page[T], error) {
	return Within(ctx, service.factory, service.resource.Name, "filter", func(ctx context.Context, uow *catalog.UnitOfWork) (repository.Page[T], error) {
		return service.resource.Repository(uow).Filter(ctx, service.resource.Filter(values), &request)
	})
}

// # Writes

func (service *Service[T]) Create(ctx context.Context, entity T) (T, error) {
	if err := service.validate(entity); err != nil {
		var zero T
		return zero, err
	}

	created, err := Within(ctx, service.factory, service.resource.Name, "create", func(ctx context.Context, uow *catalog.UnitOfWork) (T, error) {
		return persisted[T](ctx, uow)(service.resource.Repository(uow).Add(ctx, entity))
	})
	if err != nil {
		return created, err
	}

	service.logger.InfoContext(ctx, service.event("created"), slog.Int("id", created.GetID()))
	return created, nil
}

// Update copies the writable fields of values onto entity id.
func (service *Service[T]) Update(ctx context.Context, id int, values T) (T, error) {
	if err := service.validate(values); err != nil {
		var zero T
		return zero, err
	}

	updated, err := Within(ctx, service.factory, service.resource.Name, "update", func(ctx context.Context, uow *catalog.UnitOfWork) (T, error) {
		entity, err := found(service.resource.Repository(uow).Update(ctx, id, values))
		return persisted[T](ctx, uow)(entity, err)
	})
	if err != nil {
		return updated, err
	}

	service.logger.InfoContext(ctx, service.event("updated"), slog.Int("id", id))
	return updated, nil
}

// Delete removes entity id and returns the removed instance.
func (service *Service[T]) Delete(ctx context.Context, id int) (T, error) {
	removed, err := Within(ctx, service.factory, service.resource.Name, "delete", func(ctx context.Context, uow *catalog.UnitOfWork) (T, error) {
		return persisted[T](ctx, uow)(service.resource.Repository(uow).Delete(ctx, id))
	})
	if err != nil {
		return removed, err
	}

	service.logger.WarnContext(ctx, service.event("deleted"), slog.Int("id", id))
	return removed, nil
}

func (service *Service[T]) validate(entity T) error {
	if repository.IsNil(entity) {
		return apperr.BadRequest("Request body is required")
	}
	if service.resource.Validate == nil {
		return nil
	}
	return service.resource.Validate(entity)
}

func (service *Service[T]) event(action string) string {
	return strings.ToLower(service.resource.Name) + "_" + action
}

// # Unit of Work Helpers

// Within runs fn in a fresh unit of work and classifies its error for the
// HTTP layer.
func Within[R any](ctx context.Context, factory persistence.Factory[*catalog.UnitOfWork], resource, action string, fn func(ctx context.Context, uow *catalog.UnitOfWork) (R, error)) (R, error) {
	var result R
	err := persistence.Run(ctx, factory, func(ctx context.Context, uow *catalog.UnitOfWork) error {
		var err error
		result, err = fn(ctx, uow)
		return err
	})
	return result, Classify(resource, action, err)
}

// Classify maps entity-access errors onto [apperr.AppError].
func Classify(resource, action string, err error) error {
	switch {
	case err == nil:
		return nil
	case apperr.IsAppError(err):
		return err
	case errors.Is(err, repository.ErrInvalidFilter):
		return apperr.InvalidFilter("At least one filter criterion is required")
	case errors.Is(err, repository.ErrNilArgument):
		return apperr.BadRequest("Request body is required")
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, persistence.ErrStaleEntity):
		return apperr.Conflict(resource + " was changed by another request")
	}
	return dberr.Wrap(err, strings.ToLower(resource)+": "+action)
}

func found[T repository.Entity](entity T, err error) (T, error) {
	if err == nil && repository.IsNil(entity) {
		return entity, repository.ErrNotFound
	}
	return entity, err
}

func persisted[T any](ctx context.Context, uow *catalog.UnitOfWork) func(T, error) (T, error) {
	return func(entity T, err error) (T, error) {
		if err != nil {
			return entity, err
		}
		if _, err := uow.PersistToDatabase(ctx); err != nil {
			return entity, err
		}
		return entity, nil
	}
}
