// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package repository defines the entity-access contract shared by the local
persistence layer and the remote-invocation mirror.

Both implementations expose the same operation set so that a call site can be
pointed at the database directly or at the HTTP API without changing shape:

	var genres repository.Repository[*catalog.Genre]
	genres = uow.Genres()           // local, session backed
	genres = client.Genres()        // remote, over HTTP

Every operation materializes its result before returning. No implementation
hands back a query that the caller could extend.
*/
package repository

import (
	"context"
	"errors"

	"github.com/taibuivan/reelbase/pkg/pagination"
)

// # Sentinel Errors

var (
	// ErrNilArgument is returned when a required entity or request is nil.
	ErrNilArgument = errors.New("repository: required argument is nil")

	// ErrInvalidFilter is returned when a filter operation receives no criteria.
	ErrInvalidFilter = errors.New("repository: filter has no criteria")

	// ErrNotFound is returned by Delete when no entity exists for the id.
	ErrNotFound = errors.New("repository: entity not found")
)

// # Contract

// Entity is implemented by every root entity with an integer identity.
type Entity interface {
	GetID() int
	SetID(id int)
}

// Page is one materialized page plus the metadata of the unpaginated set.
type Page[T any] struct {
	Data     []T
	Metadata pagination.Metadata
}

// Repository is the generic CRUD contract over one entity type.
//
// Lookups by id return the zero value of T (a nil pointer) when the entity
// does not exist. Absence is not an error at this layer.
type Repository[T Entity] interface {
	// Add begins tracking entity as a pending insert.
	Add(ctx context.Context, entity T) (T, error)

	// GetAll returns every visible entity without relationships.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the entity with the given id, or nil.
	GetByID(ctx context.Context, id int) (T, error)

	// GetPaginated returns one page of the default scope ordered by key.
	GetPaginated(ctx context.Context, request *pagination.Request) (Page[T], error)

	// Filter returns one page of the entities matching every condition of filter.
	Filter(ctx context.Context, filter Filter, request *pagination.Request) (Page[T], error)

	// Update copies the writable scalar fields of values onto the entity with
	// the given id. The key is never overwritten. Returns nil if absent.
	Update(ctx context.Context, id int, values T) (T, error)

	// Delete marks the entity for removal and returns it, or [ErrNotFound].
	Delete(ctx context.Context, id int) (T, error)
}

// # Helpers

// IsNil reports whether entity is the nil value of its pointer type.
func IsNil[T Entity](entity T) bool {
	var zero T
	return any(entity) == any(zero)
}
