// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Access binds a credential policy to each kind of operation.
type Access struct {
	Read  CredentialPolicy
	Write CredentialPolicy
}

// PublicReads is the access of catalog resources: reads are anonymous and
// writes carry the caller identity.
var PublicReads = Access{Read: Anonymous, Write: Authenticated}

// Repository is the HTTP mirror of [repository.Repository]. Lookups of
// absent ids fail with a 404 [RequestError]; see [IsNotFound].
type Repository[T repository.Entity] struct {
	connector *Connector
	resource  string
	access    Access
}

// NewRepository creates a mirror for resource.
func NewRepository[T repository.Entity](connector *Connector, resource string, access Access) *Repository[T] {
	return &Repository[T]{connector: connector, resource: resource, access: access}
}

// Connector returns the underlying connector.
func (r *Repository[T]) Connector() *Connector {
	return r.connector
}

// Resource returns the resource name the repository targets.
func (r *Repository[T]) Resource() string {
	return r.resource
}

// Add creates entity on the server and returns the stored representation.
func (r *Repository[T]) Add(ctx context.Context, entity T) (T, error) {
	if repository.IsNil(entity) {
		var zero T
		return zero, repository.ErrNilArgument
	}

	created, _, err := Invoke[T](ctx, r.connector, Call{
		Method: http.MethodPost, Resource: r.resource, Policy: r.access.Write, Body: entity,
	})
	return created, err
}

// GetAll returns every visible entity.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	all, _, err := Invoke[[]T](ctx, r.connector, Call{
		Method: http.MethodGet, Resource: r.resource, Suffix: "/all", Policy: r.access.Read,
	})
	return all, err
}

// GetByID returns the entity with the given id.
func (r *Repository[T]) GetByID(ctx context.Context, id int) (T, error) {
	found, _, err := Invoke[T](ctx, r.connector, Call{
		Method: http.MethodGet, Resource: r.resource, Suffix: idSuffix(id), Policy: r.access.Read,
	})
	return found, err
}

// GetPaginated returns one page and the metadata from the pagination header.
func (r *Repository[T]) GetPaginated(ctx context.Context, request *pagination.Request) (repository.Page[T], error) {
	if request == nil {
		return repository.Page[T]{}, repository.ErrNilArgument
	}
	return r.page(ctx, "?"+request.Values().Encode())
}

// Filter sends the filter conditions as query parameters. An empty filter is
// rejected before any request is made.
func (r *Repository[T]) Filter(ctx context.Context, filter repository.Filter, request *pagination.Request) (repository.Page[T], error) {
	if request == nil {
		return repository.Page[T]{}, repository.ErrNilArgument
	}

	conditions, err := repository.RequireConditions(filter)
	if err != nil {
		return repository.Page[T]{}, err
	}

	values := repository.Values(conditions)
	for key, list := range request.Values() {
		values[key] = list
	}

	return r.page(ctx, "/filter?"+values.Encode())
}

// Update replaces the writable fields of the entity with the given id.
func (r *Repository[T]) Update(ctx context.Context, id int, values T) (T, error) {
	if repository.IsNil(values) {
		var zero T
		return zero, repository.ErrNilArgument
	}

	updated, _, err := Invoke[T](ctx, r.connector, Call{
		Method: http.MethodPut, Resource: r.resource, Suffix: idSuffix(id), Policy: r.access.Write, Body: values,
	})
	return updated, err
}

// Delete removes the entity with the given id and returns it.
func (r *Repository[T]) Delete(ctx context.Context, id int) (T, error) {
	removed, _, err := Invoke[T](ctx, r.connector, Call{
		Method: http.MethodDelete, Resource: r.resource, Suffix: idSuffix(id), Policy: r.access.Write,
	})
	return removed, err
}

func (r *Repository[T]) page(ctx context.Context, suffix string) (repository.Page[T], error) {
	return Page[T](ctx, r.connector, Call{
		Method: http.MethodGet, Resource: r.resource, Suffix: suffix, Policy: r.access.Read,
	})
}

// Page invokes a paginated endpoint and correlates the data with the metadata
// header of the same response.
func Page[T any](ctx context.Context, connector *Connector, call Call) (repository.Page[T], error) {
	data, response, err := Invoke[[]T](ctx, connector, call)
	if err != nil {
		return repository.Page[T]{}, err
	}

	metadata, ok, err := pagination.ReadHeader(response.Header)
	if err != nil {
		return repository.Page[T]{}, err
	}
	if !ok {
		return repository.Page[T]{}, ErrMissingPagination
	}

	return repository.Page[T]{Data: data, Metadata: metadata}, nil
}

func idSuffix(id int) string {
	return "/" + strconv.Itoa(id)
}
