// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"

	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Repository is the session backed implementation of [repository.Repository].
type Repository[T repository.Entity] struct {
	session *Session
	model   *Model[T]
	bounds  pagination.Bounds
}

var _ repository.Repository[repository.Entity] = (*Repository[repository.Entity])(nil)

// NewRepository creates a repository for model over the shared session.
func NewRepository[T repository.Entity](session *Session, model *Model[T], bounds pagination.Bounds) *Repository[T] {
	return &Repository[T]{session: session, model: model, bounds: bounds}
}

// Session returns the shared session.
func (r *Repository[T]) Session() *Session {
	return r.session
}

// Model returns the mapping of the entity type.
func (r *Repository[T]) Model() *Model[T] {
	return r.model
}

// Add tracks entity as a pending insert. Relationship collections are ignored.
func (r *Repository[T]) Add(ctx context.Context, entity T) (T, error) {
	if repository.IsNil(entity) {
		var zero T
		return zero, repository.ErrNilArgument
	}

	if err := r.session.Add(r.model, entity); err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

// GetAll returns every visible entity, untracked.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return Find(ctx, r.session, r.model, Query{})
}

// GetByID returns the tracked instance when already loaded, otherwise loads
// and tracks it. Returns nil when absent or removed within this session.
func (r *Repository[T]) GetByID(ctx context.Context, id int) (T, error) {
	var zero T

	if tracked, ok := r.session.Lookup(r.model, id); ok {
		if tracked == nil {
			return zero, nil
		}
		return tracked.(T), nil
	}

	results, err := Find(ctx, r.session, r.model, Query{
		Where: []string{r.model.Keys[0] + " = ?"},
		Args:  []any{id},
		Track: true,
	})
	if err != nil || len(results) == 0 {
		return zero, err
	}
	return results[0], nil
}

// GetPaginated returns one untracked page of the default scope.
func (r *Repository[T]) GetPaginated(ctx context.Context, request *pagination.Request) (repository.Page[T], error) {
	if request == nil {
		return repository.Page[T]{}, repository.ErrNilArgument
	}
	return Paginate(ctx, r.session, r.model, Query{}, request.Normalize(r.bounds))
}

// Filter returns one untracked page of the entities matching every condition.
func (r *Repository[T]) Filter(ctx context.Context, filter repository.Filter, request *pagination.Request) (repository.Page[T], error) {
	if request == nil {
		return repository.Page[T]{}, repository.ErrNilArgument
	}

	conditions, err := repository.RequireConditions(filter)
	if err != nil {
		return repository.Page[T]{}, err
	}

	predicates, args, err := FilterPredicates(r.model, conditions)
	if err != nil {
		return repository.Page[T]{}, err
	}

	return Paginate(ctx, r.session, r.model, Query{Where: predicates, Args: args}, request.Normalize(r.bounds))
}

// Update copies the whitelisted fields of values onto the tracked entity.
// The key of the result always equals id.
func (r *Repository[T]) Update(ctx context.Context, id int, values T) (T, error) {
	var zero T
	if repository.IsNil(values) {
		return zero, repository.ErrNilArgument
	}

	entity, err := r.GetByID(ctx, id)
	if err != nil || repository.IsNil(entity) {
		return zero, err
	}

	r.model.Assign(entity, values)
	r.session.MarkModified(entity)
	return entity, nil
}

// Delete marks the entity for removal. Soft-deletable entities are flagged
// when the session persists.
func (r *Repository[T]) Delete(ctx context.Context, id int) (T, error) {
	var zero T

	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if repository.IsNil(entity) {
		return zero, repository.ErrNotFound
	}

	r.session.Remove(entity)
	return entity, nil
}

// Paginate counts the rows matching query, then materializes the requested
// page from the same query ordered by key.
func Paginate[T any](ctx context.Context, session *Session, model *Model[T], query Query, request pagination.Request) (repository.Page[T], error) {
	total, err := Count(ctx, session, model, query)
	if err != nil {
		return repository.Page[T]{}, err
	}

	metadata := pagination.NewMetadata(total, request)
	if request.Offset() >= total {
		return repository.Page[T]{Data: []T{}, Metadata: metadata}, nil
	}

	query.Limit = request.RecordsPerPage
	query.Offset = request.Offset()

	data, err := Find(ctx, session, model, query)
	if err != nil {
		return repository.Page[T]{}, err
	}

	return repository.Page[T]{Data: data, Metadata: metadata}, nil
}
