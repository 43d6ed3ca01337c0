// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/reelbase/internal/repository"
)

// Query describes one read against a [Model]. Predicates use ? placeholders
// and are ANDed with the default scope of the model.
type Query struct {
	Where  []string
	Args   []any
	Limit  int
	Offset int

	// Unscoped includes soft-deleted rows.
	Unscoped bool

	// Track attaches the results to the session, resolving duplicates to
	// the already tracked instances.
	Track bool
}

// Find materializes every row matching query, ordered by key ascending.
func Find[T any](ctx context.Context, session *Session, model *Model[T], query Query) ([]T, error) {
	if session.Closed() {
		return nil, ErrSessionClosed
	}

	where, args, next := whereClause(model, query)

	var builder strings.Builder
	fmt.Fprintf(&builder, "SELECT %s FROM %s", strings.Join(model.SelectColumns(), ", "), model.Table)
	builder.WriteString(where)
	fmt.Fprintf(&builder, " ORDER BY %s", strings.Join(model.Keys, ", "))

	if query.Limit > 0 {
		fmt.Fprintf(&builder, " LIMIT $%d OFFSET $%d", next, next+1)
		args = append(args, query.Limit, query.Offset)
	}

	rows, err := session.DB().Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("persistence: select from %s: %w", model.Table, err)
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		entity := model.New()
		if err := rows.Scan(model.Fields(entity)...); err != nil {
			return nil, fmt.Errorf("persistence: scan %s: %w", model.Table, err)
		}
		if query.Track {
			entity = session.Attach(model, entity).(T)
		}
		results = append(results, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("persistence: iterate %s: %w", model.Table, err)
	}

	return results, nil
}

// Count returns the number of rows matching query, ignoring Limit and Offset.
func Count[T any](ctx context.Context, session *Session, model *Model[T], query Query) (int, error) {
	if session.Closed() {
		return 0, ErrSessionClosed
	}

	where, args, _ := whereClause(model, query)
	statement := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", model.Table, where)

	var total int
	if err := session.DB().QueryRow(ctx, statement, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("persistence: count %s: %w", model.Table, err)
	}
	return total, nil
}

// FilterPredicates translates filter conditions into predicates using the
// clauses registered on model.
func FilterPredicates[T any](model *Model[T], conditions []repository.Condition) ([]string, []any, error) {
	predicates := make([]string, 0, len(conditions))
	args := make([]any, 0, len(conditions))

	for _, condition := range conditions {
		clause, ok := model.Filters[condition.Param]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s does not support %q", repository.ErrInvalidFilter, model.Table, condition.Param)
		}
		predicates = append(predicates, clause)
		args = append(args, condition.Value)
	}

	return predicates, args, nil
}

func whereClause[T any](model *Model[T], query Query) (string, []any, int) {
	predicates := make([]string, 0, len(query.Where)+1)
	if model.SoftDelete != "" && !query.Unscoped {
		predicates = append(predicates, model.SoftDelete+" = false")
	}

	next := 1
	for _, predicate := range query.Where {
		var bound string
		bound, next = bind(predicate, next)
		predicates = append(predicates, bound)
	}

	args := append([]any(nil), query.Args...)
	if len(predicates) == 0 {
		return "", args, next
	}
	return " WHERE " + strings.Join(predicates, " AND "), args, next
}
