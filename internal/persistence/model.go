// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// # Entity Capabilities

// Auditable entities receive the acting user and timestamp when persisted.
type Auditable interface {
	Touch(actor string, at time.Time, created bool)
}

// SoftDeletable entities are flagged instead of physically removed.
type SoftDeletable interface {
	MarkDeleted()
	Deleted() bool
}

// # Model

// Model is the explicit mapping between an entity type and its table.
//
// Fields, Values and KeyValues must list columns in the same order as Keys
// and Columns. Assign is the whitelisted field copy used by updates; it must
// never touch key or navigation fields.
type Model[T any] struct {
	// Table is the schema qualified table name.
	Table string

	// Keys are the primary key columns.
	Keys []string

	// GeneratedKey means the single key column is assigned by the database.
	GeneratedKey bool

	// Columns are the writable non-key columns.
	Columns []string

	// SoftDelete names the boolean flag column of soft-deletable tables.
	SoftDelete string

	// Filters maps a filter parameter to a predicate using ? placeholders.
	Filters map[string]string

	New       func() T
	Fields    func(entity T) []any
	Values    func(entity T) []any
	KeyValues func(entity T) []any
	SetKey    func(entity T, id int)
	Assign    func(dst, src T)

	// BeforeSave resolves foreign keys from navigation fields before writes.
	BeforeSave func(entity T)
}

// Mapping is the type-erased view of a [Model] used by the [Session].
type Mapping interface {
	table() string
	identity(entity any) (string, bool)
	softDeletable() bool
	insert(ctx context.Context, querier Querier, entity any) error
	update(ctx context.Context, querier Querier, entity any) (int64, error)
	remove(ctx context.Context, querier Querier, entity any) (int64, error)
}

// SelectColumns lists the key columns followed by the writable columns.
func (m *Model[T]) SelectColumns() []string {
	columns := make([]string, 0, len(m.Keys)+len(m.Columns))
	columns = append(columns, m.Keys...)
	return append(columns, m.Columns...)
}

func (m *Model[T]) table() string {
	return m.Table
}

func (m *Model[T]) softDeletable() bool {
	return m.SoftDelete != ""
}

func (m *Model[T]) identity(entity any) (string, bool) {
	values := m.KeyValues(entity.(T))
	if m.GeneratedKey {
		if id, ok := values[0].(int); !ok || id == 0 {
			return "", false
		}
	}
	return identityKey(m.Table, values...), true
}

func (m *Model[T]) prepare(entity T) {
	if m.BeforeSave != nil {
		m.BeforeSave(entity)
	}
}

func (m *Model[T]) insert(ctx context.Context, querier Querier, entity any) error {
	typed := entity.(T)
	m.prepare(typed)

	if m.GeneratedKey {
		statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			m.Table, strings.Join(m.Columns, ", "), placeholders(1, len(m.Columns)), m.Keys[0])

		var id int
		if err := querier.QueryRow(ctx, statement, m.Values(typed)...).Scan(&id); err != nil {
			return fmt.Errorf("persistence: insert into %s: %w", m.Table, err)
		}
		m.SetKey(typed, id)
		return nil
	}

	columns := m.SelectColumns()
	args := append(m.KeyValues(typed), m.Values(typed)...)
	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.Table, strings.Join(columns, ", "), placeholders(1, len(columns)))

	if _, err := querier.Exec(ctx, statement, args...); err != nil {
		return fmt.Errorf("persistence: insert into %s: %w", m.Table, err)
	}
	return nil
}

func (m *Model[T]) update(ctx context.Context, querier Querier, entity any) (int64, error) {
	if len(m.Columns) == 0 {
		return 0, nil
	}

	typed := entity.(T)
	m.prepare(typed)

	assignments := make([]string, len(m.Columns))
	for index, column := range m.Columns {
		assignments[index] = fmt.Sprintf("%s = $%d", column, index+1)
	}

	statement := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		m.Table, strings.Join(assignments, ", "), keyPredicate(m.Keys, len(m.Columns)+1))
	args := append(m.Values(typed), m.KeyValues(typed)...)

	tag, err := querier.Exec(ctx, statement, args...)
	if err != nil {
		return 0, fmt.Errorf("persistence: update %s: %w", m.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: %s %v", ErrStaleEntity, m.Table, m.KeyValues(typed))
	}
	return tag.RowsAffected(), nil
}

func (m *Model[T]) remove(ctx context.Context, querier Querier, entity any) (int64, error) {
	typed := entity.(T)

	statement := fmt.Sprintf("DELETE FROM %s WHERE %s", m.Table, keyPredicate(m.Keys, 1))

	tag, err := querier.Exec(ctx, statement, m.KeyValues(typed)...)
	if err != nil {
		return 0, fmt.Errorf("persistence: delete from %s: %w", m.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: %s %v", ErrStaleEntity, m.Table, m.KeyValues(typed))
	}
	return tag.RowsAffected(), nil
}

// # SQL Helpers

func identityKey(table string, values ...any) string {
	parts := make([]string, len(values))
	for index, value := range values {
		parts[index] = fmt.Sprint(value)
	}
	return table + ":" + strings.Join(parts, ",")
}

// placeholders renders "$start, $start+1, ..." for count parameters.
func placeholders(start, count int) string {
	parts := make([]string, count)
	for index := range parts {
		parts[index] = fmt.Sprintf("$%d", start+index)
	}
	return strings.Join(parts, ", ")
}

func keyPredicate(keys []string, start int) string {
	parts := make([]string, len(keys))
	for index, key := range keys {
		parts[index] = fmt.Sprintf("%s = $%d", key, start+index)
	}
	return strings.Join(parts, " AND ")
}

// bind rewrites ? placeholders into positional parameters starting at next
// and returns the clause with the next free position.
func bind(clause string, next int) (string, int) {
	var builder strings.Builder
	for _, char := range clause {
		if char == '?' {
			fmt.Fprintf(&builder, "$%d", next)
			next++
			continue
		}
		builder.WriteRune(char)
	}
	return builder.String(), next
}
