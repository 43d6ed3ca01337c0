// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persistence implements the local entity-access layer over PostgreSQL.

A [Session] tracks entities loaded or added during one business transaction.
Nothing reaches the database until [Session.Persist] runs, which flushes every
pending change inside a single pgx transaction:

 1. Pending deletes of soft-deletable entities are rewritten into flag updates.
 2. Audit columns are stamped with the caller from the context.
 3. Physical deletes, then updates, then inserts are executed in tracking order.
 4. On commit, generated keys are assigned and all entries become unchanged.

A Session is not safe for concurrent use.
*/
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
)

// # Errors

var (
	// ErrSessionClosed is returned by every operation after Close.
	ErrSessionClosed = errors.New("persistence: session is closed")

	// ErrStaleEntity is returned when a tracked row no longer exists at commit.
	ErrStaleEntity = errors.New("persistence: tracked row no longer exists")
)

// # Database Handles

// Querier is the subset of pgx shared by pools, connections and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a [Querier] that can open transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// # Entry States

// EntryState is the change-tracking state of an entity within a [Session].
type EntryState int

const (
	Detached EntryState = iota
	Unchanged
	Added
	Modified
	Deleted
)

func (s EntryState) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "detached"
	}
}

type entry struct {
	entity  any
	mapping Mapping
	state   EntryState
}

// Entry is a read-only snapshot of one tracked entity.
type Entry struct {
	Entity any
	Table  string
	State  EntryState
}

// # Session

// Session is the change tracker shared by every repository of one unit of work.
type Session struct {
	db     DB
	logger *slog.Logger
	now    func() time.Time

	entries    []*entry
	byEntity   map[any]*entry
	identities map[string]*entry
	closed     bool
}

// NewSession creates an empty session over db.
func NewSession(db DB, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		db:         db,
		logger:     logger,
		now:        time.Now,
		byEntity:   make(map[any]*entry),
		identities: make(map[string]*entry),
	}
}

// SetClock replaces the time source used for audit stamping.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// DB returns the handle used for reads outside the commit transaction.
func (s *Session) DB() Querier {
	return s.db
}

// Add tracks entity as a pending insert. Adding an entity that is pending
// deletion cancels the deletion instead.
func (s *Session) Add(mapping Mapping, entity any) error {
	if s.closed {
		return ErrSessionClosed
	}

	if existing, ok := s.byEntity[entity]; ok {
		if existing.state == Deleted {
			existing.state = Modified
		}
		return nil
	}

	s.track(&entry{entity: entity, mapping: mapping, state: Added})
	return nil
}

// Attach tracks an entity loaded from the database as unchanged. When an
// entity with the same key is already tracked, that instance is returned and
// the loaded copy is discarded.
func (s *Session) Attach(mapping Mapping, entity any) any {
	if s.closed {
		return entity
	}

	if key, ok := mapping.identity(entity); ok {
		if existing, found := s.identities[key]; found {
			return existing.entity
		}
	}

	s.track(&entry{entity: entity, mapping: mapping, state: Unchanged})
	return entity
}

// Lookup reports whether an entity with the given key values is tracked. The
// returned entity is nil when it is pending deletion or soft-deleted, which
// hides it from the session even though the row still exists.
func (s *Session) Lookup(mapping Mapping, keys ...any) (any, bool) {
	existing, found := s.identities[identityKey(mapping.table(), keys...)]
	if !found {
		return nil, false
	}
	if existing.state == Deleted {
		return nil, true
	}
	if deletable, ok := existing.entity.(SoftDeletable); ok && deletable.Deleted() {
		return nil, true
	}
	return existing.entity, true
}

// MarkModified flags a tracked unchanged entity for update.
func (s *Session) MarkModified(entity any) {
	if existing, ok := s.byEntity[entity]; ok && existing.state == Unchanged {
		existing.state = Modified
	}
}

// Remove flags entity for deletion. Removing a pending insert simply forgets it.
func (s *Session) Remove(entity any) {
	existing, ok := s.byEntity[entity]
	if !ok {
		return
	}

	if existing.state == Added {
		s.forget(existing)
		return
	}
	existing.state = Deleted
}

// State reports the tracking state of entity.
func (s *Session) State(entity any) EntryState {
	if existing, ok := s.byEntity[entity]; ok {
		return existing.state
	}
	return Detached
}

// Entries returns a snapshot of every tracked entity in tracking order.
func (s *Session) Entries() []Entry {
	snapshot := make([]Entry, len(s.entries))
	for index, tracked := range s.entries {
		snapshot[index] = Entry{Entity: tracked.entity, Table: tracked.mapping.table(), State: tracked.state}
	}
	return snapshot
}

// HasChanges reports whether any entry is pending.
func (s *Session) HasChanges() bool {
	for _, tracked := range s.entries {
		if tracked.state == Added || tracked.state == Modified || tracked.state == Deleted {
			return true
		}
	}
	return false
}

// # Commit

// Persist flushes every pending change in one transaction and returns the
// number of affected rows. On failure nothing is written and the entries stay
// pending so the caller may retry or discard them.
func (s *Session) Persist(ctx context.Context) (int64, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	if !s.HasChanges() {
		return 0, nil
	}

	deletes, updates, inserts := s.plan(ctx)

	transaction, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("persistence: begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = transaction.Rollback(ctx)
		}
	}()

	var affected int64

	for _, tracked := range deletes {
		rows, err := tracked.mapping.remove(ctx, transaction, tracked.entity)
		if err != nil {
			return 0, err
		}
		affected += rows
	}

	for _, tracked := range updates {
		rows, err := tracked.mapping.update(ctx, transaction, tracked.entity)
		if err != nil {
			return 0, err
		}
		affected += rows
	}

	for _, tracked := range inserts {
		if err := tracked.mapping.insert(ctx, transaction, tracked.entity); err != nil {
			return 0, err
		}
		affected++
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, fmt.Errorf("persistence: commit: %w", err)
	}
	committed = true

	s.accept(deletes, updates, inserts)

	s.logger.DebugContext(ctx, "session_persisted",
		slog.Int("deleted", len(deletes)),
		slog.Int("updated", len(updates)),
		slog.Int("inserted", len(inserts)),
		slog.Int64("affected", affected),
	)

	return affected, nil
}

// plan applies the soft-delete policy and audit stamping, then partitions the
// pending entries by statement kind.
func (s *Session) plan(ctx context.Context) (deletes, updates, inserts []*entry) {
	actor := ctxutil.Actor(ctx)
	at := s.now().UTC()

	for _, tracked := range s.entries {
		if tracked.state == Deleted && tracked.mapping.softDeletable() {
			if deletable, ok := tracked.entity.(SoftDeletable); ok {
				deletable.MarkDeleted()
				tracked.state = Modified
				s.logger.DebugContext(ctx, "soft_delete_rewritten", slog.String("table", tracked.mapping.table()))
			}
		}

		switch tracked.state {
		case Deleted:
			deletes = append(deletes, tracked)
		case Modified:
			if auditable, ok := tracked.entity.(Auditable); ok {
				auditable.Touch(actor, at, false)
			}
			updates = append(updates, tracked)
		case Added:
			if auditable, ok := tracked.entity.(Auditable); ok {
				auditable.Touch(actor, at, true)
			}
			inserts = append(inserts, tracked)
		}
	}

	return deletes, updates, inserts
}

// accept moves committed entries to their post-commit state. Physically
// deleted and soft-deleted entities stop being tracked.
func (s *Session) accept(deletes, updates, inserts []*entry) {
	for _, tracked := range deletes {
		s.forget(tracked)
	}

	for _, tracked := range updates {
		if deletable, ok := tracked.entity.(SoftDeletable); ok && deletable.Deleted() {
			s.forget(tracked)
			continue
		}
		tracked.state = Unchanged
	}

	for _, tracked := range inserts {
		tracked.state = Unchanged
		if key, ok := tracked.mapping.identity(tracked.entity); ok {
			s.identities[key] = tracked
		}
	}
}

// # Release

// Close discards every tracked entity. Uncommitted changes are lost.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.entries = nil
	s.byEntity = make(map[any]*entry)
	s.identities = make(map[string]*entry)
	s.closed = true
	return nil
}

// CloseContext releases the session unless ctx is already done, in which
// case the session is still released and ctx's error is returned.
func (s *Session) CloseContext(ctx context.Context) error {
	err := s.Close()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// Closed reports whether the session was released.
func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) track(tracked *entry) {
	s.entries = append(s.entries, tracked)
	s.byEntity[tracked.entity] = tracked

	if tracked.state == Added {
		return
	}
	if key, ok := tracked.mapping.identity(tracked.entity); ok {
		s.identities[key] = tracked
	}
}

func (s *Session) forget(tracked *entry) {
	delete(s.byEntity, tracked.entity)

	if key, ok := tracked.mapping.identity(tracked.entity); ok && s.identities[key] == tracked {
		delete(s.identities, key)
	}

	for index, candidate := range s.entries {
		if candidate == tracked {
			s.entries = append(s.entries[:index], s.entries[index+1:]...)
			break
		}
	}
}
