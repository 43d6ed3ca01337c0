// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"
	"errors"
	"log/slog"
)

// UnitOfWork owns the single [Session] of one business transaction. Domain
// packages embed it and build one repository per entity type over Session().
type UnitOfWork struct {
	session *Session
}

// NewUnitOfWork opens a fresh session over db.
func NewUnitOfWork(db DB, logger *slog.Logger) *UnitOfWork {
	return &UnitOfWork{session: NewSession(db, logger)}
}

// Session returns the shared change tracker.
func (u *UnitOfWork) Session() *Session {
	return u.session
}

// PersistToDatabase is the only path by which tracked changes reach storage.
func (u *UnitOfWork) PersistToDatabase(ctx context.Context) (int64, error) {
	return u.session.Persist(ctx)
}

// Close releases the session synchronously, discarding uncommitted changes.
func (u *UnitOfWork) Close() error {
	return u.session.Close()
}

// CloseContext releases the session and reports ctx cancellation.
func (u *UnitOfWork) CloseContext(ctx context.Context) error {
	return u.session.CloseContext(ctx)
}

// # Scoped Lifecycle

// Releaser is implemented by every unit of work.
type Releaser interface {
	CloseContext(ctx context.Context) error
}

// Factory opens a unit of work for one business transaction.
type Factory[U Releaser] func(ctx context.Context) (U, error)

// Run opens a unit of work, passes it to fn and releases it on every exit
// path, including panics. The release error is joined with fn's error.
func Run[U Releaser](ctx context.Context, factory Factory[U], fn func(ctx context.Context, uow U) error) (err error) {
	uow, err := factory(ctx)
	if err != nil {
		return err
	}

	defer func() {
		releaseErr := uow.CloseContext(context.WithoutCancel(ctx))
		err = errors.Join(err, releaseErr)
	}()

	return fn(ctx, uow)
}
