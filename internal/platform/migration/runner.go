// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the catalog schema migrations at startup.
//
// Migrations come from the binary (see package data) unless MIGRATION_PATH
// points at a directory on disk.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Source locates the migration files. Path wins when set; otherwise Dir is
// read from FS.
type Source struct {
	Path string
	FS   fs.FS
	Dir  string
}

// String describes the source for logs.
func (s Source) String() string {
	if s.Path != "" {
		return "file://" + s.Path
	}
	return "embedded:" + s.Dir
}

func (s Source) open(databaseURL string) (*migrate.Migrate, error) {
	switch {
	case s.Path != "":
		return migrate.New("file://"+s.Path, databaseURL)
	case s.FS != nil:
		driver, err := iofs.New(s.FS, s.Dir)
		if err != nil {
			return nil, err
		}
		return migrate.NewWithSourceInstance("iofs", driver, databaseURL)
	default:
		return nil, errors.New("no migration path or embedded files")
	}
}

// RunUp applies all pending up migrations. A dirty database is reported and
// left for an operator.
func RunUp(dsn string, source Source, logger *slog.Logger) error {
	migrator, err := source.open(PGX5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize from %s: %w", source, err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d", currentVersion)
	}

	logger.Info("migration_started",
		slog.String("source", source.String()),
		slog.Int("current_version", int(currentVersion)),
	)

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// PGX5DSN rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme
// golang-migrate expects. Other strings are returned unchanged.
func PGX5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger routes golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
