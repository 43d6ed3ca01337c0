// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx connection pool behind every catalog
// session.
//
// Each connection starts with search_path set to the catalog schema and a
// statement timeout aligned with the request deadline, so a runaway query
// is cancelled server side.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/reelbase/internal/platform/constants"
)

const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// PoolOptions sizes the pool. Zero values fall back to [DefaultPoolOptions].
type PoolOptions struct {
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
	Schema           string
}

// DefaultPoolOptions returns the sizing used when the environment sets none.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:         25,
		MinConns:         5,
		StatementTimeout: constants.GlobalRequestTimeout,
		Schema:           constants.SchemaCatalog,
	}
}

func (o PoolOptions) withDefaults() PoolOptions {
	defaults := DefaultPoolOptions()
	if o.MaxConns <= 0 {
		o.MaxConns = defaults.MaxConns
	}
	if o.MinConns < 0 || o.MinConns > o.MaxConns {
		o.MinConns = min(defaults.MinConns, o.MaxConns)
	}
	if o.StatementTimeout <= 0 {
		o.StatementTimeout = defaults.StatementTimeout
	}
	if o.Schema == "" {
		o.Schema = defaults.Schema
	}
	return o
}

// ParseConfig builds the pool configuration for dsn without connecting.
func ParseConfig(dsn string, options PoolOptions) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	options = options.withDefaults()

	poolConfig.MaxConns = options.MaxConns
	poolConfig.MinConns = options.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	runtime := poolConfig.ConnConfig.RuntimeParams
	if _, set := runtime["application_name"]; !set {
		runtime["application_name"] = constants.AppName
	}
	runtime["search_path"] = options.Schema + ",public"
	runtime["statement_timeout"] = fmt.Sprintf("%d", options.StatementTimeout.Milliseconds())

	return poolConfig, nil
}

// NewPool connects to PostgreSQL and verifies the pool with a ping.
func NewPool(ctx context.Context, dsn string, options PoolOptions, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := ParseConfig(dsn, options)
	if err != nil {
		return nil, err
	}

	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		logger.DebugContext(ctx, "postgres_connection_opened", slog.Uint64("pid", uint64(connection.PgConn().PID())))
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres pool connected",
		slog.Int("max_conns", int(stats.MaxConns())),
		slog.Int("total_conns", int(stats.TotalConns())),
		slog.String("search_path", poolConfig.ConnConfig.RuntimeParams["search_path"]),
	)

	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool and by pgxmock pools.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the database within a short deadline. The readiness probe
// calls it on every request.
func Ping(ctx context.Context, pool Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
