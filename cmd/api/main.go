// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api serves the Reelbase catalog over HTTP.
//
// # Startup Sequence
//
//  1. Initialize the JSON logger (debug level when DEBUG=true).
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run the embedded schema migrations (idempotent).
//  6. Load token keys and the revocation store.
//  7. Wire the unit of work factory and HTTP handlers.
//  8. Start the HTTP server.
//  9. Shut down gracefully on SIGTERM or SIGINT.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/reelbase/data"
	"github.com/taibuivan/reelbase/internal/api"
	"github.com/taibuivan/reelbase/internal/auth"
	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/genre"
	"github.com/taibuivan/reelbase/internal/core/movie"
	"github.com/taibuivan/reelbase/internal/core/person"
	"github.com/taibuivan/reelbase/internal/core/rating"
	"github.com/taibuivan/reelbase/internal/platform/config"
	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/migration"
	pgstore "github.com/taibuivan/reelbase/internal/platform/postgres"
	redisstore "github.com/taibuivan/reelbase/internal/platform/redis"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

// startupTimeout bounds connecting to the backing services.
const startupTimeout = 30 * time.Second

func main() {
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("startup failure", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
}

// run returns only after the server stopped. Every resource opened here is
// released by its deferred close, including on startup failures.
func run(log *slog.Logger) error {
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("max_records_per_page", cfg.MaxRecordsPerPage),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
		MaxConns: cfg.PostgresMaxConns,
		MinConns: cfg.PostgresMinConns,
	}, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────

	migrations := migration.Source{Path: cfg.MigrationPath, FS: data.Migrations, Dir: data.MigrationsDir}
	if err := migration.RunUp(cfg.DatabaseURL, migrations, log); err != nil {
		return err
	}

	// ── 6. Tokens ─────────────────────────────────────────────────────────

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}
	if !tokens.CanSign() {
		log.Info("token_signing_disabled")
	}

	revocations := sec.NewRevocationStore(rdb)
	verifier := sec.NewRevocationAwareVerifier(tokens, revocations)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────

	handlers := wireHandlers(cfg, log, pool, rdb, tokens, revocations)

	// ── 8. HTTP Server ────────────────────────────────────────────────────

	serveCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(serveCtx, cfg, log, verifier, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────

	select {
	case <-serveCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped cleanly")
	return nil
}

// wireHandlers builds one handler set per resource over a shared unit of
// work factory. Each request opens its own unit of work from it.
func wireHandlers(cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, tokens *sec.TokenService, revocations *sec.RevocationStore) api.Handlers {
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	bounds := cfg.Bounds()
	factory := catalog.NewFactory(pool, log, bounds)

	return api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(tokens, revocations, log)),
		Genres:    genre.NewHandler(factory, bounds, log),
		People:    person.NewHandler(factory, bounds, log),
		Movies:    movie.NewHandler(movie.NewService(factory, log), bounds).WithLandingLimit(cfg.LandingPageSize),
		Ratings:   rating.NewHandler(rating.NewService(factory, log)),
	}
}
