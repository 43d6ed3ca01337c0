// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the catalog HTTP server: the middleware chain, the
probes and one sub-router per resource under /api/v1.

Request flow:

  - RequestID, StructuredLogger and the request timeout wrap everything.
  - RateLimit draws reads and writes from separate buckets.
  - Authenticate attaches the caller when a bearer token is present; the
    resource routers decide which routes require one.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/reelbase/internal/platform/config"
	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/middleware"
)

// APIPrefix is the mount point of every resource router.
const APIPrefix = "/api/v1"

// Router is implemented by every resource handler.
type Router interface {
	Routes() chi.Router
}

// Handlers lists what the server mounts. Nil resources are not mounted.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth    Router
	Genres  Router
	People  Router
	Movies  Router
	Ratings Router
}

func (h Handlers) resources() []struct {
	path   string
	router Router
} {
	return []struct {
		path   string
		router Router
	}{
		{"/auth", h.Auth},
		{"/genres", h.Genres},
		{"/people", h.People},
		{"/movies", h.Movies},
		{"/ratings", h.Ratings},
	}
}

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// NewServer builds the router. ctx bounds the rate limiter's sweeper.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(ctx, middleware.RateLimitPolicy{
			ReadRPS:    cfg.RateLimitRPS,
			ReadBurst:  cfg.RateLimitBurst,
			WriteRPS:   cfg.WriteRateLimitRPS,
			WriteBurst: cfg.WriteRateLimitBurst,
		}),
		middleware.PanicRecovery(log),
		middleware.Authenticate(verifier),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	if h.Liveness != nil {
		router.Get(constants.PathLiveness, h.Liveness)
	}
	if h.Readiness != nil {
		router.Get(constants.PathReadiness, h.Readiness)
	}

	router.Route(APIPrefix, func(api chi.Router) {
		for _, resource := range h.resources() {
			if resource.router != nil {
				api.Mount(resource.path, resource.router.Routes())
			}
		}
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router to tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
