// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelbase/internal/platform/middleware"
	requestutil "github.com/taibuivan/reelbase/internal/platform/request"
	"github.com/taibuivan/reelbase/internal/platform/respond"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

// Handler implements the token endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the token routes.
//
// # Endpoints
//   - GET  /me     : Describes the caller.
//   - POST /logout : Revokes the caller's token.
//   - POST /tokens : Mints an operator token (admin only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Get("/me", handler.me)
	router.With(middleware.RequireAuth).Post("/logout", handler.logout)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/tokens", handler.issue)

	return router
}

// Caller is the public view of the authenticated principal.
type Caller struct {
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	caller := Caller{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time.UTC()
		caller.ExpiresAt = &expiresAt
	}
	respond.OK(writer, caller)
}

// logout handles POST /api/v1/auth/logout.
//
// # Returns
//   - Writes HTTP 204 No Content once the token is revoked.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// issue handles POST /api/v1/auth/tokens.
//
// # Returns
//   - Writes HTTP 201 Created with the signed token.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 503 Service Unavailable on verify-only deployments.
func (handler *Handler) issue(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input IssueInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Signing ────────────────────────────────────────────────────────

	issued, err := handler.service.Issue(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, issued)
}
