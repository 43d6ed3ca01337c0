// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth manages the bearer tokens accepted by the catalog API.

Accounts live with the identity provider; this package only describes the
caller, revokes tokens on logout and mints operator tokens for tooling such
as reelctl.
*/
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/internal/platform/validate"
	"github.com/taibuivan/reelbase/pkg/uuidv7"
)

const (
	// DefaultTokenTTL applies when an issue request names no lifetime.
	DefaultTokenTTL = time.Hour

	// MaxTokenTTL caps operator token lifetimes.
	MaxTokenTTL = 30 * 24 * time.Hour
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// TokenRevoker blocks token IDs until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Service implements the token use cases.
type Service struct {
	issuer  TokenIssuer
	revoker TokenRevoker
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a [Service].
func NewService(issuer TokenIssuer, revoker TokenRevoker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{issuer: issuer, revoker: revoker, logger: logger, now: time.Now}
}

// IssueInput describes an operator token.
type IssueInput struct {
	Username string `json:"username"`
	Role     string `json:"role"`

	// TTLMinutes defaults to [DefaultTokenTTL] when zero.
	TTLMinutes int `json:"ttlMinutes"`
}

// IssuedToken is a freshly signed token.
type IssuedToken struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Issue mints a token for an operator account.
//
// # Returns
//   - [apperr.ValidationError] for an unknown role or an out of range lifetime.
//   - [apperr.ServiceUnavailable] when the server holds no private key.
func (service *Service) Issue(ctx context.Context, input IssueInput) (*IssuedToken, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("username", input.Username).MaxLen("username", input.Username, 60)
	validator.OneOf("role", input.Role, sec.Roles()...)
	validator.Custom("ttlMinutes", input.TTLMinutes < 0 || time.Duration(input.TTLMinutes)*time.Minute > MaxTokenTTL, "Must be between 0 and 43200")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ttl := DefaultTokenTTL
	if input.TTLMinutes > 0 {
		ttl = time.Duration(input.TTLMinutes) * time.Minute
	}

	// ── 2. Signing ────────────────────────────────────────────────────────

	userID := uuidv7.New()
	token, err := service.issuer.GenerateAccessToken(userID, input.Username, input.Role, ttl)
	if errors.Is(err, sec.ErrSigningDisabled) {
		return nil, apperr.ServiceUnavailable("Token signing is disabled on this server")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "token_issued",
		slog.String("user_id", userID),
		slog.String("username", input.Username),
		slog.String("role", input.Role),
	)

	return &IssuedToken{
		AccessToken: token,
		UserID:      userID,
		Role:        input.Role,
		ExpiresAt:   service.now().Add(ttl).UTC(),
	}, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (service *Service) Logout(ctx context.Context, claims *sec.AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return apperr.BadRequest("Token cannot be revoked")
	}

	if err := service.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "token_revoked", slog.String("user_id", claims.UserID))
	return nil
}
