// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/respond"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

// # Authentication

// TokenVerifier turns a bearer token into caller claims.
//
// Implemented by [sec.RevocationAwareVerifier].
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds anonymously. Catalog reads are public.
//  2. A header that is not 'Bearer <token>' is rejected with 401.
//  3. The token is verified, including the revocation lookup.
//  4. The claims are stored in the context, where [ctxutil.Actor] reads
//     them to stamp audit columns on commit.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, present, ok := bearerToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			ctx := request.Context()
			claims, err := verifier.VerifyToken(ctx, token)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "token_rejected", slog.String("reason", err.Error()))

				message := "Invalid or expired token"
				if errors.Is(err, sec.ErrTokenRevoked) {
					message = "Token has been revoked"
				}
				respond.Error(writer, request, apperr.Unauthorized(message))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(ctx, claims)))
		})
	}
}

// bearerToken reports whether an Authorization header is present and whether
// it carries a well formed bearer token.
func bearerToken(request *http.Request) (token string, present, ok bool) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", false, false
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", true, false
	}
	return token, true, true
}

// # Authorization

// RequireAuth blocks anonymous callers. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks callers whose role ranks below role. It implies
// [RequireAuth]; catalog writes mount it with [sec.RoleCurator].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser returns the caller claims, or nil for anonymous requests.
func GetUser(ctx context.Context) *sec.AuthClaims {
	return ctxutil.GetAuthUser(ctx)
}
