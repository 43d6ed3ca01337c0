// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context]: the
// correlation id, the request logger and the caller's claims. The caller
// also names the actor written to the audit columns of every change.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyUser
)

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger falls back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyUser, user)
}

// GetAuthUser returns nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(keyUser).(*sec.AuthClaims)
	return claims
}

// Actor returns the name recorded in audit columns for changes made under ctx.
// Anonymous and background work is attributed to [constants.SystemActor].
func Actor(ctx context.Context) string {
	claims := GetAuthUser(ctx)
	switch {
	case claims == nil:
		return constants.SystemActor
	case claims.Username != "":
		return claims.Username
	case claims.UserID != "":
		return claims.UserID
	}
	return constants.SystemActor
}
