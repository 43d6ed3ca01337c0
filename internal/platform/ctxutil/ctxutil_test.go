// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

/*
TestContext_Defaults verifies a bare context yields the fallbacks.
*/
func TestContext_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Equal(t, "system", ctxutil.Actor(ctx))
}

/*
TestContext_RoundTrip verifies each value is stored under its own key.
*/
func TestContext_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleCurator)}

	ctx := ctxutil.WithRequestID(context.Background(), "reelctl-7")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "reelctl-7", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	caller := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, caller)
	assert.Equal(t, "u-1", caller.UserID)
}

/*
TestContext_Actor verifies the audit actor prefers the username.
*/
func TestContext_Actor(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   string
	}{
		{"username", &sec.AuthClaims{UserID: "u-1", Username: "curator"}, "curator"},
		{"user_id", &sec.AuthClaims{UserID: "u-2"}, "u-2"},
		{"empty_claims", &sec.AuthClaims{}, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ctxutil.WithAuthUser(context.Background(), tt.claims)
			assert.Equal(t, tt.want, ctxutil.Actor(ctx))
		})
	}
}
