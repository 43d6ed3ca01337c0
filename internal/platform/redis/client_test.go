// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/reelbase/internal/platform/redis"
)

/*
TestParseOptions verifies the URL and the client defaults are combined.
*/
func TestParseOptions(t *testing.T) {
	options, err := redisstore.ParseOptions("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 10, options.PoolSize)

	_, err = redisstore.ParseOptions("http://cache.internal")
	assert.ErrorContains(t, err, "redis: invalid URL")
}

/*
TestNewClient verifies the client connects and the ping tracks server health.
*/
func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, redisstore.Ping(context.Background(), client))

	server.Close()
	assert.ErrorContains(t, redisstore.Ping(context.Background(), client), "redis: ping failed")
}
