// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/reelbase/internal/platform/constants"
)

// ErrTokenRevoked is returned when a structurally valid token has been revoked.
var ErrTokenRevoked = errors.New("auth: token has been revoked")

// # Revocation Store

// RevocationStore keeps revoked token IDs in Redis until the token would have
// expired anyway.
type RevocationStore struct {
	client redis.Cmdable
}

// NewRevocationStore creates a store backed by the given Redis client.
func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks tokenID as revoked until expiresAt. Tokens that already
// expired are ignored.
func (store *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("auth: cannot revoke a token without an id")
	}

	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}

	if err := store.client.Set(ctx, constants.RedisPrefixRevokedToken+tokenID, "1", remaining).Err(); err != nil {
		return fmt.Errorf("auth: failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (store *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := store.client.Exists(ctx, constants.RedisPrefixRevokedToken+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("auth: failed to check revocation: %w", err)
	}
	return count > 0, nil
}

// # Revocation-Aware Verification

// RevocationAwareVerifier verifies signatures with a [TokenService] and then
// rejects tokens present in the [RevocationStore].
type RevocationAwareVerifier struct {
	tokens  *TokenService
	revoked *RevocationStore
	timeout time.Duration
}

// NewRevocationAwareVerifier combines signature checks with revocation lookups.
func NewRevocationAwareVerifier(tokens *TokenService, revoked *RevocationStore) *RevocationAwareVerifier {
	return &RevocationAwareVerifier{tokens: tokens, revoked: revoked, timeout: 2 * time.Second}
}

// VerifyToken validates tokenString and fails with [ErrTokenRevoked] when the
// token ID has been revoked. Tokens without an ID cannot be revoked.
//
// The Redis lookup is bounded by ctx and by a short timeout of its own.
func (verifier *RevocationAwareVerifier) VerifyToken(ctx context.Context, tokenString string) (*AuthClaims, error) {
	claims, err := verifier.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.ID == "" {
		return claims, nil
	}

	ctx, cancel := context.WithTimeout(ctx, verifier.timeout)
	defer cancel()

	revoked, err := verifier.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}
