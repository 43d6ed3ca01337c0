// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec signs and verifies the RS256 bearer tokens that gate catalog
// writes and ratings, and tracks revoked token ids in Redis.
//
// The HTTP layer sees it through [RevocationAwareVerifier], which satisfies
// middleware.TokenVerifier.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// clockSkew tolerates small clock differences between issuer and verifier.
const clockSkew = 30 * time.Second

// AuthClaims is the token payload. The caller is rebuilt from it without a
// database lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// ErrSigningDisabled is returned by [TokenService.GenerateAccessToken] on a
// verify-only service.
var ErrSigningDisabled = errors.New("auth: token signing is disabled")

// TokenService issues and checks tokens for one issuer. Without a private
// key it only verifies.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	parser     *jwt.Parser
}

// NewTokenService loads PEM keys from disk. An empty privateKeyPath yields a
// verify-only service.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	var privateKey *rsa.PrivateKey
	if privateKeyPath != "" {
		pem, err := os.ReadFile(privateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("auth: failed to read private key from %s: %w", privateKeyPath, err)
		}
		if privateKey, err = jwt.ParseRSAPrivateKeyFromPEM(pem); err != nil {
			return nil, fmt.Errorf("auth: failed to parse private key: %w", err)
		}
	}

	pem, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}

	return NewTokenServiceFromKeys(privateKey, publicKey, issuer), nil
}

// NewTokenServiceFromKeys builds a service from parsed keys. privateKey may
// be nil.
func NewTokenServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// CanSign reports whether the service holds a private key.
func (service *TokenService) CanSign() bool {
	return service.privateKey != nil
}

// GenerateAccessToken signs a token for userID valid for timeToLive. Every
// token carries a UUIDv7 id so it can be revoked.
func (service *TokenService) GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error) {
	if !service.CanSign() {
		return "", ErrSigningDisabled
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("auth: failed to generate token id: %w", err)
	}

	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature, issuer and expiry of tokenString. It
// does not consult the revocation list.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := service.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return service.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}
	return claims, nil
}
