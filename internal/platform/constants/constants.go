// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the API server layers:
// HTTP timings, rate limit defaults, header names and key prefixes. Values an
// operator may change live in package config instead.
package constants

import "time"

// # Metadata

const (
	AppName    = "reelbase-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a request end to end. Postgres statements
	// share the same budget.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests may drain.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Reads per client IP.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Catalog writes and ratings per client IP.
	DefaultWriteRateLimitRPS   = 10.0
	DefaultWriteRateLimitBurst = 20

	// Idle buckets are dropped after RateLimitClientTTL, checked every
	// RateLimitCleanupInterval.
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Storage

const (
	// SchemaCatalog holds every catalog table.
	SchemaCatalog = "catalog"

	// MaxLandingPageSize caps each list of the landing page.
	MaxLandingPageSize = 24
)

// # Authentication

const (
	// AuthIssuer is the "iss" claim of every token.
	AuthIssuer = "reelbase.app"

	// SystemActor is recorded in audit columns when a change has no authenticated caller.
	SystemActor = "system"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRetryAfter    = "Retry-After"
	ContentTypeJSON     = "application/json; charset=utf-8"

	// AllowedOriginDomain and its subdomains pass the CORS check in production.
	AllowedOriginDomain = "reelbase.app"

	// MaxRequestIDLength caps client supplied correlation ids.
	MaxRequestIDLength = 128
)

// # Probe Paths

const (
	PathLiveness  = "/health"
	PathReadiness = "/ready"
)

// # Envelope Members

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Keys

const (
	// RedisPrefixRevokedToken is followed by the token's jti.
	RedisPrefixRevokedToken = "auth:revoked_token:"
)
