// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package config reads the API server settings from the environment with
// caarlos0/env. [Load] applies defaults, then rejects values the catalog
// cannot run with: inverted page bounds, a non-positive landing size or
// rate limit.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Config is read once at startup and never mutated.
type Config struct {
	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Pool sizing; zero keeps the postgres package defaults
	PostgresMaxConns int32 `env:"POSTGRES_MAX_CONNS" envDefault:"25"`
	PostgresMinConns int32 `env:"POSTGRES_MIN_CONNS" envDefault:"5"`

	// MigrationPath overrides the migrations embedded in the binary.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Store (Redis), used for token revocation
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Public key used to verify caller access tokens
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Optional private key; when set the server can mint tokens for operators
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Pagination bounds applied to every list endpoint
	DefaultRecordsPerPage int `env:"DEFAULT_RECORDS_PER_PAGE" envDefault:"10"`
	MaxRecordsPerPage     int `env:"MAX_RECORDS_PER_PAGE"     envDefault:"50"`

	// LandingPageSize is the number of movies per landing page section.
	LandingPageSize int `env:"LANDING_PAGE_SIZE" envDefault:"6"`

	// Per-IP token buckets; writes are metered apart from reads
	RateLimitRPS        float64 `env:"RATE_LIMIT_RPS"         envDefault:"100"`
	RateLimitBurst      int     `env:"RATE_LIMIT_BURST"       envDefault:"150"`
	WriteRateLimitRPS   float64 `env:"WRITE_RATE_LIMIT_RPS"   envDefault:"10"`
	WriteRateLimitBurst int     `env:"WRITE_RATE_LIMIT_BURST" envDefault:"20"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// Load parses the environment. Missing required variables and every invalid
// value are reported together.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var problems []error
	check := func(failed bool, format string, args ...any) {
		if failed {
			problems = append(problems, fmt.Errorf("config: "+format, args...))
		}
	}

	check(c.MaxRecordsPerPage < 1, "MAX_RECORDS_PER_PAGE must be positive, got %d", c.MaxRecordsPerPage)
	check(c.DefaultRecordsPerPage < 1 || c.DefaultRecordsPerPage > c.MaxRecordsPerPage,
		"DEFAULT_RECORDS_PER_PAGE must be within [1, %d], got %d", c.MaxRecordsPerPage, c.DefaultRecordsPerPage)
	check(c.LandingPageSize < 1 || c.LandingPageSize > constants.MaxLandingPageSize,
		"LANDING_PAGE_SIZE must be within [1, %d], got %d", constants.MaxLandingPageSize, c.LandingPageSize)
	check(c.RateLimitRPS <= 0 || c.RateLimitBurst < 1, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	check(c.WriteRateLimitRPS <= 0 || c.WriteRateLimitBurst < 1, "WRITE_RATE_LIMIT_RPS and WRITE_RATE_LIMIT_BURST must be positive")
	check(c.PostgresMinConns > c.PostgresMaxConns, "POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")

	return errors.Join(problems...)
}

// Bounds returns the page size policy of list endpoints.
func (c *Config) Bounds() pagination.Bounds {
	return pagination.Bounds{Default: c.DefaultRecordsPerPage, Max: c.MaxRecordsPerPage}
}

// IsDevelopment relaxes the CORS origin policy.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the comma separated EXTRA_ORIGINS as a list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
