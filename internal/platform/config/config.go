// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first with 'joho/godotenv' when present; real environment variables win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (source, cache, store) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Source Drivers

const (
	// DriverREST reads the catalogue from a json-server style HTTP backend.
	DriverREST = "rest"

	// DriverPostgres reads the catalogue from PostgreSQL JSONB tables.
	DriverPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Ansiklopedi API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// SourceDriver selects where collections are loaded from ("rest" or "postgres").
	SourceDriver string `env:"SOURCE_DRIVER" envDefault:"rest"`

	// Upstream REST backend
	UpstreamURL     string        `env:"UPSTREAM_URL"     envDefault:"http://localhost:3000"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	// Relational Database (PostgreSQL), required by the postgres driver only.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the source cache.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// RefreshSchedule is a cron spec for reloading the snapshot. Empty disables it.
	RefreshSchedule string `env:"REFRESH_SCHEDULE"`

	// DefaultPageSize applies when a list request omits pageSize.
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"12"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.SourceDriver {
	case DriverREST:
		if strings.TrimSpace(c.UpstreamURL) == "" {
			return errors.New("config: UPSTREAM_URL is required for the rest driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown SOURCE_DRIVER %q", c.SourceDriver)
	}

	if c.DefaultPageSize < 1 {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}
