// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDashboard(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	switch strings.ToLower(c.Database.Driver) {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DB_DRIVER=duckdb")
		}
	case "postgres", "postgresql":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be duckdb or postgres, got %q", c.Database.Driver)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must not be negative")
	}
	if c.Database.BreakerMaxFailures == 0 {
		return fmt.Errorf("DB_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.LoadOnStartup && c.Data.CSVPath == "" {
		return fmt.Errorf("DATA_CSV_PATH is required when LOAD_ON_STARTUP=true")
	}
	if c.Data.BatchSize < 1 {
		return fmt.Errorf("LOAD_BATCH_SIZE must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDashboard() error {
	if c.Dashboard.CacheTTL < 0 || c.Dashboard.OptionsCacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL and OPTIONS_CACHE_TTL must not be negative")
	}
	if c.Dashboard.RegionTopN < 1 {
		return fmt.Errorf("REGION_TOP_N must be at least 1")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validLogFormats = []string{"json", "console"}
)

func (c *Config) validateLogging() error {
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("LOG_LEVEL must be one of %s", strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("LOG_FORMAT must be one of %s", strings.Join(validLogFormats, ", "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IsPostgres reports whether the PostgreSQL driver is selected.
func (d DatabaseConfig) IsPostgres() bool {
	driver := strings.ToLower(d.Driver)
	return driver == "postgres" || driver == "postgresql"
}
