// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package config loads service configuration in layers: built-in defaults,
// an optional YAML file, then environment variables.
//
// Environment variables (a .env file is honoured by the binaries):
//
//	DB_DRIVER            duckdb | postgres (default duckdb)
//	DUCKDB_PATH          DuckDB file, ":memory:" for an ephemeral store
//	DUCKDB_MAX_MEMORY    DuckDB memory_limit (default 1GB)
//	DATABASE_URL         PostgreSQL DSN, required when DB_DRIVER=postgres
//	DB_QUERY_TIMEOUT     per-query timeout (default 30s)
//	DATA_CSV_PATH        raw online_shoppers_intention.csv
//	LOAD_ON_STARTUP      load the CSV when shopper_data is empty
//	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
//	CORS_ORIGINS         comma-separated
//	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	CACHE_TTL, OPTIONS_CACHE_TTL
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Data      DataConfig      `koanf:"data"`
	Server    ServerConfig    `koanf:"server"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig selects and tunes the backing SQL store.
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"`     // duckdb or postgres
	Path         string        `koanf:"path"`       // DuckDB file path
	MaxMemory    string        `koanf:"max_memory"` // DuckDB memory_limit
	Threads      int           `koanf:"threads"`    // DuckDB threads, 0 = runtime.NumCPU()
	DSN          string        `koanf:"dsn"`        // PostgreSQL connection string
	MaxOpenConns int           `koanf:"max_open_conns"`
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// Circuit breaker around query execution.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// DataConfig points at the raw dataset used to populate shopper_data.
type DataConfig struct {
	CSVPath       string `koanf:"csv_path"`
	LoadOnStartup bool   `koanf:"load_on_startup"`
	BatchSize     int    `koanf:"batch_size"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DashboardConfig tunes response caching and chart shaping. Filter options
// are cached for five minutes by default.
type DashboardConfig struct {
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	OptionsCacheTTL time.Duration `koanf:"options_cache_ttl"`
	RegionTopN      int           `koanf:"region_top_n"`
}

type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
