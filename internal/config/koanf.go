// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/clickstream/config.yaml",
	"/etc/clickstream/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:             "duckdb",
			Path:               "/data/clickstream.duckdb",
			MaxMemory:          "1GB",
			Threads:            0,
			DSN:                "",
			MaxOpenConns:       10,
			QueryTimeout:       30 * time.Second,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Data: DataConfig{
			CSVPath:       "data/online_shoppers_intention.csv",
			LoadOnStartup: true,
			BatchSize:     1000,
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			CacheTTL:        time.Minute,
			OptionsCacheTTL: 5 * time.Minute,
			RegionTopN:      15,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
// Values already loaded as lists from YAML are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Database
	"db_driver":            "database.driver",
	"duckdb_path":          "database.path",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"database_url":         "database.dsn",
	"db_max_open_conns":    "database.max_open_conns",
	"db_query_timeout":     "database.query_timeout",
	"db_breaker_failures":  "database.breaker_max_failures",
	"db_breaker_timeout":   "database.breaker_timeout",

	// Dataset
	"data_csv_path":   "data.csv_path",
	"load_on_startup": "data.load_on_startup",
	"load_batch_size": "data.batch_size",

	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Dashboard
	"cache_ttl":         "dashboard.cache_ttl",
	"options_cache_ttl": "dashboard.options_cache_ttl",
	"region_top_n":      "dashboard.region_top_n",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables to koanf paths.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
