// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/logging"
)

// DB wraps the SQL connection pool and provides the dashboard's data access.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	dialect Dialect
	breaker *queryBreaker
}

// New opens the configured database and creates the clickstream schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dialect := DialectDuckDB
	if cfg.IsPostgres() {
		dialect = DialectPostgres
	}

	dsn, err := connectionString(cfg, dialect)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:    conn,
		cfg:     cfg,
		dialect: dialect,
		breaker: newQueryBreaker("database-"+string(dialect), cfg.BreakerMaxFailures, cfg.BreakerTimeout),
	}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	if err := db.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("driver", string(dialect)).Msg("Database ready")
	return db, nil
}

// connectionString builds the DSN for the dialect. DuckDB tuning options ride
// on the path as query parameters.
func connectionString(cfg *config.DatabaseConfig, dialect Dialect) (string, error) {
	if dialect == DialectPostgres {
		return cfg.DSN, nil
	}

	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return "", fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, maxMemory), nil
}

func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Dialect returns the active SQL dialect.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Conn returns the underlying pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Close closes the pool. DuckDB is checkpointed first so the WAL is flushed.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.dialect == DialectDuckDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// ensureContext applies the configured query timeout to contexts that have
// no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

// SessionCount returns the number of rows in shopper_data.
func (db *DB) SessionCount(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+Schema+".shopper_data").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
