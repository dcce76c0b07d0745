// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for integration tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultPostgresPort is the container port PostgreSQL listens on.
	DefaultPostgresPort = "5432"

	defaultPostgresUser     = "clickstream"
	defaultPostgresPassword = "clickstream"
	defaultPostgresDB       = "clickstream"
)

// PostgresContainer is a running PostgreSQL container.
type PostgresContainer struct {
	testcontainers.Container
	// DSN is a lib/pq connection string for the container's database.
	DSN string
}

// PostgresOption configures the PostgreSQL container.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	database     string
	startTimeout time.Duration
}

// WithPostgresImage sets a custom PostgreSQL image.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithDatabase sets the database name created at startup.
func WithDatabase(name string) PostgresOption {
	return func(c *postgresConfig) {
		c.database = name
	}
}

// WithStartTimeout sets how long to wait for PostgreSQL to accept connections.
func WithStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// NewPostgresContainer starts PostgreSQL and waits until it accepts
// connections.
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer pg.Terminate(ctx)
//
//	db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		database:     defaultPostgresDB,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultPostgresPort + "/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     defaultPostgresUser,
			"POSTGRES_PASSWORD": defaultPostgresPassword,
			"POSTGRES_DB":       cfg.database,
		},
		// The server logs this line twice: once for the init run, once for
		// the real start.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(DefaultPostgresPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultPostgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			defaultPostgresUser, defaultPostgresPassword, host, port.Port(), cfg.database),
	}, nil
}

// SetupPostgres starts a container for t, skipping when Docker is missing and
// terminating the container when t completes.
func SetupPostgres(t *testing.T, opts ...PostgresOption) *PostgresContainer {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	pg, err := NewPostgresContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { CleanupContainer(t, ctx, pg) })
	return pg
}
