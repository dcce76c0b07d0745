// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package testinfra provides container-backed infrastructure for integration
// tests, using testcontainers-go.
//
// Everything except this file builds only with the integration tag:
//
//	go test -tags integration ./internal/database/...
//
// # PostgreSQL
//
// SetupPostgres starts a disposable PostgreSQL server so the query templates
// can be checked against the postgres dialect with the same fixtures the
// DuckDB tests use:
//
//	func TestPostgresKPIs(t *testing.T) {
//	    pg := testinfra.SetupPostgres(t)
//	    db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	    // ...
//	}
//
// # CI Considerations
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// postgres image; later runs use the local cache.
package testinfra
