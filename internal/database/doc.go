// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package database is the data-access layer of the clickstream dashboard.
//
// # Overview
//
// It owns the connection to the backing SQL store, the clickstream schema, the
// one-shot CSV loader, and the parameterized query templates behind every
// dashboard chart. Two drivers are supported:
//
//   - duckdb (default): embedded, file-backed or ":memory:"
//   - postgres: a hosted PostgreSQL database via lib/pq
//
// # Architecture
//
//   - database.go: connection lifecycle, pool setup, Ping, Close
//   - dialect.go: placeholder and list-membership syntax per driver
//   - schema.go: clickstream schema, shopper_data and dimension tables
//   - filter.go: ParameterSet to WHERE clause translation
//   - templates.go: one SQL template per chart and cohort view
//   - execute.go: Execute, row normalization, Result accessors
//   - breaker.go: circuit breaker around query execution
//   - lookups.go: dimension labels and distinct filter values
//   - loader.go: CSV cleaning and bulk load into shopper_data
//
// # Parameters
//
// Every chart template accepts the same eight parameters produced by
// filters.BuildParams. A nil parameter adds no condition; a non-nil parameter
// adds one AND-ed condition:
//
//	p_months        month IN (...)
//	p_visitor_types visitortype IN (...)
//	p_weekend       weekend = ?
//	p_browsers      browser IN (...)
//	p_os            operatingsystems IN (...)
//	p_regions       region IN (...)
//	p_traffics      traffictype IN (...)
//	p_page_types    administrative > 0 OR informational > 0 OR productrelated > 0
//
// On PostgreSQL list membership is written col = ANY($n) with an array
// parameter instead of an expanded IN list.
//
// # Empty Results
//
// A template matching no rows returns a Result with zero rows and a nil error.
// Callers treat that as "no data", not as a failure.
package database
