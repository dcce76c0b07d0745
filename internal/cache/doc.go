// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package cache provides a thread-safe in-memory cache with TTL support.

The API layer keeps two caches:
  - filter_options: dimension labels and distinct values (5-minute TTL)
  - charts: rendered dashboard reports keyed by filter set and chart (1-minute TTL)

Keys come from GenerateKey, which hashes the JSON encoding of the request
parameters:

	key := cache.GenerateKey("dashboard", request)
	if report, ok := charts.Get(key); ok {
	    return report.(*dashboard.Report)
	}

Each cache runs as a supervised service (Serve) that sweeps expired
entries. Hits, misses and evictions are exported as cache_hits_total,
cache_misses_total and cache_evictions_total labeled by cache name.
*/
package cache
