// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package middleware provides HTTP middleware for the dashboard API.

Key Components:

  - RequestID: X-Request-ID propagation with request and correlation IDs
    added to the logging context
  - PrometheusMetrics: request count, latency and in-flight gauges labeled
    by chi route pattern

Both are written as http.HandlerFunc decorators and adapted to chi's
r.Use() by the api package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Handlers read the ID back with GetRequestID, or log through logging.Ctx,
which attaches it automatically:

	logging.Ctx(r.Context()).Info().Msg("Rendering dashboard")

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/metrics: Prometheus metric definitions
*/
package middleware
