// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package api serves the dashboard over HTTP using the chi router.

Endpoints (all under /api/v1):

	GET  /health/live          liveness
	GET  /health/ready         database ping, breaker state, session count
	GET  /filters/options      filter choices (cached)
	GET  /dashboard            full render pass, filters from the query string
	POST /dashboard            full render pass, filters from a JSON body
	GET  /charts/{context}     one chart
	GET  /params/{context}     resolved parameter set for a chart context
	GET  /cohorts              cohort view list
	GET  /cohorts/{view}       cohort chart and table

Prometheus metrics are served at /metrics.

# Filter Query Syntax

Each filter is named by its filter name (or the aliases visitor and traffic)
with comma-separated or repeated values, plus an optional <name>_scope:

	/api/v1/dashboard?month=Mar,Nov&browser=1&browser=2&browser_scope=graph&weekend=weekday

The weekend filter takes all, weekday or weekend. Scopes are all (default),
kpi and graph.

# Responses

Every response uses the models.APIResponse envelope. Invalid filters yield
400 VALIDATION_ERROR, unknown charts or cohort views 404 NOT_FOUND, and a
render in which every chart failed because the database is unreachable 503
SERVICE_UNAVAILABLE. Individual chart failures are reported inside the
report with status "error" and do not change the HTTP status.

# Middleware

Global: request ID with logging context, RealIP, Recoverer, CORS
(go-chi/cors), gzip (chi Compress). API routes add IP rate limiting
(go-chi/httprate) and Prometheus request metrics.
*/
package api
