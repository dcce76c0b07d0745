// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package models defines the API request and response structures.

  - APIResponse, Metadata, APIError: the response envelope used by every
    endpoint
  - DashboardRequest, FilterRequest: the POST /api/v1/dashboard body, with
    validator tags registered by internal/validation
  - FilterOptions, ParamsPreview, HealthStatus: endpoint payloads

Chart payloads are dashboard.Report and dashboard.ChartResult; they are not
duplicated here.
*/
package models
