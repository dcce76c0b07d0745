// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package models

import (
	"github.com/tomtom215/clickstream/internal/database"
)

// FilterOptions lists the choices offered by each dashboard filter.
type FilterOptions struct {
	// Dimensions holds the id/label pairs of browser, os, region and traffic.
	Dimensions map[database.Dimension][]database.Label `json:"dimensions"`
	// Distinct holds the distinct shopper_data values per column.
	Distinct  map[string][]any `json:"distinct"`
	PageTypes []string         `json:"page_types"`
	Weekend   []string         `json:"weekend"`
	Scopes    []string         `json:"scopes"`
}

// ParamsPreview is the resolved parameter set for one chart context.
type ParamsPreview struct {
	Context string         `json:"context"`
	Active  []string       `json:"active"`
	Params  map[string]any `json:"params"`
}

// HealthStatus is the readiness report.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Driver    string `json:"driver"`
	Breaker   string `json:"breaker"`
	Sessions  int64  `json:"sessions"`
	Version   string `json:"version,omitempty"`
	UptimeSec int64  `json:"uptime_sec"`
}
