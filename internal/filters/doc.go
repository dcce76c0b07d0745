// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package filters decides which user-selected dashboard filters apply to which
// chart, and turns that decision into the fixed parameter set every query
// template accepts.
//
// # Overview
//
// The dashboard exposes eight filters (month, visitor type, weekend, browser,
// operating system, region, traffic type, page type). Each filter carries a
// selected value and a scope:
//
//   - ScopeAll: the filter constrains every chart and the KPI block
//   - ScopeKPIOnly: the filter constrains only the KPI block
//   - ScopeGraphOnly: the filter constrains only the chart sharing its name
//
// # Resolution
//
// Resolve and IsActive answer "is this filter active for this chart context".
// A filter with no selection is never active. The weekend filter is tri-state:
// WeekendAny is the only unconstrained value, so WeekdayOnly (false) still
// constrains.
//
// # Parameters
//
// BuildParams maps a Set and a Context to a ParameterSet with exactly eight
// keys (p_months, p_visitor_types, p_weekend, p_browsers, p_os, p_regions,
// p_traffics, p_page_types). Inactive filters map to nil, which query
// templates treat as "no constraint on this dimension".
//
// Example:
//
//	set := filters.NewSet(
//	    filters.MustSelection(filters.Month, filters.ScopeAll, "Feb", "Mar"),
//	    filters.MustSelection(filters.Browser, filters.ScopeGraphOnly, "2"),
//	)
//	params := filters.BuildParams(set, filters.ContextKPI)
//	// params["p_months"]   == []string{"Feb", "Mar"}
//	// params["p_browsers"] == nil
//
// # Thread Safety
//
// Definition and ParameterSet values are immutable once built. A Set is a
// plain map and must not be mutated while another goroutine reads it; the
// HTTP layer builds one Set per request.
package filters
