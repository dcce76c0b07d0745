// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

// Context identifies the chart a parameter set is built for.
type Context string

// ContextKPI is the KPI summary block. KPI_ONLY filters apply here and nowhere else.
const ContextKPI Context = "kpi"

// Graph contexts. Contexts named after a filter (weekend, month, browser,
// region, os, page_type, traffic_type) receive that filter's GRAPH_ONLY value.
const (
	ContextWeekend     Context = "weekend"
	ContextMonth       Context = "month"
	ContextBrowser     Context = "browser"
	ContextTrafficType Context = "traffic_type"
	ContextRegion      Context = "region"
	ContextOS          Context = "os"
	ContextPageType    Context = "page_type"
	ContextEngagement  Context = "engagement"
	ContextSpecialDay  Context = "special_day"
)

// Cohort contexts are unfiltered views.
const (
	ContextCohortNewVsReturning Context = "cohort_new_vs_returning"
	ContextCohortWeekdayTraffic Context = "cohort_weekday_traffic"
	ContextCohortBrowserOS      Context = "cohort_browser_os"
)

func (c Context) String() string {
	return string(c)
}
