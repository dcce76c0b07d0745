// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package dashboard

import (
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/render"
)

// Chart is one dashboard section: a query template and the artifacts drawn
// from its result.
type Chart struct {
	Context  filters.Context
	Template database.TemplateID
	Title    string
	Specs    []render.Spec
	// Cohort charts always run unconstrained.
	Cohort bool
	// View is the cohort selector label.
	View string
}

const conversionRateLabel = "Conversion Rate (%)"

var (
	weekendLabels = [2]string{"Weekday", "Weekend"}
	outcomeLabels = [2]string{"Did Not Convert", "Converted"}
)

// conversionBar is the common bar of conversion rate per category.
func conversionBar(id, title string, kind render.Kind, category, categoryLabel string) render.Spec {
	return render.Spec{
		ID:            id,
		Title:         title,
		Kind:          kind,
		Category:      category,
		CategoryLabel: categoryLabel,
		Value:         "conversion_rate",
		ValueLabel:    conversionRateLabel,
		ValueFormat:   render.FormatPercent,
	}
}

// defaultCharts returns the dashboard sections in display order.
func defaultCharts(cfg Config) []Chart {
	region := conversionBar("region_conversion", "Region – Conversion Rate", render.KindBar, "name", "Region")
	region.Limit = cfg.RegionTopN

	weekend := conversionBar("weekday_vs_weekend", "Weekday vs Weekend", render.KindBar, "weekend", "")
	weekend.BoolLabels = &weekendLabels

	month := conversionBar("monthwise_conversion", "Monthwise Conversion Rate", render.KindLine, "month", "Month")

	return []Chart{
		{
			Context:  filters.ContextKPI,
			Template: database.TemplateKPIs,
			Title:    "Key Metrics",
			Specs: []render.Spec{{
				ID:    "kpis",
				Title: "Key Metrics",
				Kind:  render.KindMetrics,
				Metrics: []render.Column{
					{Name: "total_sessions", Label: "Total Sessions", Format: render.FormatCount},
					{Name: "total_conversions", Label: "Total Conversions", Format: render.FormatCount},
					{Name: "overall_conversion_rate", Label: "Overall Conversion Rate", Format: render.FormatPercent},
				},
			}},
		},
		{
			Context:  filters.ContextWeekend,
			Template: database.TemplateWeekdayVsWeekend,
			Title:    "Weekday vs Weekend",
			Specs:    []render.Spec{weekend},
		},
		{
			Context:  filters.ContextMonth,
			Template: database.TemplateMonthwiseRevenue,
			Title:    "Monthwise Conversion Rate",
			Specs:    []render.Spec{month},
		},
		{
			Context:  filters.ContextBrowser,
			Template: database.TemplateBrowserPerformance,
			Title:    "Browser Performance",
			Specs: []render.Spec{
				{
					ID:            "browser_share",
					Title:         "Browser Share",
					Kind:          render.KindPie,
					Category:      "name",
					CategoryLabel: "Browser",
					Value:         "total_sessions",
					ValueLabel:    "Sessions",
					ValueFormat:   render.FormatCount,
					Hole:          0.45,
				},
				conversionBar("browser_conversion", "Browser Conversion Rate", render.KindBar, "name", "Browser"),
			},
		},
		{
			Context:  filters.ContextTrafficType,
			Template: database.TemplateTrafficTypePerformance,
			Title:    "Traffic Type – Conversion Rate",
			Specs: []render.Spec{
				conversionBar("traffic_conversion", "Traffic Type – Conversion Rate", render.KindHBar, "name", "Traffic Type"),
			},
		},
		{
			Context:  filters.ContextRegion,
			Template: database.TemplateRegionPerformance,
			Title:    "Region – Conversion Rate",
			Specs:    []render.Spec{region},
		},
		{
			Context:  filters.ContextOS,
			Template: database.TemplateOSPerformance,
			Title:    "OS Performance",
			Specs: []render.Spec{
				conversionBar("os_conversion", "OS Performance", render.KindBar, "name", "Operating System"),
			},
		},
		{
			Context:  filters.ContextPageType,
			Template: database.TemplatePageTypePerformance,
			Title:    "Page Type Performance",
			Specs: []render.Spec{
				conversionBar("page_type_conversion", "Page Type Performance", render.KindBar, "page_type", "Page Type"),
			},
		},
		{
			Context:  filters.ContextEngagement,
			Template: database.TemplateEngagementMetrics,
			Title:    "Engagement Metrics Impact",
			Specs: []render.Spec{{
				ID:            "engagement_impact",
				Title:         "Engagement Metrics Impact",
				Kind:          render.KindGroupedBar,
				CategoryLabel: "Engagement Metric",
				ValueLabel:    "Average Value",
				Series:        "revenue",
				SeriesLabel:   "Session Outcome",
				BoolLabels:    &outcomeLabels,
				Melt: []render.Column{
					{Name: "avg_bounce_rate", Label: "Avg Bounce Rate", Format: render.FormatRatio},
					{Name: "avg_exit_rate", Label: "Avg Exit Rate", Format: render.FormatRatio},
					{Name: "avg_page_value", Label: "Avg Page Value", Format: render.FormatCurrency},
				},
			}},
		},
		{
			Context:  filters.ContextSpecialDay,
			Template: database.TemplateSpecialDayEffect,
			Title:    "Special Day Effect",
			Specs: []render.Spec{
				conversionBar("special_day_conversion", "Special Day Effect", render.KindBar, "specialday", "Special Day Score"),
			},
		},
		{
			Context:  filters.ContextCohortNewVsReturning,
			Template: database.TemplateMonthlyNewVsReturning,
			Title:    "Monthly New vs Returning Visitors",
			Cohort:   true,
			View:     "Monthly New vs. Returning Visitors",
			Specs: []render.Spec{{
				ID:            "monthly_new_vs_returning",
				Title:         "Monthly New vs Returning Visitors",
				Kind:          render.KindLine,
				Category:      "month",
				CategoryLabel: "Month",
				Value:         "conversion_rate",
				ValueLabel:    conversionRateLabel,
				ValueFormat:   render.FormatPercent,
				Series:        "visitortype",
				SeriesLabel:   "Visitor Type",
			}},
		},
		{
			Context:  filters.ContextCohortWeekdayTraffic,
			Template: database.TemplateWeekdayConvByTraffic,
			Title:    "Weekday Conversion by Traffic",
			Cohort:   true,
			View:     "Weekday Conversion by Traffic",
			Specs: []render.Spec{{
				ID:            "weekday_conversion_by_traffic",
				Title:         "Weekday Conversion by Traffic",
				Kind:          render.KindBar,
				Category:      "traffic_name",
				CategoryLabel: "Traffic Type",
				Value:         "conversion_rate",
				ValueLabel:    conversionRateLabel,
				ValueFormat:   render.FormatPercent,
				Series:        "weekend_label",
				SeriesLabel:   "Weekend",
			}},
		},
		{
			Context:  filters.ContextCohortBrowserOS,
			Template: database.TemplateBrowserOSConversionGrid,
			Title:    "Browser × OS Conversion Matrix",
			Cohort:   true,
			View:     "Browser vs. OS Conversion Matrix",
			Specs: []render.Spec{{
				ID:            "browser_os_matrix",
				Title:         "Browser × OS Conversion Matrix",
				Kind:          render.KindHeatmap,
				Category:      "browser_name",
				CategoryLabel: "Browser",
				Row:           "os_name",
				RowLabel:      "Operating System",
				Value:         "conversion_rate",
				ValueLabel:    conversionRateLabel,
				ValueFormat:   render.FormatPercent,
			}},
		},
	}
}
