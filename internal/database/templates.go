// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"fmt"
	"strings"

	"github.com/tomtom215/clickstream/internal/filters"
)

// TemplateID names a parameterized chart query.
type TemplateID string

const (
	TemplateKPIs                    TemplateID = "kpis"
	TemplateWeekdayVsWeekend        TemplateID = "weekday_vs_weekend"
	TemplateMonthwiseRevenue        TemplateID = "monthwise_revenue"
	TemplateBrowserPerformance      TemplateID = "browser_performance"
	TemplateTrafficTypePerformance  TemplateID = "traffic_type_performance"
	TemplateRegionPerformance       TemplateID = "region_performance"
	TemplateOSPerformance           TemplateID = "os_performance"
	TemplatePageTypePerformance     TemplateID = "page_type_performance"
	TemplateEngagementMetrics       TemplateID = "engagement_metrics_impact"
	TemplateSpecialDayEffect        TemplateID = "special_day_effect"
	TemplateMonthlyNewVsReturning   TemplateID = "monthly_new_vs_returning"
	TemplateWeekdayConvByTraffic    TemplateID = "weekday_conversion_by_traffic"
	TemplateBrowserOSConversionGrid TemplateID = "browser_os_conversion_matrix"
)

const (
	sessionsExpr    = "COUNT(*) AS total_sessions"
	conversionsExpr = "CAST(SUM(CASE WHEN revenue THEN 1 ELSE 0 END) AS BIGINT)"
	convRateExpr    = "CAST(ROUND(100.0 * AVG(CASE WHEN revenue THEN 1.0 ELSE 0.0 END), 2) AS DOUBLE PRECISION)"

	// monthOrderExpr sorts the dataset's month labels chronologically.
	monthOrderExpr = `CASE month
		WHEN 'Jan' THEN 1 WHEN 'Feb' THEN 2 WHEN 'Mar' THEN 3 WHEN 'Apr' THEN 4
		WHEN 'May' THEN 5 WHEN 'June' THEN 6 WHEN 'Jun' THEN 6 WHEN 'Jul' THEN 7
		WHEN 'Aug' THEN 8 WHEN 'Sep' THEN 9 WHEN 'Oct' THEN 10 WHEN 'Nov' THEN 11
		WHEN 'Dec' THEN 12 ELSE 13 END`
)

// metricsColumns is the standard tail of every performance query.
var metricsColumns = fmt.Sprintf("%s, %s AS conversions, %s AS conversion_rate",
	sessionsExpr, conversionsExpr, convRateExpr)

type queryTemplate struct {
	// build renders the SQL for a WHERE clause. params is passed for
	// templates whose shape depends on the selection.
	build func(where string, params filters.ParameterSet) string
}

func shopperFrom() string {
	return Schema + ".shopper_data s"
}

func dimName(alias string, dim Dimension, column string) string {
	return fmt.Sprintf("COALESCE(%s.name, '%s ' || CAST(s.%s AS VARCHAR))", alias, dimensionSeed[dim].prefix, column)
}

// dimensionPerformance renders the per-label performance query shared by
// the browser, OS, region and traffic charts.
func dimensionPerformance(dim Dimension, column, orderBy string) queryTemplate {
	return queryTemplate{build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT s.%[1]s AS id, %[2]s AS name, %[3]s
FROM %[4]s
LEFT JOIN %[5]s d ON d.id = s.%[1]s
WHERE %[6]s
GROUP BY s.%[1]s, d.name
ORDER BY %[7]s`, column, dimName("d", dim, column), metricsColumns, shopperFrom(), dim.Table(), where, orderBy)
	}}
}

var templates = map[TemplateID]queryTemplate{
	TemplateKPIs: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT COUNT(*) AS total_sessions, %s AS total_conversions, %s AS overall_conversion_rate
FROM %s
WHERE %s
HAVING COUNT(*) > 0`, conversionsExpr, convRateExpr, shopperFrom(), where)
	}},

	TemplateWeekdayVsWeekend: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT weekend, %s
FROM %s
WHERE %s
GROUP BY weekend
ORDER BY weekend`, metricsColumns, shopperFrom(), where)
	}},

	TemplateMonthwiseRevenue: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT month, %s
FROM %s
WHERE %s
GROUP BY month
ORDER BY %s`, metricsColumns, shopperFrom(), where, monthOrderExpr)
	}},

	TemplateBrowserPerformance:     dimensionPerformance(DimBrowser, "browser", "total_sessions DESC, id"),
	TemplateTrafficTypePerformance: dimensionPerformance(DimTraffic, "traffictype", "conversion_rate DESC, total_sessions DESC, id"),
	TemplateRegionPerformance:      dimensionPerformance(DimRegion, "region", "conversions DESC, id"),
	TemplateOSPerformance:          dimensionPerformance(DimOS, "operatingsystems", "total_sessions DESC, id"),

	TemplatePageTypePerformance: {build: buildPageTypePerformance},

	TemplateEngagementMetrics: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT revenue,
	CAST(AVG(bouncerates) AS DOUBLE PRECISION) AS avg_bounce_rate,
	CAST(AVG(exitrates) AS DOUBLE PRECISION) AS avg_exit_rate,
	CAST(AVG(pagevalues) AS DOUBLE PRECISION) AS avg_page_value
FROM %s
WHERE %s
GROUP BY revenue
ORDER BY revenue DESC`, shopperFrom(), where)
	}},

	TemplateSpecialDayEffect: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT specialday, %s
FROM %s
WHERE %s
GROUP BY specialday
ORDER BY specialday`, metricsColumns, shopperFrom(), where)
	}},

	TemplateMonthlyNewVsReturning: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT month, visitortype, COUNT(*) AS total_sessions, %s AS conversion_rate
FROM %s
WHERE %s AND visitortype IN ('New_Visitor', 'Returning_Visitor')
GROUP BY month, visitortype
ORDER BY %s, visitortype`, convRateExpr, shopperFrom(), where, monthOrderExpr)
	}},

	TemplateWeekdayConvByTraffic: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT CASE WHEN s.weekend THEN 'Weekend' ELSE 'Weekday' END AS weekend_label,
	%s AS traffic_name, COUNT(*) AS total_sessions, %s AS conversion_rate
FROM %s
LEFT JOIN %s t ON t.id = s.traffictype
WHERE %s
GROUP BY s.weekend, s.traffictype, t.name
ORDER BY s.traffictype, s.weekend`, dimName("t", DimTraffic, "traffictype"), convRateExpr, shopperFrom(), DimTraffic.Table(), where)
	}},

	TemplateBrowserOSConversionGrid: {build: func(where string, _ filters.ParameterSet) string {
		return fmt.Sprintf(`SELECT %s AS browser_name, %s AS os_name, COUNT(*) AS total_sessions, %s AS conversion_rate
FROM %s
LEFT JOIN %s b ON b.id = s.browser
LEFT JOIN %s o ON o.id = s.operatingsystems
WHERE %s
GROUP BY s.browser, b.name, s.operatingsystems, o.name
ORDER BY s.operatingsystems, s.browser`,
			dimName("b", DimBrowser, "browser"), dimName("o", DimOS, "operatingsystems"), convRateExpr,
			shopperFrom(), DimBrowser.Table(), DimOS.Table(), where)
	}},
}

// buildPageTypePerformance reports one row per page type. The filtered
// sessions are computed once in a CTE so the WHERE args bind a single time.
// With a page type selection only the selected types are reported.
func buildPageTypePerformance(where string, params filters.ParameterSet) string {
	selected := PageTypes
	if labels := params.Strings(filters.ParamPageTypes); len(labels) > 0 {
		selected = nil
		for _, pt := range PageTypes {
			col, _ := pageTypeColumn(pt)
			for _, label := range labels {
				if c, ok := pageTypeColumn(label); ok && c == col {
					selected = append(selected, pt)
					break
				}
			}
		}
	}

	branches := make([]string, 0, len(selected))
	for i, pt := range selected {
		col, _ := pageTypeColumn(pt)
		branches = append(branches, fmt.Sprintf(
			"SELECT %d AS ord, '%s' AS page_type, %s FROM filtered WHERE %s > 0",
			i, pt, metricsColumns, col))
	}
	if len(branches) == 0 {
		branches = append(branches, fmt.Sprintf(
			"SELECT 0 AS ord, '' AS page_type, %s FROM filtered WHERE 1 = 0", metricsColumns))
	}

	return fmt.Sprintf(`WITH filtered AS (
	SELECT * FROM %s WHERE %s
)
SELECT page_type, total_sessions, conversions, conversion_rate FROM (
	%s
) p
WHERE total_sessions > 0
ORDER BY ord`, shopperFrom(), where, strings.Join(branches, "\n\tUNION ALL\n\t"))
}

// Templates returns every known template id.
func Templates() []TemplateID {
	ids := make([]TemplateID, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	return ids
}

// buildQuery renders the SQL and args for a template.
func (db *DB) buildQuery(id TemplateID, params filters.ParameterSet) (string, []any, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	if params == nil {
		params = filters.Unconstrained()
	}
	where, args, err := buildWhereClause(params, db.dialect)
	if err != nil {
		return "", nil, err
	}
	return tmpl.build(where, params), args, nil
}
