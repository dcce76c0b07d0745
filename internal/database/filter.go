// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/clickstream/internal/filters"
)

// listColumn binds a list parameter to its shopper_data column.
type listColumn struct {
	param   string
	column  string
	integer bool
}

// listColumns is evaluated in this order, so argument positions are stable
// for a given parameter set.
var listColumns = []listColumn{
	{filters.ParamMonths, "month", false},
	{filters.ParamVisitorTypes, "visitortype", false},
	{filters.ParamBrowsers, "browser", true},
	{filters.ParamOS, "operatingsystems", true},
	{filters.ParamRegions, "region", true},
	{filters.ParamTraffics, "traffictype", true},
}

// Page type labels as shown in the dashboard, mapped to the page-count column
// a session must have visited.
const (
	PageTypeAdministrative = "Administrative"
	PageTypeInformational  = "Informational"
	PageTypeProductRelated = "Product Related"
)

// PageTypes lists the page type options in display order.
var PageTypes = []string{PageTypeAdministrative, PageTypeInformational, PageTypeProductRelated}

var pageTypeColumns = map[string]string{
	"administrative":  "administrative",
	"informational":   "informational",
	"product related": "productrelated",
	"product_related": "productrelated",
	"productrelated":  "productrelated",
}

// pageTypeColumn resolves a page type label (case-insensitive) to its column.
func pageTypeColumn(label string) (string, bool) {
	col, ok := pageTypeColumns[strings.ToLower(strings.TrimSpace(label))]
	return col, ok
}

// buildFilterConditions turns a parameter set into WHERE conditions and their
// args. Nil parameters add nothing. startArgPos is the first placeholder
// position for positional dialects.
func buildFilterConditions(params filters.ParameterSet, d Dialect, startArgPos int) ([]string, []any, error) {
	var conditions []string
	var args []any
	pos := startArgPos

	for _, lc := range listColumns {
		values := params.Strings(lc.param)
		if len(values) == 0 {
			continue
		}
		cond, condArgs, next, err := d.inClause(lc.column, values, lc.integer, pos)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", lc.param, err)
		}
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		pos = next
	}

	if weekend, ok := params.Weekend(); ok {
		conditions = append(conditions, "weekend = "+d.placeholder(pos))
		args = append(args, weekend)
		pos++
	}

	if pageTypes := params.Strings(filters.ParamPageTypes); len(pageTypes) > 0 {
		conditions = append(conditions, pageTypeCondition(pageTypes))
	}

	return conditions, args, nil
}

// pageTypeCondition matches sessions that visited at least one of the
// selected page types. Unknown labels match nothing.
func pageTypeCondition(labels []string) string {
	seen := make(map[string]bool, len(labels))
	var parts []string
	for _, label := range labels {
		col, ok := pageTypeColumn(label)
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		parts = append(parts, col+" > 0")
	}
	if len(parts) == 0 {
		return "1 = 0"
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// buildWhereClause joins conditions into a clause that is always valid
// after WHERE.
func buildWhereClause(params filters.ParameterSet, d Dialect) (string, []any, error) {
	conditions, args, err := buildFilterConditions(params, d, 1)
	if err != nil {
		return "", nil, err
	}
	if len(conditions) == 0 {
		return "1=1", nil, nil
	}
	return "1=1 AND " + strings.Join(conditions, " AND "), args, nil
}

func parseIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
