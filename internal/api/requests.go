// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/models"
)

const scopeSuffix = "_scope"

// parseFilterQuery reads filters from the query string:
//
//	?month=Mar,Nov&browser=1&browser=2&browser_scope=graph&weekend=weekday
//
// Filter names and their aliases are accepted; values may be comma-separated
// or repeated. Keys starting with "_" are ignored; any other unknown key is a
// ConfigurationError.
func parseFilterQuery(query url.Values) (*models.DashboardRequest, error) {
	byName := make(map[filters.Name]*models.FilterRequest)
	get := func(n filters.Name) *models.FilterRequest {
		f, ok := byName[n]
		if !ok {
			f = &models.FilterRequest{Name: string(n)}
			byName[n] = f
		}
		return f
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.HasPrefix(key, "_") {
			continue
		}
		values := query[key]

		if base, ok := strings.CutSuffix(key, scopeSuffix); ok {
			name, err := filters.ParseName(base)
			if err != nil {
				return nil, err
			}
			get(name).Scope = values[len(values)-1]
			continue
		}

		name, err := filters.ParseName(key)
		if err != nil {
			return nil, err
		}
		f := get(name)
		if name == filters.Weekend {
			f.Weekend = values[len(values)-1]
			continue
		}
		for _, v := range values {
			f.Values = append(f.Values, parseCommaSeparated(v)...)
		}
	}

	req := &models.DashboardRequest{Filters: make([]models.FilterRequest, 0, len(byName))}
	for _, n := range filters.Names() {
		if f, ok := byName[n]; ok {
			req.Filters = append(req.Filters, *f)
		}
	}
	return req, nil
}

// readFilterSet validates the filter query of r and builds its set. It writes
// the error response and returns false on failure.
func readFilterSet(w http.ResponseWriter, r *http.Request) (filters.Set, bool) {
	req, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		respondHandlerError(w, r, err)
		return nil, false
	}
	return requestSet(w, r, req)
}

// requestSet validates req and builds its filter set.
func requestSet(w http.ResponseWriter, r *http.Request, req *models.DashboardRequest) (filters.Set, bool) {
	if !validateRequest(w, r, req) {
		return nil, false
	}
	set, err := req.ToSet()
	if err != nil {
		respondHandlerError(w, r, err)
		return nil, false
	}
	return set, true
}
