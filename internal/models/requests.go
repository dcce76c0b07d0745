// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package models

import (
	"github.com/tomtom215/clickstream/internal/filters"
)

// FilterRequest is one filter in a POST /api/v1/dashboard body. Selection
// filters use Values; the weekend filter uses Weekend.
type FilterRequest struct {
	Name    string   `json:"name" validate:"required,filter_name"`
	Values  []string `json:"values,omitempty" validate:"max=64,dive,required,max=64"`
	Weekend string   `json:"weekend,omitempty" validate:"omitempty,weekend_choice"`
	Scope   string   `json:"scope,omitempty" validate:"omitempty,filter_scope"`
}

// DashboardRequest is the POST /api/v1/dashboard body.
//
//	{"filters": [
//	  {"name": "month", "values": ["Mar", "Nov"], "scope": "all"},
//	  {"name": "weekend", "weekend": "weekday", "scope": "kpi"}
//	]}
type DashboardRequest struct {
	Filters []FilterRequest `json:"filters" validate:"max=32,dive"`
}

// ToSet builds the filter set. A later entry for the same filter replaces an
// earlier one.
func (r *DashboardRequest) ToSet() (filters.Set, error) {
	set := filters.NewSet()
	for i := range r.Filters {
		def, err := r.Filters[i].Definition()
		if err != nil {
			return nil, err
		}
		set.Put(def)
	}
	return set, nil
}

// Definition converts the request into a filter definition. A weekend choice
// on a selection filter, or values on the weekend filter, is rejected.
func (f *FilterRequest) Definition() (filters.Definition, error) {
	name, err := filters.ParseName(f.Name)
	if err != nil {
		return filters.Definition{}, err
	}
	scope, err := filters.ParseScope(f.Scope)
	if err != nil {
		return filters.Definition{}, err
	}
	if name == filters.Weekend {
		if len(f.Values) > 0 {
			return filters.Definition{}, &filters.ConfigurationError{
				Field:  string(name),
				Value:  f.Values[0],
				Reason: "takes a weekend choice, not a value list",
			}
		}
		choice, err := filters.ParseWeekend(f.Weekend)
		if err != nil {
			return filters.Definition{}, err
		}
		return filters.NewWeekend(scope, choice)
	}
	if f.Weekend != "" {
		return filters.Definition{}, &filters.ConfigurationError{
			Field:  string(name),
			Value:  f.Weekend,
			Reason: "takes a value list, not a weekend choice",
		}
	}
	return filters.NewSelection(name, scope, f.Values...)
}
