// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

// Parameter keys accepted by every chart query template.
const (
	ParamMonths       = "p_months"
	ParamVisitorTypes = "p_visitor_types"
	ParamWeekend      = "p_weekend"
	ParamBrowsers     = "p_browsers"
	ParamOS           = "p_os"
	ParamRegions      = "p_regions"
	ParamTraffics     = "p_traffics"
	ParamPageTypes    = "p_page_types"
)

var paramKeys = map[Name]string{
	Month:       ParamMonths,
	VisitorType: ParamVisitorTypes,
	Weekend:     ParamWeekend,
	Browser:     ParamBrowsers,
	OS:          ParamOS,
	Region:      ParamRegions,
	TrafficType: ParamTraffics,
	PageType:    ParamPageTypes,
}

// ParamKey returns the template parameter key for a filter name.
func ParamKey(n Name) string {
	return paramKeys[n]
}

// ParameterSet maps each of the eight parameter keys to a value or nil.
// A nil value means the dimension is unconstrained. Non-nil values are
// []string for list filters and bool for p_weekend.
type ParameterSet map[string]any

// BuildParams returns the parameter set for ctx. Every key is present;
// filters missing from set or inactive for ctx map to nil. The result
// does not share slices with set.
func BuildParams(set Set, ctx Context) ParameterSet {
	params := make(ParameterSet, len(names))
	for _, n := range names {
		key := paramKeys[n]
		d, ok := set[n]
		if !ok || !IsActive(d, ctx) {
			params[key] = nil
			continue
		}
		if n == Weekend {
			v, _ := d.Weekend.Bool()
			params[key] = v
			continue
		}
		values := make([]string, len(d.Values))
		copy(values, d.Values)
		params[key] = values
	}
	return params
}

// Unconstrained returns a parameter set with every key mapped to nil.
func Unconstrained() ParameterSet {
	return BuildParams(nil, "")
}

// Keys returns the parameter keys in canonical filter order.
func (p ParameterSet) Keys() []string {
	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, paramKeys[n])
	}
	return keys
}

// Strings returns the list value for key, or nil when unconstrained.
func (p ParameterSet) Strings(key string) []string {
	v, _ := p[key].([]string)
	return v
}

// Weekend returns the p_weekend value; ok is false when unconstrained.
func (p ParameterSet) Weekend() (value, ok bool) {
	value, ok = p[ParamWeekend].(bool)
	return value, ok
}

// IsConstrained reports whether key carries a value.
func (p ParameterSet) IsConstrained(key string) bool {
	return p[key] != nil
}

// Constrained reports whether any dimension carries a value.
func (p ParameterSet) Constrained() bool {
	for _, v := range p {
		if v != nil {
			return true
		}
	}
	return false
}
