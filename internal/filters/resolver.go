// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

// IsActive reports whether d constrains the chart identified by ctx.
func IsActive(d Definition, ctx Context) bool {
	if !d.HasValue() {
		return false
	}
	switch d.Scope {
	case ScopeAll:
		return true
	case ScopeKPIOnly:
		return ctx == ContextKPI
	case ScopeGraphOnly:
		return ctx == d.Name.Context()
	default:
		return false
	}
}

// Resolve returns the names of the filters in set that are active for ctx,
// in canonical order.
func Resolve(set Set, ctx Context) []Name {
	active := make([]Name, 0, len(names))
	for _, n := range names {
		d, ok := set[n]
		if ok && IsActive(d, ctx) {
			active = append(active, n)
		}
	}
	return active
}
