// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

import "strings"

// Scope controls which chart contexts a filter constrains.
// The zero value is ScopeAll.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeKPIOnly
	ScopeGraphOnly
)

// ParseScope accepts "all", "kpi", "kpis", "kpi_only", "graph" and "graph_only"
// (case-insensitive). An empty string is ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "kpi", "kpis", "kpi_only":
		return ScopeKPIOnly, nil
	case "graph", "graph_only":
		return ScopeGraphOnly, nil
	default:
		return ScopeAll, configError("scope", s, "expected all, kpi or graph")
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeKPIOnly:
		return "kpi"
	case ScopeGraphOnly:
		return "graph"
	default:
		return "unknown"
	}
}

func (s Scope) valid() bool {
	return s >= ScopeAll && s <= ScopeGraphOnly
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(b []byte) error {
	parsed, err := ParseScope(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
