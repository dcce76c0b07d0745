// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

import "strings"

// Name identifies one of the eight dashboard filters.
type Name string

const (
	Month       Name = "month"
	VisitorType Name = "visitor_type"
	Weekend     Name = "weekend"
	Browser     Name = "browser"
	OS          Name = "os"
	Region      Name = "region"
	TrafficType Name = "traffic_type"
	PageType    Name = "page_type"
)

// Kind describes the shape of a filter's value.
type Kind int

const (
	// KindText filters select free-form labels (month abbreviations, visitor types, page types).
	KindText Kind = iota
	// KindDimension filters select integer dimension ids (browser, os, region, traffic type).
	KindDimension
	// KindTriState is the weekend filter: any, weekday only, weekend only.
	KindTriState
)

// names lists every filter in canonical order. Resolve and ParameterSet.Keys
// follow this order.
var names = []Name{Month, VisitorType, Weekend, Browser, OS, Region, TrafficType, PageType}

var kinds = map[Name]Kind{
	Month:       KindText,
	VisitorType: KindText,
	Weekend:     KindTriState,
	Browser:     KindDimension,
	OS:          KindDimension,
	Region:      KindDimension,
	TrafficType: KindDimension,
	PageType:    KindText,
}

// aliases accepts the short names used by the dashboard UI.
var aliases = map[string]Name{
	"visitor": VisitorType,
	"traffic": TrafficType,
}

// Names returns all filter names in canonical order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// ParseName resolves a filter name, accepting the UI aliases "visitor" and
// "traffic". Unknown names are a ConfigurationError.
func ParseName(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if n, ok := aliases[key]; ok {
		return n, nil
	}
	n := Name(key)
	if _, ok := kinds[n]; !ok {
		return "", configError("name", s, "unknown filter")
	}
	return n, nil
}

// Valid reports whether n is one of the eight filters.
func (n Name) Valid() bool {
	_, ok := kinds[n]
	return ok
}

// Kind returns the value shape of the filter.
func (n Name) Kind() Kind {
	return kinds[n]
}

// Context returns the chart context whose name matches this filter, which is
// where a ScopeGraphOnly definition applies.
func (n Name) Context() Context {
	return Context(n)
}

func (n Name) String() string {
	return string(n)
}
