// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

import (
	"strconv"
	"strings"
)

// WeekendChoice is the tri-state value of the weekend filter.
type WeekendChoice int

const (
	// WeekendAny leaves the weekend dimension unconstrained.
	WeekendAny WeekendChoice = iota
	// WeekdayOnly restricts to sessions with weekend = false.
	WeekdayOnly
	// WeekendOnly restricts to sessions with weekend = true.
	WeekendOnly
)

// ParseWeekend accepts the dashboard labels ("all", "weekday", "weekend") as
// well as boolean spellings ("false", "true"). An empty string is WeekendAny.
func ParseWeekend(s string) (WeekendChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return WeekendAny, nil
	case "weekday", "weekday_only", "weekday only", "false", "0":
		return WeekdayOnly, nil
	case "weekend", "weekend_only", "weekend only", "true", "1":
		return WeekendOnly, nil
	default:
		return WeekendAny, configError("weekend", s, "expected all, weekday or weekend")
	}
}

// Bool returns the weekend column value this choice selects.
// ok is false for WeekendAny.
func (w WeekendChoice) Bool() (value, ok bool) {
	switch w {
	case WeekdayOnly:
		return false, true
	case WeekendOnly:
		return true, true
	default:
		return false, false
	}
}

func (w WeekendChoice) String() string {
	switch w {
	case WeekdayOnly:
		return "weekday"
	case WeekendOnly:
		return "weekend"
	default:
		return "all"
	}
}

// Definition is one user-selected filter. Multi-valued filters carry Values;
// the weekend filter carries Weekend.
type Definition struct {
	Name    Name
	Values  []string
	Weekend WeekendChoice
	Scope   Scope
}

// NewSelection builds a definition for a multi-valued filter. Blank and
// duplicate values are dropped; the first occurrence keeps its position.
// Dimension filters (browser, os, region, traffic_type) require integer ids.
func NewSelection(name Name, scope Scope, values ...string) (Definition, error) {
	if !name.Valid() {
		return Definition{}, configError("name", string(name), "unknown filter")
	}
	if name.Kind() == KindTriState {
		return Definition{}, configError(string(name), "", "takes a weekend choice, not a value list")
	}
	if !scope.valid() {
		return Definition{}, configError("scope", strconv.Itoa(int(scope)), "unknown scope")
	}

	seen := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if name.Kind() == KindDimension {
			id, err := strconv.Atoi(v)
			if err != nil {
				return Definition{}, configError(string(name), v, "expected an integer id")
			}
			v = strconv.Itoa(id)
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		cleaned = append(cleaned, v)
	}

	return Definition{Name: name, Values: cleaned, Scope: scope}, nil
}

// NewWeekend builds the weekend filter definition.
func NewWeekend(scope Scope, choice WeekendChoice) (Definition, error) {
	if !scope.valid() {
		return Definition{}, configError("scope", strconv.Itoa(int(scope)), "unknown scope")
	}
	if choice < WeekendAny || choice > WeekendOnly {
		return Definition{}, configError("weekend", strconv.Itoa(int(choice)), "unknown weekend choice")
	}
	return Definition{Name: Weekend, Weekend: choice, Scope: scope}, nil
}

// MustSelection is NewSelection for static definitions; it panics on error.
func MustSelection(name Name, scope Scope, values ...string) Definition {
	d, err := NewSelection(name, scope, values...)
	if err != nil {
		panic(err)
	}
	return d
}

// MustWeekend is NewWeekend for static definitions; it panics on error.
func MustWeekend(scope Scope, choice WeekendChoice) Definition {
	d, err := NewWeekend(scope, choice)
	if err != nil {
		panic(err)
	}
	return d
}

// HasValue reports whether the definition selects anything. An empty
// selection and WeekendAny both mean "no constraint".
func (d Definition) HasValue() bool {
	if d.Name == Weekend {
		return d.Weekend != WeekendAny
	}
	return len(d.Values) > 0
}

// Set holds at most one definition per filter name.
type Set map[Name]Definition

// NewSet applies definitions in order; a later definition for the same name
// replaces the earlier one.
func NewSet(defs ...Definition) Set {
	s := make(Set, len(defs))
	for _, d := range defs {
		s.Put(d)
	}
	return s
}

// Put stores d, replacing any existing definition for d.Name.
func (s Set) Put(d Definition) {
	s[d.Name] = d
}

// Get returns the definition for name, if present.
func (s Set) Get(name Name) (Definition, bool) {
	d, ok := s[name]
	return d, ok
}
