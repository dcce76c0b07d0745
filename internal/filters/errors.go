// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package filters

import "fmt"

// ConfigurationError reports a filter definition that cannot be built:
// an unknown filter name, an unknown scope, or a value of the wrong shape.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid filter %s %q: %s", e.Field, e.Value, e.Reason)
}

func configError(field, value, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
