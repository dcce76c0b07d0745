// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/clickstream/internal/logging"
)

var (
	// ErrUnknownTemplate is returned by Execute for a template id it does not know.
	ErrUnknownTemplate = errors.New("unknown query template")

	// ErrUnavailable is returned while the query circuit breaker is open.
	ErrUnavailable = errors.New("database unavailable")
)

// closeWithLog closes a resource and logs a failure.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource in error paths where a Close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
