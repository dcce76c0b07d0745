// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/models"
)

var (
	// ErrBodyTooLarge is returned when a request body exceeds maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrInvalidBody is returned for a body that is not valid JSON.
	ErrInvalidBody = errors.New("invalid request body")
)

// classifyError maps a handler error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var cfgErr *filters.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, models.ErrCodeValidation
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest, models.ErrCodeValidation
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, models.ErrCodeValidation
	case errors.Is(err, dashboard.ErrUnknownChart):
		return http.StatusNotFound, models.ErrCodeNotFound
	case errors.Is(err, database.ErrUnavailable):
		return http.StatusServiceUnavailable, models.ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal
	}
}

// errorDetails exposes the offending field of a ConfigurationError.
func errorDetails(err error) map[string]any {
	var cfgErr *filters.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return nil
	}
	details := map[string]any{"field": cfgErr.Field}
	if cfgErr.Value != "" {
		details["value"] = cfgErr.Value
	}
	return details
}
