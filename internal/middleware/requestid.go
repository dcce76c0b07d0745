// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/clickstream/internal/logging"
)

type contextKey string

// RequestIDKey holds the request ID in the request context.
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is read from upstream proxies and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds IDs accepted from clients before they reach logs.
const maxRequestIDLen = 128

// RequestID assigns each request an ID, taken from X-Request-ID when the
// client supplies a usable one and generated otherwise. The ID is echoed in
// the response header and stored in the context together with a fresh
// correlation ID, so every log line from logging.Ctx carries both.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = logging.ContextWithRequestID(ctx, requestID)
		ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())

		next(w, r.WithContext(ctx))
	}
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
