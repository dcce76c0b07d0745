// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeDatabase    = "DATABASE_ERROR"
	ErrCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimit   = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// APIResponse wraps every API response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"charts": [...], "ok": 11, "empty": 2, "failed": 0},
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "query_time_ms": 45
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "unknown filter: color",
//	    "details": {"field": "name"}
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata reports timing and cache use. QueryTimeMS is omitted for cache
// hits.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
