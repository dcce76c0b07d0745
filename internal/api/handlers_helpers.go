// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/middleware"
	"github.com/tomtom215/clickstream/internal/models"
	"github.com/tomtom215/clickstream/internal/validation"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 64 << 10

// respondJSON writes a JSON response with an ETag. GET requests carrying a
// matching If-None-Match get 304.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, `{"status":"error","error":{"code":"INTERNAL_ERROR","message":"Failed to encode response"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept-Encoding")

	if status == http.StatusOK {
		etag := generateETag(body)
		w.Header().Set("ETag", etag)
		if r.Method == http.MethodGet && r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data any, start time.Time, cached bool) {
	meta := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: middleware.GetRequestID(r.Context()),
		Cached:    cached,
	}
	if !cached {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes the error envelope and logs the cause.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).
		Int("status", status).
		Str("code", code).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg(message)

	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: models.StatusError,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: apiErr,
	})
}

// respondHandlerError classifies err and writes the matching error response.
func respondHandlerError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		respondError(w, r, status, code, "Internal server error", err)
		return
	}

	logging.Ctx(r.Context()).Warn().Err(err).
		Int("status", status).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg("Request rejected")
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: err.Error(), Details: errorDetails(err)})
}

// validateRequest runs struct validation and writes a 400 on failure.
func validateRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		logging.Ctx(r.Context()).Warn().Str("errors", verr.Error()).Msg("Request validation failed")
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		})
		return false
	}
	return true
}

// decodeJSONBody decodes a size-limited JSON body into dst. An empty body
// leaves dst untouched.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// parseCommaSeparated splits a comma-separated value, dropping blanks.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sanitizeLogValue strips control characters from user input before logging.
func sanitizeLogValue(s string) string {
	if len(s) > 256 {
		s = s[:256]
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// generateETag returns a weak FNV-1a ETag for body.
func generateETag(body []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(body)
	return fmt.Sprintf(`W/"%x"`, h.Sum64())
}
