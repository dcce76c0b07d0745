// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/models"
)

// HealthLive reports that the process is up. It never touches the database.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]any{
		"status":     "alive",
		"uptime_sec": int64(time.Since(h.startTime).Seconds()),
	}, time.Now(), false)
}

// HealthReady pings the database and reports the breaker state and session
// count. It returns 503 while the database is unreachable or the breaker is
// open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := &models.HealthStatus{
		Status:    "ready",
		Database:  "connected",
		Driver:    string(h.store.Dialect()),
		Breaker:   h.store.BreakerState(),
		Version:   h.version,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
	}

	if err := h.store.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check: database ping failed")
		status.Status = "not_ready"
		status.Database = "disconnected"
	} else if count, err := h.store.SessionCount(r.Context()); err == nil {
		status.Sessions = count
	}
	if status.Breaker == "open" {
		status.Status = "not_ready"
	}

	if status.Status != "ready" {
		respondJSON(w, r, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    &models.APIError{Code: models.ErrCodeUnavailable, Message: "Service not ready"},
		})
		return
	}
	respondSuccess(w, r, status, start, false)
}
