// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/metrics"
	"github.com/tomtom215/clickstream/internal/models"
)

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		CORSOrigins:   []string{"https://dash.example.com"},
		RateLimitReqs: 10,
	})
	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.RateLimitDisabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	dash := dashboard.New(newRecordingExecutor(), dashboard.DefaultConfig())
	h := NewHandler(newFakeStore(), dash, cfg, "test")
	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	}))
	router := NewRouter(h, mw).SetupChi()

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/api/v1"))
	var last int
	var resp testResponse
	for i := 0; i < 3; i++ {
		var rec *httptest.ResponseRecorder
		rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimit {
		t.Errorf("error = %+v", resp.Error)
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/api/v1")) - before; got != 1 {
		t.Errorf("rate limit hits delta = %v", got)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	router, _ := setupTestRouter(t, newFakeStore(), newRecordingExecutor())
	for i := 0; i < 150; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://dash.example.com"},
		CORSAllowedMethods: []string{"GET"},
		RateLimitDisabled:  true,
	})
	handler := mw.CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got header %q", got)
	}
}
