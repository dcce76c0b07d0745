// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/metrics"
	"github.com/tomtom215/clickstream/internal/models"
)

// ChiMiddlewareConfig holds configuration for the chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	RateLimitKeyFunc  httprate.KeyFunc
}

// DefaultChiMiddlewareConfig returns the defaults. CORS origins are empty, so
// cross-origin requests are refused until configured.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "If-None-Match", "X-Request-ID"},
		CORSExposedHeaders: []string{"ETag", "X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddlewareConfigFromSecurity builds the middleware config from the
// security section of the service config.
func ChiMiddlewareConfigFromSecurity(sec config.SecurityConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = sec.CORSOrigins
	if sec.RateLimitReqs > 0 {
		cfg.RateLimitRequests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		cfg.RateLimitWindow = sec.RateLimitWindow
	}
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	return cfg
}

// ChiMiddleware provides chi-compatible middleware.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. A nil config uses the
// defaults.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}

	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
			ExposedHeaders: cfg.CORSExposedHeaders,
			MaxAge:         cfg.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns a per-IP go-chi/httprate limiter. Rejections are counted
// in api_rate_limit_hits_total and answered with the JSON error envelope.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	keyFunc := m.config.RateLimitKeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(rateLimited),
	)
}

// rateLimited answers a rejected request. The limiter runs before the
// subrouter resolves the route, so hits are labeled with the mount pattern.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		endpoint = strings.TrimSuffix(rctx.RoutePattern(), "/*")
	}
	metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
	respondAPIError(w, r, http.StatusTooManyRequests, &models.APIError{
		Code:    models.ErrCodeRateLimit,
		Message: "Too many requests",
	})
}
