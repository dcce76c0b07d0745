// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/clickstream/internal/middleware"
	"github.com/tomtom215/clickstream/internal/models"
)

// Router builds the chi router for the API.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
}

// NewRouter creates a router over handler. A nil mw uses the default
// middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw}
}

// chiMiddleware adapts a HandlerFunc middleware to chi's signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi returns the configured router.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Get("/filters/options", h.FilterOptions)

		r.Get("/dashboard", h.Dashboard)
		r.Post("/dashboard", h.DashboardPost)
		r.Get("/charts/{context}", h.Chart)
		r.Get("/params/{context}", h.Params)

		r.Get("/cohorts", h.CohortViews)
		r.Get("/cohorts/{view}", h.Cohort)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondAPIError(w, r, http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeNotFound,
			Message: "route not found",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondAPIError(w, r, http.StatusMethodNotAllowed, &models.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		})
	})

	return r
}
