// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/clickstream/internal/cache"
	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/models"
)

const optionsCacheKey = "filter_options"

// Dashboard renders every chart with filters from the query string.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	set, ok := readFilterSet(w, r)
	if !ok {
		return
	}
	h.renderDashboard(w, r, set)
}

// DashboardPost renders every chart with filters from a JSON body.
func (h *Handler) DashboardPost(w http.ResponseWriter, r *http.Request) {
	var req models.DashboardRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondHandlerError(w, r, err)
		return
	}
	set, ok := requestSet(w, r, &req)
	if !ok {
		return
	}
	h.renderDashboard(w, r, set)
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, set filters.Set) {
	start := time.Now()
	key := cache.GenerateKey("dashboard", set)
	if cached, ok := h.charts.Get(key); ok {
		respondSuccess(w, r, cached, start, true)
		return
	}

	report := h.dash.RenderAll(r.Context(), set)
	if allUnavailable(report.Charts) {
		respondHandlerError(w, r, fmt.Errorf("render dashboard: %w", database.ErrUnavailable))
		return
	}
	if report.Failed == 0 {
		h.charts.Set(key, report)
	}
	respondSuccess(w, r, report, start, false)
}

// Chart renders one chart context.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	chart := filters.Context(chi.URLParam(r, "context"))
	set, ok := readFilterSet(w, r)
	if !ok {
		return
	}

	key := cache.GenerateKey("chart:"+string(chart), set)
	if cached, ok := h.charts.Get(key); ok {
		respondSuccess(w, r, cached, start, true)
		return
	}

	cr, err := h.dash.RenderOne(r.Context(), set, chart)
	if err != nil {
		respondHandlerError(w, r, err)
		return
	}
	if cr.Unavailable {
		respondHandlerError(w, r, fmt.Errorf("render %s: %w", chart, database.ErrUnavailable))
		return
	}
	if cr.Status != dashboard.StatusError {
		h.charts.Set(key, cr)
	}
	respondSuccess(w, r, cr, start, false)
}

// Params returns the parameter set a chart context would receive, without
// running any query.
func (h *Handler) Params(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	chart := filters.Context(chi.URLParam(r, "context"))
	if !h.knownContext(chart) {
		respondHandlerError(w, r, fmt.Errorf("%w: %s", dashboard.ErrUnknownChart, chart))
		return
	}
	set, ok := readFilterSet(w, r)
	if !ok {
		return
	}

	active := filters.Resolve(set, chart)
	names := make([]string, len(active))
	for i, n := range active {
		names[i] = string(n)
	}
	respondSuccess(w, r, &models.ParamsPreview{
		Context: string(chart),
		Active:  names,
		Params:  filters.BuildParams(set, chart),
	}, start, false)
}

// FilterOptions lists the choices for every filter.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if cached, ok := h.options.Get(optionsCacheKey); ok {
		respondSuccess(w, r, cached, start, true)
		return
	}

	dims, err := h.store.LoadDimensions(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load filter options", err)
		return
	}
	distinct, err := h.store.LoadDistincts(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load filter options", err)
		return
	}

	opts := &models.FilterOptions{
		Dimensions: dims,
		Distinct:   distinct,
		PageTypes:  database.PageTypes,
		Weekend:    []string{filters.WeekendAny.String(), filters.WeekdayOnly.String(), filters.WeekendOnly.String()},
		Scopes:     []string{filters.ScopeAll.String(), filters.ScopeKPIOnly.String(), filters.ScopeGraphOnly.String()},
	}
	h.options.Set(optionsCacheKey, opts)
	respondSuccess(w, r, opts, start, false)
}

// CohortViews lists the cohort views.
func (h *Handler) CohortViews(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.dash.CohortViews(), time.Now(), false)
}

// Cohort renders one cohort view with its table.
func (h *Handler) Cohort(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view := chi.URLParam(r, "view")

	key := cache.GenerateKey("cohort", view)
	if cached, ok := h.charts.Get(key); ok {
		respondSuccess(w, r, cached, start, true)
		return
	}

	res, err := h.dash.Cohort(r.Context(), view)
	if err != nil {
		respondHandlerError(w, r, err)
		return
	}
	if res.Chart.Unavailable {
		respondHandlerError(w, r, fmt.Errorf("render cohort %s: %w", view, database.ErrUnavailable))
		return
	}
	if res.Chart.Status != dashboard.StatusError {
		h.charts.Set(key, res)
	}
	respondSuccess(w, r, res, start, false)
}

func (h *Handler) knownContext(c filters.Context) bool {
	for _, known := range h.dash.Contexts() {
		if known == c {
			return true
		}
	}
	return false
}

// allUnavailable reports whether every chart failed because the database
// could not be reached.
func allUnavailable(charts []*dashboard.ChartResult) bool {
	if len(charts) == 0 {
		return false
	}
	for _, cr := range charts {
		if !cr.Unavailable {
			return false
		}
	}
	return true
}
