// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/models"
)

func TestHealthLive(t *testing.T) {
	store := newFakeStore()
	store.pingErr = errDown
	router, _ := setupTestRouter(t, store, newRecordingExecutor())

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK || resp.Status != models.StatusSuccess {
		t.Fatalf("status = %d %s", rec.Code, resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		breaker    string
		wantStatus int
		wantState  string
	}{
		{"ready", nil, "closed", http.StatusOK, "ready"},
		{"ping fails", errDown, "closed", http.StatusServiceUnavailable, "not_ready"},
		{"breaker open", nil, "open", http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.pingErr = tt.pingErr
			store.breaker = tt.breaker
			router, _ := setupTestRouter(t, store, newRecordingExecutor())

			rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var health models.HealthStatus
			if err := json.Unmarshal(resp.Data, &health); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if health.Status != tt.wantState || health.Driver != "duckdb" || health.Breaker != tt.breaker {
				t.Errorf("health = %+v", health)
			}
			if tt.wantStatus == http.StatusOK && health.Sessions != 12330 {
				t.Errorf("sessions = %d", health.Sessions)
			}
		})
	}
}

func TestDashboard_ScopesFiltersPerChart(t *testing.T) {
	exec := newRecordingExecutor()
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	rec, resp := doRequest(t, router, http.MethodGet,
		"/api/v1/dashboard?month=Mar,Nov&browser=1&browser_scope=graph&weekend=weekday&weekend_scope=kpi", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var report dashboard.Report
	if err := json.Unmarshal(resp.Data, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Charts) != 13 || report.Failed != 0 {
		t.Errorf("charts=%d failed=%d", len(report.Charts), report.Failed)
	}

	kpi := exec.params[database.TemplateKPIs]
	if v, ok := kpi.Weekend(); !ok || v {
		t.Errorf("kpi p_weekend = %v", kpi[filters.ParamWeekend])
	}
	if kpi.IsConstrained(filters.ParamBrowsers) {
		t.Error("graph-only browser filter reached the KPI block")
	}
	if got := kpi.Strings(filters.ParamMonths); !reflect.DeepEqual(got, []string{"Mar", "Nov"}) {
		t.Errorf("kpi p_months = %v", got)
	}

	browser := exec.params[database.TemplateBrowserPerformance]
	if got := browser.Strings(filters.ParamBrowsers); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("browser p_browsers = %v", got)
	}
	if browser.IsConstrained(filters.ParamWeekend) {
		t.Error("kpi-only weekend filter reached the browser chart")
	}
}

func TestDashboard_CachesReport(t *testing.T) {
	exec := newRecordingExecutor()
	router, h := setupTestRouter(t, newFakeStore(), exec)

	_, first := doRequest(t, router, http.MethodGet, "/api/v1/dashboard?month=Feb", "")
	calls := exec.callCount()
	_, second := doRequest(t, router, http.MethodGet, "/api/v1/dashboard?month=Feb", "")

	if first.Metadata.Cached || !second.Metadata.Cached {
		t.Errorf("cached = %v then %v", first.Metadata.Cached, second.Metadata.Cached)
	}
	if exec.callCount() != calls {
		t.Errorf("cached request ran %d queries", exec.callCount()-calls)
	}

	h.ClearCache()
	_, third := doRequest(t, router, http.MethodGet, "/api/v1/dashboard?month=Feb", "")
	if third.Metadata.Cached {
		t.Error("response cached after ClearCache")
	}
}

func TestDashboard_InvalidFilters(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantField string
	}{
		{"unknown filter", "/api/v1/dashboard?color=red", "name"},
		{"unknown scope", "/api/v1/dashboard?month=Feb&month_scope=everything", "filters[0].scope"},
		{"bad weekend", "/api/v1/dashboard?weekend=sometimes", "filters[0].weekend"},
		{"non-integer id", "/api/v1/dashboard?browser=chrome", "browser"},
		{"scope of unknown filter", "/api/v1/dashboard?color_scope=kpi", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newRecordingExecutor()
			router, _ := setupTestRouter(t, newFakeStore(), exec)

			rec, resp := doRequest(t, router, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
				t.Fatalf("error = %+v", resp.Error)
			}
			if resp.Error.Details["field"] != tt.wantField {
				t.Errorf("field = %v, want %s", resp.Error.Details["field"], tt.wantField)
			}
			if exec.callCount() != 0 {
				t.Error("queries ran for an invalid request")
			}
		})
	}
}

func TestDashboardPost(t *testing.T) {
	exec := newRecordingExecutor()
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	body := `{"filters": [
		{"name": "traffic", "values": ["2", "2", "3"], "scope": "graph"},
		{"name": "month", "values": ["Dec"]},
		{"name": "month", "values": ["May"], "scope": "kpi"}
	]}`
	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/dashboard", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	traffic := exec.params[database.TemplateTrafficTypePerformance]
	if got := traffic.Strings(filters.ParamTraffics); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("p_traffics = %v", got)
	}
	if traffic.IsConstrained(filters.ParamMonths) {
		t.Error("later kpi-only month entry should replace the earlier one")
	}
	if got := exec.params[database.TemplateKPIs].Strings(filters.ParamMonths); !reflect.DeepEqual(got, []string{"May"}) {
		t.Errorf("kpi p_months = %v", got)
	}
}

func TestDashboardPost_Rejects(t *testing.T) {
	tooMany := make([]string, 65)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("%q", fmt.Sprint(i))
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed", `{"filters": [`, http.StatusBadRequest},
		{"missing name", `{"filters": [{"values": ["Feb"]}]}`, http.StatusBadRequest},
		{"weekend choice on month", `{"filters": [{"name": "month", "weekend": "weekday"}]}`, http.StatusBadRequest},
		{"values on weekend", `{"filters": [{"name": "weekend", "values": ["Feb"]}]}`, http.StatusBadRequest},
		{"too many values", `{"filters": [{"name": "region", "values": [` + strings.Join(tooMany, ",") + `]}]}`, http.StatusBadRequest},
		{"too large", `{"filters": [{"name": "month", "values": ["` + strings.Repeat("x", maxBodyBytes) + `"]}]}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, newFakeStore(), newRecordingExecutor())
			rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/dashboard", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
				t.Errorf("error = %+v", resp.Error)
			}
		})
	}
}

func TestDashboard_DatabaseUnavailable(t *testing.T) {
	exec := newRecordingExecutor()
	exec.err = fmt.Errorf("execute: %w", database.ErrUnavailable)
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/dashboard", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeUnavailable {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestDashboard_QueryFailureIsPartial(t *testing.T) {
	exec := newRecordingExecutor()
	exec.err = fmt.Errorf("relation does not exist")
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report dashboard.Report
	if err := json.Unmarshal(resp.Data, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Failed != 13 || report.Charts[0].Status != dashboard.StatusError {
		t.Errorf("failed = %d", report.Failed)
	}

	calls := exec.callCount()
	doRequest(t, router, http.MethodGet, "/api/v1/dashboard", "")
	if exec.callCount() == calls {
		t.Error("report with failed charts was cached")
	}
}

func TestChart(t *testing.T) {
	exec := newRecordingExecutor()
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/charts/region?region=3&region_scope=graph", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var cr dashboard.ChartResult
	if err := json.Unmarshal(resp.Data, &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cr.Context != filters.ContextRegion || cr.Status != dashboard.StatusEmpty {
		t.Errorf("chart = %+v", cr)
	}
	if exec.callCount() != 1 {
		t.Errorf("queries = %d, want 1", exec.callCount())
	}

	rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/charts/funnel", "")
	if rec.Code != http.StatusNotFound || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("unknown chart = %d %+v", rec.Code, resp.Error)
	}
}

func TestParams(t *testing.T) {
	exec := newRecordingExecutor()
	router, _ := setupTestRouter(t, newFakeStore(), exec)

	tests := []struct {
		target     string
		wantActive []string
	}{
		{"/api/v1/params/browser?browser=1,2&browser_scope=graph&visitor=Returning_Visitor", []string{"visitor_type", "browser"}},
		{"/api/v1/params/os?browser=1,2&browser_scope=graph&visitor=Returning_Visitor", []string{"visitor_type"}},
		{"/api/v1/params/kpi?page_type=Administrative&page_type_scope=kpi", []string{"page_type"}},
		{"/api/v1/params/page_type?page_type=Administrative&page_type_scope=kpi", []string{}},
	}

	for _, tt := range tests {
		rec, resp := doRequest(t, router, http.MethodGet, tt.target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.target, rec.Code)
		}
		var preview models.ParamsPreview
		if err := json.Unmarshal(resp.Data, &preview); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !reflect.DeepEqual(preview.Active, tt.wantActive) {
			t.Errorf("%s: active = %v, want %v", tt.target, preview.Active, tt.wantActive)
		}
		if len(preview.Params) != 8 {
			t.Errorf("%s: params has %d keys, want 8", tt.target, len(preview.Params))
		}
	}

	if exec.callCount() != 0 {
		t.Error("params preview ran queries")
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/params/funnel", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown context status = %d", rec.Code)
	}
}

func TestFilterOptions_Cached(t *testing.T) {
	store := newFakeStore()
	router, _ := setupTestRouter(t, store, newRecordingExecutor())

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/filters/options", "")
	var opts models.FilterOptions
	if err := json.Unmarshal(resp.Data, &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts.Dimensions[database.DimBrowser]) != 2 || len(opts.PageTypes) != 3 {
		t.Errorf("options = %+v", opts)
	}
	if !reflect.DeepEqual(opts.Weekend, []string{"all", "weekday", "weekend"}) ||
		!reflect.DeepEqual(opts.Scopes, []string{"all", "kpi", "graph"}) {
		t.Errorf("weekend=%v scopes=%v", opts.Weekend, opts.Scopes)
	}

	_, resp = doRequest(t, router, http.MethodGet, "/api/v1/filters/options", "")
	if !resp.Metadata.Cached || store.dimCalls != 1 {
		t.Errorf("cached=%v loads=%d", resp.Metadata.Cached, store.dimCalls)
	}
}

func TestCohorts(t *testing.T) {
	router, _ := setupTestRouter(t, newFakeStore(), newRecordingExecutor())

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/cohorts", "")
	var views []dashboard.CohortView
	if err := json.Unmarshal(resp.Data, &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("views = %d, want 3", len(views))
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/cohorts/"+string(views[2].ID), "")
	if rec.Code != http.StatusOK {
		t.Errorf("cohort status = %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/cohorts/kpi", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-cohort view status = %d", rec.Code)
	}
}

func TestRespondJSON_NotModified(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"a": "b"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", generateETag(body))
	rec := httptest.NewRecorder()

	respondJSON(rec, req, http.StatusOK, map[string]string{"a": "b"})
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	router, _ := setupTestRouter(t, newFakeStore(), newRecordingExecutor())

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || resp.Error == nil {
		t.Errorf("status = %d error = %+v", rec.Code, resp.Error)
	}

	rec, _ = doRequest(t, router, http.MethodDelete, "/api/v1/dashboard", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d", rec.Code)
	}

	doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	metrics := httptest.NewRecorder()
	router.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if metrics.Code != http.StatusOK || !strings.Contains(metrics.Body.String(), "api_requests_total") {
		t.Errorf("metrics status = %d", metrics.Code)
	}
}
