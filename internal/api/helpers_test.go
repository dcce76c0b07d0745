// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/models"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	pingErr   error
	breaker   string
	sessions  int64
	dimCalls  int
	dims      map[database.Dimension][]database.Label
	distincts map[string][]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		breaker:  "closed",
		sessions: 12330,
		dims: map[database.Dimension][]database.Label{
			database.DimBrowser: {{ID: 1, Name: "Chrome"}, {ID: 2, Name: "Safari"}},
		},
		distincts: map[string][]any{"month": {"Feb", "Mar"}},
	}
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) Dialect() database.Dialect { return database.DialectDuckDB }

func (s *fakeStore) BreakerState() string { return s.breaker }

func (s *fakeStore) SessionCount(context.Context) (int64, error) { return s.sessions, nil }

func (s *fakeStore) LoadDimensions(context.Context) (map[database.Dimension][]database.Label, error) {
	s.mu.Lock()
	s.dimCalls++
	s.mu.Unlock()
	return s.dims, nil
}

func (s *fakeStore) LoadDistincts(context.Context) (map[string][]any, error) {
	return s.distincts, nil
}

// recordingExecutor returns empty results and records the parameters each
// template received.
type recordingExecutor struct {
	mu     sync.Mutex
	calls  int
	params map[database.TemplateID]filters.ParameterSet
	err    error
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{params: make(map[database.TemplateID]filters.ParameterSet)}
}

func (e *recordingExecutor) Execute(_ context.Context, id database.TemplateID, params filters.ParameterSet) (*database.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.params[id] = params
	if e.err != nil {
		return nil, e.err
	}
	return &database.Result{Rows: [][]any{}}, nil
}

func (e *recordingExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

var errDown = errors.New("connection refused")

func testConfig() *config.Config {
	return &config.Config{
		Dashboard: config.DashboardConfig{
			CacheTTL:        time.Minute,
			OptionsCacheTTL: 5 * time.Minute,
			RegionTopN:      15,
		},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

// setupTestRouter wires a handler over the fakes and returns the chi router.
func setupTestRouter(t *testing.T, store *fakeStore, exec *recordingExecutor) (http.Handler, *Handler) {
	t.Helper()
	cfg := testConfig()
	dash := dashboard.New(exec, dashboard.Config{RegionTopN: cfg.Dashboard.RegionTopN})
	h := NewHandler(store, dash, cfg, "test")
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)))
	return router.SetupChi(), h
}

// testResponse is APIResponse with the payload left undecoded.
type testResponse struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Code != http.StatusNotModified && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, resp
}
