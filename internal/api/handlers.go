// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package api

import (
	"context"
	"time"

	"github.com/tomtom215/clickstream/internal/cache"
	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
)

// Store is the database surface the handlers need. *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	Dialect() database.Dialect
	BreakerState() string
	SessionCount(ctx context.Context) (int64, error)
	LoadDimensions(ctx context.Context) (map[database.Dimension][]database.Label, error)
	LoadDistincts(ctx context.Context) (map[string][]any, error)
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	store     Store
	dash      *dashboard.Dashboard
	config    *config.Config
	version   string
	options   *cache.Cache
	charts    *cache.Cache
	startTime time.Time
}

// NewHandler creates the API handlers. The two caches it owns are returned by
// Caches so they can be supervised.
func NewHandler(store Store, dash *dashboard.Dashboard, cfg *config.Config, version string) *Handler {
	return &Handler{
		store:     store,
		dash:      dash,
		config:    cfg,
		version:   version,
		options:   cache.New("filter_options", cfg.Dashboard.OptionsCacheTTL),
		charts:    cache.New("charts", cfg.Dashboard.CacheTTL),
		startTime: time.Now(),
	}
}

// Caches returns the response caches.
func (h *Handler) Caches() []*cache.Cache {
	return []*cache.Cache{h.options, h.charts}
}

// ClearCache drops every cached response. Called after the dataset changes.
func (h *Handler) ClearCache() {
	h.options.Clear()
	h.charts.Clear()
}
