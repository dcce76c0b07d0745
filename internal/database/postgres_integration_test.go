// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

//go:build integration

package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/testinfra"
)

func setupPostgresDB(t *testing.T) *DB {
	t.Helper()
	pg := testinfra.SetupPostgres(t)

	db, err := New(&config.DatabaseConfig{
		Driver:       "postgres",
		DSN:          pg.DSN,
		MaxOpenConns: 4,
		QueryTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("New(postgres): %v", err)
	}
	t.Cleanup(func() { closeQuietly(db) })

	stats, err := db.LoadCSV(context.Background(), strings.NewReader(testCSV), 3)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if stats.Inserted != 8 || stats.Dropped != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	return db
}

func TestPostgres_KPIs(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	if db.Dialect() != DialectPostgres {
		t.Fatalf("Dialect = %v", db.Dialect())
	}

	tests := []struct {
		name         string
		params       filters.ParameterSet
		wantSessions int64
		wantConv     int64
		wantRate     float64
	}{
		{"unconstrained", filters.Unconstrained(), 8, 3, 37.5},
		{"weekday only", params(map[string]any{filters.ParamWeekend: false}), 5, 2, 40},
		{"browsers 1 and 3", params(map[string]any{filters.ParamBrowsers: []string{"1", "3"}}), 6, 3, 50},
		{"months and visitor", params(map[string]any{
			filters.ParamMonths:       []string{"Feb", "Nov"},
			filters.ParamVisitorTypes: []string{"Returning_Visitor"},
		}), 2, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := db.Execute(ctx, TemplateKPIs, tt.params)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			checkInt(t, "total_sessions", res.Int(0, "total_sessions"), tt.wantSessions)
			checkInt(t, "total_conversions", res.Int(0, "total_conversions"), tt.wantConv)
			checkFloat(t, "overall_conversion_rate", res.Float(0, "overall_conversion_rate"), tt.wantRate)
		})
	}
}

func TestPostgres_AllTemplatesExecute(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	constrained := params(map[string]any{
		filters.ParamMonths:    []string{"Feb", "Mar", "May", "Nov"},
		filters.ParamRegions:   []string{"1", "2", "3", "4"},
		filters.ParamPageTypes: []string{"Administrative", "Product Related"},
	})

	for _, id := range Templates() {
		t.Run(string(id), func(t *testing.T) {
			if _, err := db.Execute(ctx, id, filters.Unconstrained()); err != nil {
				t.Errorf("unconstrained: %v", err)
			}
			if _, err := db.Execute(ctx, id, constrained); err != nil {
				t.Errorf("constrained: %v", err)
			}
		})
	}
}

func TestPostgres_MonthwiseChronological(t *testing.T) {
	db := setupPostgresDB(t)

	res, err := db.Execute(context.Background(), TemplateMonthwiseRevenue, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{"Feb", "Mar", "May", "Nov"}
	if res.Len() != len(want) {
		t.Fatalf("rows = %d", res.Len())
	}
	for i, m := range want {
		if got := res.String(i, "month"); got != m {
			t.Errorf("row %d month = %s, want %s", i, got, m)
		}
	}
}
