// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/clickstream/internal/metrics"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Administrative_Duration": "administrative_duration",
		"  VisitorType ":          "visitortype",
		"Operating Systems":       "operating_systems",
		"\ufeffAdministrative":   "administrative",
	}
	for in, want := range tests {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHeaderIndex_MissingColumns(t *testing.T) {
	_, err := headerIndex([]string{"Month", "Weekend"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "revenue") {
		t.Errorf("error %q should name a missing column", err)
	}
}

func TestCleanRow(t *testing.T) {
	header := strings.Split(strings.SplitN(testCSV, "\n", 2)[0], ",")
	index, err := headerIndex(header)
	if err != nil {
		t.Fatalf("headerIndex: %v", err)
	}

	good := strings.Split("1,10.5,0,0,5.0,120,0,0.02,10,0,Feb,1,1,1,1,Returning_Visitor,false,True", ",")
	row, ok := cleanRow(good, index)
	if !ok {
		t.Fatal("expected row to be kept")
	}
	if row[4] != int64(5) {
		t.Errorf("productrelated = %#v, want int64(5)", row[4])
	}
	if row[10] != "Feb" || row[16] != false || row[17] != true {
		t.Errorf("row = %#v", row)
	}

	bad := [][]string{
		strings.Split("1,10.5,0,0,5,120,0,0.02,10,0,Feb,1,1,1,1,Returning_Visitor,false", ","),
		strings.Split("1,10.5,0,0,5,120,0,0.02,NaN,0,Feb,1,1,1,1,Returning_Visitor,false,true", ","),
		strings.Split("1.5,10.5,0,0,5,120,0,0.02,1,0,Feb,1,1,1,1,Returning_Visitor,false,true", ","),
		strings.Split("1,10.5,0,0,5,120,0,0.02,1,0,Feb,1,1,1,1,Returning_Visitor,yes,true", ","),
	}
	for i, record := range bad {
		if _, ok := cleanRow(record, index); ok {
			t.Errorf("bad[%d] should be dropped", i)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	db := setupTestDB(t)
	before := testutil.ToFloat64(metrics.DBRowsLoaded.WithLabelValues("dropped"))

	stats, err := db.LoadCSV(context.Background(), strings.NewReader(testCSV), 3)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if stats.Read != 10 || stats.Inserted != 8 || stats.Dropped != 2 {
		t.Errorf("stats = %+v, want read 10 inserted 8 dropped 2", stats)
	}
	if got := testutil.ToFloat64(metrics.DBRowsLoaded.WithLabelValues("dropped")) - before; got != 2 {
		t.Errorf("dropped metric delta = %v, want 2", got)
	}

	n, err := db.SessionCount(context.Background())
	if err != nil {
		t.Fatalf("SessionCount: %v", err)
	}
	if n != 8 {
		t.Errorf("SessionCount = %d, want 8", n)
	}

	if err := db.Truncate(context.Background()); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if n, _ := db.SessionCount(context.Background()); n != 0 {
		t.Errorf("SessionCount after truncate = %d", n)
	}
}

func TestLoadCSV_Errors(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.LoadCSV(context.Background(), strings.NewReader(""), 0); err == nil {
		t.Error("expected error for empty csv")
	}
	if _, err := db.LoadCSV(context.Background(), strings.NewReader("Month,Revenue\nFeb,TRUE\n"), 0); err == nil {
		t.Error("expected error for missing columns")
	}
	if _, err := db.LoadCSVFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCSVFile(t *testing.T) {
	db := setupTestDB(t)

	path := filepath.Join(t.TempDir(), "shoppers.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stats, err := db.LoadCSVFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("LoadCSVFile: %v", err)
	}
	if stats.Inserted != 8 {
		t.Errorf("Inserted = %d, want 8", stats.Inserted)
	}
}
