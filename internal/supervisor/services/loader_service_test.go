// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/clickstream/internal/database"
)

type mockLoader struct {
	count    int64
	countErr error
	stats    *database.LoadStats
	loadErr  error
	loads    int
	path     string
	batch    int
}

func (m *mockLoader) SessionCount(context.Context) (int64, error) {
	return m.count, m.countErr
}

func (m *mockLoader) LoadCSVFile(_ context.Context, path string, batchSize int) (*database.LoadStats, error) {
	m.loads++
	m.path = path
	m.batch = batchSize
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.stats, nil
}

func TestDatasetLoadService(t *testing.T) {
	t.Run("loads into empty database", func(t *testing.T) {
		loader := &mockLoader{stats: &database.LoadStats{Read: 10, Inserted: 8, Dropped: 2}}
		var loaded *database.LoadStats
		svc := NewDatasetLoadService(loader, "data/shoppers.csv", 500, func(s *database.LoadStats) { loaded = s })

		err := svc.Serve(context.Background())
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve = %v, want ErrDoNotRestart", err)
		}
		if loader.loads != 1 || loader.path != "data/shoppers.csv" || loader.batch != 500 {
			t.Errorf("loader = %+v", loader)
		}
		if loaded == nil || loaded.Inserted != 8 {
			t.Errorf("onLoaded stats = %+v", loaded)
		}
	})

	t.Run("skips when data present", func(t *testing.T) {
		loader := &mockLoader{count: 12330}
		called := false
		svc := NewDatasetLoadService(loader, "x.csv", 0, func(*database.LoadStats) { called = true })

		if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve = %v", err)
		}
		if loader.loads != 0 || called {
			t.Error("loader ran against a populated database")
		}
	})

	t.Run("no callback when nothing inserted", func(t *testing.T) {
		loader := &mockLoader{stats: &database.LoadStats{Read: 3, Dropped: 3}}
		called := false
		svc := NewDatasetLoadService(loader, "x.csv", 0, func(*database.LoadStats) { called = true })

		_ = svc.Serve(context.Background())
		if called {
			t.Error("onLoaded ran with zero inserted rows")
		}
	})

	t.Run("load failure is retried", func(t *testing.T) {
		loader := &mockLoader{loadErr: errors.New("open x.csv: no such file")}
		err := NewDatasetLoadService(loader, "x.csv", 0, nil).Serve(context.Background())
		if err == nil || errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve = %v, want a restartable error", err)
		}
	})

	t.Run("count failure during shutdown", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		loader := &mockLoader{countErr: context.Canceled}
		err := NewDatasetLoadService(loader, "x.csv", 0, nil).Serve(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	})
}

func TestDatasetLoadService_WithSupervisor(t *testing.T) {
	loader := &mockLoader{stats: &database.LoadStats{Inserted: 1}}
	done := make(chan struct{})
	svc := NewDatasetLoadService(loader, "x.csv", 0, func(*database.LoadStats) { close(done) })

	sup := suture.New("test-data", suture.Spec{FailureBackoff: 10 * time.Millisecond})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loader did not run under supervisor")
	}
	cancel()
	<-errCh

	if loader.loads != 1 {
		t.Errorf("loads = %d, want exactly 1", loader.loads)
	}
}
