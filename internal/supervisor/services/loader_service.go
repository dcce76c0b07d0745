// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package services

import (
	"context"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/logging"
)

// DatasetLoader is implemented by *database.DB.
type DatasetLoader interface {
	SessionCount(ctx context.Context) (int64, error)
	LoadCSVFile(ctx context.Context, path string, batchSize int) (*database.LoadStats, error)
}

// DatasetLoadService loads the clickstream CSV when the sessions table is
// empty. It runs once: after a successful load, or when data is already
// present, it returns suture.ErrDoNotRestart. A failed load returns the
// error so the supervisor retries with backoff.
type DatasetLoadService struct {
	loader    DatasetLoader
	path      string
	batchSize int
	onLoaded  func(*database.LoadStats)
	name      string
}

// NewDatasetLoadService creates the loader service. onLoaded, if non-nil,
// runs after rows were inserted (the server uses it to clear caches).
func NewDatasetLoadService(loader DatasetLoader, path string, batchSize int, onLoaded func(*database.LoadStats)) *DatasetLoadService {
	return &DatasetLoadService{
		loader:    loader,
		path:      path,
		batchSize: batchSize,
		onLoaded:  onLoaded,
		name:      "dataset-loader",
	}
}

// Serve implements suture.Service.
func (s *DatasetLoadService) Serve(ctx context.Context) error {
	count, err := s.loader.SessionCount(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("count sessions: %w", err)
	}
	if count > 0 {
		logging.Info().Int64("sessions", count).Msg("Dataset already loaded, skipping CSV import")
		return suture.ErrDoNotRestart
	}

	logging.Info().Str("path", s.path).Msg("Loading clickstream dataset")
	stats, err := s.loader.LoadCSVFile(ctx, s.path, s.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			logging.Info().Msg("Dataset load canceled due to shutdown")
			return ctx.Err()
		}
		return fmt.Errorf("load dataset: %w", err)
	}

	if s.onLoaded != nil && stats.Inserted > 0 {
		s.onLoaded(stats)
	}
	return suture.ErrDoNotRestart
}

// String names the service in supervisor logs.
func (s *DatasetLoadService) String() string {
	return s.name
}
