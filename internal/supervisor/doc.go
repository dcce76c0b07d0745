// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package supervisor provides suture v4 process supervision for the dashboard
server.

# Tree

	clickstream (root)
	├── data-layer
	│   ├── dataset-loader   (loads the CSV into an empty database)
	│   ├── cache-filter_options
	│   └── cache-charts
	└── api-layer
	    └── http-server

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog with a zerolog-backed slog handler:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewDatasetLoadService(db, cfg.Data.CSVPath, cfg.Data.BatchSize, onLoaded))
	tree.AddDataService(optionsCache)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Failure Handling

Each service failure increments a counter that decays over FailureDecay
seconds. Past FailureThreshold the supervisor waits FailureBackoff before the
next restart. A service that returns suture.ErrDoNotRestart is removed.

# What Is NOT Supervised

The database connection is not a service. DuckDB is embedded and the
PostgreSQL pool reconnects on its own; query failures are absorbed by the
circuit breaker in internal/database.
*/
package supervisor
