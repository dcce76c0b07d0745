// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Command server runs the purchase intent dashboard API.

Startup order:

 1. .env (optional, godotenv) and configuration (koanf: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. Database (DuckDB by default, PostgreSQL when DB_DRIVER=postgres); creates the
    shopper_data and dimension tables
 4. Dashboard chart registry and API handlers
 5. Supervisor tree: dataset loader (when LOAD_ON_STARTUP=true), cache sweepers,
    HTTP server

The dataset loader runs once and only when shopper_data is empty. After a
successful load the response caches are cleared.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT before the database closes.

# Example

	export DB_DRIVER=duckdb
	export DUCKDB_PATH=/data/clickstream.duckdb
	export DATA_CSV_PATH=/data/online_shoppers_intention.csv
	export LOAD_ON_STARTUP=true
	./server

	curl 'http://localhost:8501/api/v1/dashboard?month=Nov&visitor=Returning_Visitor'
*/
package main
