// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/clickstream/internal/api"
	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/dashboard"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/supervisor"
	"github.com/tomtom215/clickstream/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Clickstream dashboard")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("dialect", string(db.Dialect())).Msg("Database initialized")

	dash := dashboard.New(db, dashboard.Config{RegionTopN: cfg.Dashboard.RegionTopN})
	handler := api.NewHandler(db, dash, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return err
	}

	if cfg.Data.LoadOnStartup && cfg.Data.CSVPath != "" {
		tree.AddDataService(services.NewDatasetLoadService(db, cfg.Data.CSVPath, cfg.Data.BatchSize,
			func(*database.LoadStats) { handler.ClearCache() }))
		logging.Info().Str("path", cfg.Data.CSVPath).Msg("Dataset loader added to supervisor tree")
	}
	for _, c := range handler.Caches() {
		tree.AddDataService(c)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
