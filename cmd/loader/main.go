// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Command loader imports the online shoppers CSV into shopper_data.
//
//	loader --csv online_shoppers_intention.csv [--batch 1000] [--replace]
//
// Database settings come from the same configuration as the server
// (DB_DRIVER, DUCKDB_PATH, DATABASE_URL). Without --replace, rows are appended.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/tomtom215/clickstream/internal/config"
	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "read .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	csvPath := flag.String("csv", cfg.Data.CSVPath, "path to the online shoppers CSV")
	batch := flag.Int("batch", cfg.Data.BatchSize, "rows per insert transaction")
	replace := flag.Bool("replace", false, "truncate shopper_data before loading")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: loader --csv path/to/online_shoppers_intention.csv [--batch N] [--replace]")
		os.Exit(2)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *csvPath, *batch, *replace); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, batch int, replace bool) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if replace {
		if err := db.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}

	stats, err := db.LoadCSVFile(ctx, path, batch)
	if err != nil {
		return err
	}

	total, err := db.SessionCount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("read %s rows, inserted %s, dropped %s in %s; shopper_data now holds %s sessions\n",
		humanize.Comma(int64(stats.Read)), humanize.Comma(int64(stats.Inserted)),
		humanize.Comma(int64(stats.Dropped)), stats.Duration.Round(time.Millisecond), humanize.Comma(total))
	return nil
}
