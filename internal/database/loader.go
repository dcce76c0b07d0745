// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/metrics"
)

// DefaultBatchSize is the number of rows committed per transaction.
const DefaultBatchSize = 1000

// LoadStats summarizes a CSV load.
type LoadStats struct {
	Read     int           `json:"read"`
	Inserted int           `json:"inserted"`
	Dropped  int           `json:"dropped"`
	Duration time.Duration `json:"duration"`
}

// normalizeHeader trims a CSV header, lower-cases it and replaces spaces
// with underscores.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

// headerIndex maps each shopper_data column to its CSV position.
func headerIndex(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[normalizeHeader(h)] = i
	}

	index := make([]int, len(shopperColumns))
	var missing []string
	for i, c := range shopperColumns {
		p, ok := pos[c.name]
		if !ok {
			missing = append(missing, c.name)
			continue
		}
		index[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header is missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// cleanRow converts one CSV record into typed shopper_data values. It returns
// false for rows with a missing or unparseable field.
func cleanRow(record []string, index []int) ([]any, bool) {
	values := make([]any, len(shopperColumns))
	for i, c := range shopperColumns {
		if index[i] >= len(record) {
			return nil, false
		}
		raw := strings.TrimSpace(record[index[i]])
		if raw == "" || strings.EqualFold(raw, "na") || strings.EqualFold(raw, "nan") {
			return nil, false
		}

		switch c.sqlType {
		case "INTEGER":
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				f, ferr := strconv.ParseFloat(raw, 64)
				if ferr != nil || f != float64(int64(f)) {
					return nil, false
				}
				n = int64(f)
			}
			values[i] = n
		case "DOUBLE PRECISION":
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, false
			}
			values[i] = f
		case "BOOLEAN":
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, false
			}
			values[i] = b
		default:
			values[i] = raw
		}
	}
	return values, true
}

func (db *DB) insertSQL() string {
	return fmt.Sprintf("INSERT INTO %s.shopper_data (%s) VALUES (%s)",
		Schema, strings.Join(ShopperColumns(), ", "), db.dialect.placeholders(1, len(shopperColumns)))
}

// LoadCSV cleans the clickstream CSV read from r and inserts it into
// shopper_data in batched transactions. Rows with missing or malformed
// fields are dropped and counted.
func (db *DB) LoadCSV(ctx context.Context, r io.Reader, batchSize int) (*LoadStats, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	start := time.Now()

	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	stats := &LoadStats{}
	batch := make([][]any, 0, batchSize)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Read++
				stats.Dropped++
				continue
			}
			return stats, fmt.Errorf("failed to read csv: %w", err)
		}
		stats.Read++

		row, ok := cleanRow(record, index)
		if !ok {
			stats.Dropped++
			continue
		}
		batch = append(batch, row)

		if len(batch) >= batchSize {
			if err := db.insertBatch(ctx, batch); err != nil {
				return stats, err
			}
			stats.Inserted += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := db.insertBatch(ctx, batch); err != nil {
			return stats, err
		}
		stats.Inserted += len(batch)
	}

	stats.Duration = time.Since(start)
	metrics.DBRowsLoaded.WithLabelValues("inserted").Add(float64(stats.Inserted))
	metrics.DBRowsLoaded.WithLabelValues("dropped").Add(float64(stats.Dropped))

	logging.Info().
		Int("read", stats.Read).
		Int("inserted", stats.Inserted).
		Int("dropped", stats.Dropped).
		Dur("duration", stats.Duration).
		Msg("CSV load complete")

	return stats, nil
}

// LoadCSVFile opens path and loads it with LoadCSV.
func (db *DB) LoadCSVFile(ctx context.Context, path string, batchSize int) (*LoadStats, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer closeWithLog(f, "csv file")
	return db.LoadCSV(ctx, f, batchSize)
}

func (db *DB) insertBatch(ctx context.Context, batch [][]any) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Warn().Err(rbErr).Msg("Failed to roll back load transaction")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, db.insertSQL())
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	for _, row := range batch {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	return nil
}

// Truncate removes every shopper_data row. Used by the loader's replace mode.
func (db *DB) Truncate(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM "+Schema+".shopper_data"); err != nil {
		return fmt.Errorf("failed to truncate shopper_data: %w", err)
	}
	return nil
}
