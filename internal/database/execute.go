// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/metrics"
)

// Result is a tabular query result. Values are normalized to string,
// int64, float64, bool, time.Time or nil.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result has no rows.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// ColumnIndex returns the position of a column, or -1.
func (r *Result) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the value at row i for column name, or nil.
func (r *Result) Value(i int, name string) any {
	col := r.ColumnIndex(name)
	if col < 0 || i < 0 || i >= len(r.Rows) {
		return nil
	}
	return r.Rows[i][col]
}

// Float returns a numeric value as float64; non-numeric values yield 0.
func (r *Result) Float(i int, name string) float64 {
	switch v := r.Value(i, name).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Int returns a numeric value as int64; non-numeric values yield 0.
func (r *Result) Int(i int, name string) int64 {
	switch v := r.Value(i, name).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// String returns a value formatted as a string; nil yields "".
func (r *Result) String(i int, name string) string {
	switch v := r.Value(i, name).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns a boolean value; non-boolean values yield false.
func (r *Result) Bool(i int, name string) bool {
	b, _ := r.Value(i, name).(bool)
	return b
}

// Execute runs a chart template with the given parameters. A nil parameter
// leaves its dimension unconstrained. Zero matching rows is a successful,
// empty Result.
func (db *DB) Execute(ctx context.Context, id TemplateID, params filters.ParameterSet) (*Result, error) {
	query, args, err := db.buildQuery(id, params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	result, err := db.breaker.execute(func() (*Result, error) {
		return db.query(ctx, query, args...)
	})
	metrics.RecordDBQuery(string(db.dialect), string(id), time.Since(start), err)

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("template", string(id)).Msg("Query failed")
		return nil, fmt.Errorf("template %s: %w", id, err)
	}
	return result, nil
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*Result, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range raw {
			raw[i] = normalizeValue(v)
		}
		result.Rows = append(result.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// floater matches driver decimal types that expose a float conversion.
type floater interface {
	Float64() float64
}

// normalizeValue maps driver-specific scan types onto a small set of Go types.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int64, float64, time.Time:
		return x
	case []byte:
		s := string(x)
		// lib/pq returns NUMERIC as text.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case *big.Int:
		if x.IsInt64() {
			return x.Int64()
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case floater:
		return x.Float64()
	case sql.NullString:
		if x.Valid {
			return x.String
		}
		return nil
	default:
		return fmt.Sprint(x)
	}
}
