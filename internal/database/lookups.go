// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"fmt"
)

// Label is one id/name row of a dimension table.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LoadDimensions returns the labels of every dimension table, ordered by id.
func (db *DB) LoadDimensions(ctx context.Context) (map[Dimension][]Label, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out := make(map[Dimension][]Label, len(Dimensions))
	for _, dim := range Dimensions {
		labels, err := db.loadDimension(ctx, dim)
		if err != nil {
			return nil, err
		}
		out[dim] = labels
	}
	return out, nil
}

func (db *DB) loadDimension(ctx context.Context, dim Dimension) ([]Label, error) {
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf("SELECT id, name FROM %s ORDER BY id", dim.Table()))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", dim.Table(), err)
	}
	defer closeWithLog(rows, "rows")

	var labels []Label
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dim.Table(), err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// DistinctColumns are the shopper_data columns offered as filter choices.
var DistinctColumns = []string{"month", "visitortype", "weekend", "browser", "operatingsystems", "region", "traffictype"}

// LoadDistincts returns the distinct values of each DistinctColumns column,
// sorted. Months are sorted chronologically.
func (db *DB) LoadDistincts(ctx context.Context) (map[string][]any, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out := make(map[string][]any, len(DistinctColumns))
	for _, col := range DistinctColumns {
		ordExpr := col
		if col == "month" {
			ordExpr = monthOrderExpr
		}
		query := fmt.Sprintf("SELECT v FROM (SELECT DISTINCT %s AS v, %s AS ord FROM %s.shopper_data) d ORDER BY ord, v",
			col, ordExpr, Schema)
		result, err := db.query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to load distinct %s: %w", col, err)
		}
		values := make([]any, 0, result.Len())
		for _, row := range result.Rows {
			values = append(values, row[0])
		}
		out[col] = values
	}
	return out, nil
}
