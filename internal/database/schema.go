// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"fmt"
	"strings"
)

// Schema is the SQL schema holding every clickstream table.
const Schema = "clickstream"

// shopperColumns lists shopper_data columns in CSV order with their SQL types.
// The types are valid in both DuckDB and PostgreSQL.
var shopperColumns = []struct {
	name    string
	sqlType string
}{
	{"administrative", "INTEGER"},
	{"administrative_duration", "DOUBLE PRECISION"},
	{"informational", "INTEGER"},
	{"informational_duration", "DOUBLE PRECISION"},
	{"productrelated", "INTEGER"},
	{"productrelated_duration", "DOUBLE PRECISION"},
	{"bouncerates", "DOUBLE PRECISION"},
	{"exitrates", "DOUBLE PRECISION"},
	{"pagevalues", "DOUBLE PRECISION"},
	{"specialday", "DOUBLE PRECISION"},
	{"month", "VARCHAR"},
	{"operatingsystems", "INTEGER"},
	{"browser", "INTEGER"},
	{"region", "INTEGER"},
	{"traffictype", "INTEGER"},
	{"visitortype", "VARCHAR"},
	{"weekend", "BOOLEAN"},
	{"revenue", "BOOLEAN"},
}

// ShopperColumns returns the shopper_data column names in load order.
func ShopperColumns() []string {
	names := make([]string, len(shopperColumns))
	for i, c := range shopperColumns {
		names[i] = c.name
	}
	return names
}

// Dimension identifies one of the id/name label tables.
type Dimension string

const (
	DimBrowser Dimension = "browser"
	DimOS      Dimension = "os"
	DimRegion  Dimension = "region"
	DimTraffic Dimension = "traffic"
)

// Dimensions lists the dimension tables in display order.
var Dimensions = []Dimension{DimBrowser, DimOS, DimRegion, DimTraffic}

// Table returns the qualified dimension table name.
func (d Dimension) Table() string {
	return Schema + ".dim_" + string(d)
}

// dimensionSeed holds the readable labels seeded into each dimension table.
// The dataset only carries integer codes; ids without a seeded label render as
// "<Prefix> <id>".
var dimensionSeed = map[Dimension]struct {
	prefix string
	max    int
	labels map[int]string
}{
	DimBrowser: {"Browser", 13, map[int]string{
		1: "Chrome", 2: "Safari", 3: "Firefox", 4: "Edge", 5: "Opera", 6: "Internet Explorer",
	}},
	DimOS: {"OS", 8, map[int]string{
		1: "Windows", 2: "macOS", 3: "Linux", 4: "Android", 5: "iOS",
	}},
	DimRegion: {"Region", 9, nil},
	DimTraffic: {"Traffic Source", 20, map[int]string{
		1: "Direct", 2: "Organic Search", 3: "Paid Search", 4: "Referral", 5: "Social", 6: "Email",
	}},
}

// dimensionLabel returns the seeded label for a dimension id.
func dimensionLabel(d Dimension, id int) string {
	seed := dimensionSeed[d]
	if label, ok := seed.labels[id]; ok {
		return label
	}
	return fmt.Sprintf("%s %d", seed.prefix, id)
}

func createShopperTableSQL() string {
	cols := make([]string, len(shopperColumns))
	for i, c := range shopperColumns {
		cols[i] = fmt.Sprintf("\t%s %s", c.name, c.sqlType)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.shopper_data (\n%s\n)", Schema, strings.Join(cols, ",\n"))
}

// createTables creates the schema, shopper_data and dimension tables, then
// seeds dimension labels. Safe to run on every start.
func (db *DB) createTables(ctx context.Context) error {
	statements := []string{
		"CREATE SCHEMA IF NOT EXISTS " + Schema,
		createShopperTableSQL(),
	}
	for _, dim := range Dimensions {
		statements = append(statements, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, name VARCHAR NOT NULL)", dim.Table()))
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	return db.seedDimensions(ctx)
}

func (db *DB) seedDimensions(ctx context.Context) error {
	for _, dim := range Dimensions {
		query := fmt.Sprintf("INSERT INTO %s (id, name) VALUES (%s, %s) ON CONFLICT (id) DO NOTHING",
			dim.Table(), db.dialect.placeholder(1), db.dialect.placeholder(2))
		for id := 1; id <= dimensionSeed[dim].max; id++ {
			if _, err := db.conn.ExecContext(ctx, query, id, dimensionLabel(dim, id)); err != nil {
				return fmt.Errorf("failed to seed %s: %w", dim.Table(), err)
			}
		}
	}
	return nil
}
