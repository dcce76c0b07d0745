// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect string

const (
	DialectDuckDB   Dialect = "duckdb"
	DialectPostgres Dialect = "postgres"
)

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	return string(d)
}

// positional reports whether placeholders are numbered ($1, $2) rather than ?.
func (d Dialect) positional() bool {
	return d == DialectPostgres
}

// placeholder returns the placeholder for argument position pos (1-based).
func (d Dialect) placeholder(pos int) string {
	if d.positional() {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

// placeholders returns n comma-separated placeholders starting at pos.
func (d Dialect) placeholders(pos, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.placeholder(pos + i)
	}
	return strings.Join(parts, ", ")
}

// inClause builds a list-membership condition for column and returns the
// condition, its args, and the next free argument position.
//
// DuckDB expands the list into IN (?, ?, ...). PostgreSQL binds the whole
// list as one array parameter: column = ANY($n).
func (d Dialect) inClause(column string, values []string, integer bool, pos int) (string, []any, int, error) {
	if d == DialectPostgres {
		if integer {
			ids, err := parseIDs(values)
			if err != nil {
				return "", nil, pos, err
			}
			return fmt.Sprintf("%s = ANY(%s)", column, d.placeholder(pos)), []any{pq.Array(ids)}, pos + 1, nil
		}
		return fmt.Sprintf("%s = ANY(%s)", column, d.placeholder(pos)), []any{pq.StringArray(values)}, pos + 1, nil
	}

	args := make([]any, 0, len(values))
	if integer {
		ids, err := parseIDs(values)
		if err != nil {
			return "", nil, pos, err
		}
		for _, id := range ids {
			args = append(args, id)
		}
	} else {
		for _, v := range values {
			args = append(args, v)
		}
	}
	return fmt.Sprintf("%s IN (%s)", column, d.placeholders(pos, len(values))), args, pos + len(values), nil
}
