// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// tableFunction returns the DuckDB table function that scans path.
func tableFunction(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty data path")
	}

	lower := strings.ToLower(path)
	quoted := quoteLiteral(path)
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return fmt.Sprintf("read_parquet(%s)", quoted), nil
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".csv.gz"):
		return fmt.Sprintf("read_csv_auto(%s, header = true)", quoted), nil
	case strings.HasSuffix(lower, ".tsv"):
		return fmt.Sprintf("read_csv_auto(%s, header = true, delim = '\t')", quoted), nil
	default:
		return "", fmt.Errorf("unsupported data file %q: want .csv, .csv.gz, .tsv or .parquet", filepath.Base(path))
	}
}

// quoteLiteral renders s as a SQL string literal. Table function arguments
// cannot be bound as parameters.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// columns returns the lower-cased column names produced by source.
func (db *DB) columns(ctx context.Context, source string) (map[string]bool, error) {
	rows, err := db.conn.QueryContext(ctx, "DESCRIBE SELECT * FROM "+source)
	if err != nil {
		return nil, fmt.Errorf("describe source: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describe columns: %w", err)
	}

	names := make(map[string]bool)
	dest := make([]interface{}, len(cols))
	for rows.Next() {
		var name string
		dest[0] = &name
		for i := 1; i < len(dest); i++ {
			dest[i] = new(interface{})
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan column description: %w", err)
		}
		names[strings.ToLower(name)] = true
	}
	return names, rows.Err()
}

// requireColumns reports the first missing column.
func requireColumns(have map[string]bool, path string, want ...string) error {
	for _, col := range want {
		if !have[col] {
			return fmt.Errorf("%s: missing column %q", filepath.Base(path), col)
		}
	}
	return nil
}
