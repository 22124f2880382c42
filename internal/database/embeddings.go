// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/newsreel/internal/metrics"
	"github.com/tomtom215/newsreel/internal/recommend"
)

// GetEmbeddings loads the configured embedding table.
func (db *DB) GetEmbeddings(ctx context.Context) (*recommend.EmbeddingTable, error) {
	return db.LoadEmbeddings(ctx, db.cfg.EmbeddingsPath)
}

// LoadEmbeddings reads one vector per article. Article ids must be exactly
// 0..n-1; a gap or duplicate is an error because the table is indexed by
// id.
func (db *DB) LoadEmbeddings(ctx context.Context, path string) (table *recommend.EmbeddingTable, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("load", "embeddings", time.Since(start), err) }()

	source, err := tableFunction(path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	cols, err := db.columns(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := requireColumns(cols, path, "article_id", "embedding"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(article_id AS BIGINT) AS article_id,
			CAST(embedding AS DOUBLE[]) AS embedding
		FROM %s
		ORDER BY article_id
	`, source)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embeddings %s: %w", path, err)
	}
	defer rows.Close()

	var vectors [][]float64
	for rows.Next() {
		var (
			articleID int64
			raw       interface{}
		)
		if err := rows.Scan(&articleID, &raw); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		if articleID != int64(len(vectors)) {
			return nil, fmt.Errorf("embeddings %s: expected article_id %d, got %d", path, len(vectors), articleID)
		}
		vec, err := toFloat64s(raw)
		if err != nil {
			return nil, fmt.Errorf("embedding for article %d: %w", articleID, err)
		}
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate embeddings %s: %w", path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embeddings %s: no rows", path)
	}

	return recommend.NewEmbeddingTable(vectors)
}

// toFloat64s converts a scanned DuckDB list into a vector.
func toFloat64s(raw interface{}) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		out := make([]float64, len(v))
		for i, elem := range v {
			switch f := elem.(type) {
			case float64:
				out[i] = f
			case float32:
				out[i] = float64(f)
			case nil:
				return nil, fmt.Errorf("element %d is NULL", i)
			default:
				return nil, fmt.Errorf("element %d has type %T", i, elem)
			}
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("embedding is NULL")
	default:
		return nil, fmt.Errorf("unexpected embedding type %T", raw)
	}
}
