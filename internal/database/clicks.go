// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/newsreel/internal/metrics"
	"github.com/tomtom215/newsreel/internal/recommend"
)

var _ recommend.DataProvider = (*DB)(nil)

// GetTrainClicks loads the configured training click log.
func (db *DB) GetTrainClicks(ctx context.Context) ([]recommend.ClickEvent, error) {
	return db.LoadClicks(ctx, db.cfg.TrainClicksPath)
}

// GetTestClicks loads the configured held-out click log.
func (db *DB) GetTestClicks(ctx context.Context) ([]recommend.ClickEvent, error) {
	return db.LoadClicks(ctx, db.cfg.TestClicksPath)
}

// LoadClicks reads a click file in file order. Rows with a NULL id are
// skipped.
func (db *DB) LoadClicks(ctx context.Context, path string) (clicks []recommend.ClickEvent, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("load", "clicks", time.Since(start), err) }()

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
	if err := requireColumns(cols, path, "user_id", "article_id", "category_id"); err != nil {
		return nil, err
	}

	timestampExpr := "NULL::TIMESTAMP"
	if cols["click_timestamp"] {
		timestampExpr = "epoch_ms(CAST(click_timestamp AS BIGINT))"
	}

	// Row order matters: SGD visits ratings in input order.
	query := fmt.Sprintf(`
		SELECT
			CAST(user_id AS BIGINT),
			CAST(article_id AS BIGINT),
			CAST(category_id AS BIGINT),
			%s
		FROM %s
		WHERE user_id IS NOT NULL
		  AND article_id IS NOT NULL
		  AND category_id IS NOT NULL
	`, timestampExpr, source)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query clicks %s: %w", path, err)
	}
	defer rows.Close()

	clicks = make([]recommend.ClickEvent, 0, 1024)
	for rows.Next() {
		var (
			userID, articleID, categoryID int64
			ts                            sql.NullTime
		)
		if err := rows.Scan(&userID, &articleID, &categoryID, &ts); err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		click := recommend.ClickEvent{
			UserID:     int(userID),
			ArticleID:  int(articleID),
			CategoryID: int(categoryID),
		}
		if ts.Valid {
			click.Timestamp = ts.Time.UTC()
		}
		clicks = append(clicks, click)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clicks %s: %w", path, err)
	}
	return clicks, nil
}
