// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package database loads recommender training data through DuckDB.
//
// DuckDB reads the click logs and the article embeddings straight from
// their files (CSV, gzip CSV or Parquet), so no import step or schema is
// needed. The connection is in-memory; nothing is written back.
//
// # Inputs
//
// Click files must have the columns user_id, article_id and category_id.
// A click_timestamp column (milliseconds since the epoch) is read when
// present. The embeddings file has one row per article with the columns
// article_id and embedding, where embedding is a list of doubles (a DuckDB
// DOUBLE[] or a "[0.1, 0.2, ...]" string in CSV). Article ids must run
// from 0 to n-1 because the embedding table is indexed by id.
//
// # Usage
//
//	db, err := database.New(&cfg.Data)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	builder, err := pipeline.NewBuilder(db, recommendCfg)
//
// DB implements recommend.DataProvider. Every query runs under the
// configured timeout and is recorded in the duckdb_query_* metrics.
package database
