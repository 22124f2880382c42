// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/logging"
)

// DB wraps an in-memory DuckDB connection.
type DB struct {
	conn *sql.DB
	cfg  *config.DataConfig
}

// New opens an in-memory DuckDB instance tuned by cfg.
func New(cfg *config.DataConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("data config is required")
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "2GB"
	}

	// Extension autoloading stays off so startup never blocks on a download.
	connStr := fmt.Sprintf("?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Debug().
		Int("threads", numThreads).
		Str("max_memory", maxMemory).
		Msg("DuckDB opened")
	return db, nil
}

// configureConnectionPool sizes the pool for parallel file scans.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// queryContext bounds ctx by the configured query timeout.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return context.WithTimeout(ctx, timeout)
}

// closeQuietly closes a resource in an error path where the close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
