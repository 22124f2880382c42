// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/recommend"
)

// setupTestDB opens an in-memory DuckDB instance reading fixtures from a
// temporary directory.
func setupTestDB(t *testing.T) (*DB, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.DataConfig{
		TrainClicksPath: filepath.Join(dir, "clicks_train.csv"),
		TestClicksPath:  filepath.Join(dir, "clicks_test.csv"),
		EmbeddingsPath:  filepath.Join(dir, "articles_embeddings.csv"),
		MaxMemory:       "256MB",
		Threads:         2,
		QueryTimeout:    30 * time.Second,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db, dir
}

func writeFixture(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := New(nil); err == nil {
			t.Error("New(nil) should fail")
		}
	})

	t.Run("ping", func(t *testing.T) {
		db, _ := setupTestDB(t)
		if err := db.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
		if db.Conn() == nil {
			t.Error("Conn() returned nil")
		}
	})
}

func TestTableFunction(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "a.csv", want: "read_csv_auto('a.csv', header = true)"},
		{path: "a.CSV.GZ", want: "read_csv_auto('a.CSV.GZ', header = true)"},
		{path: "emb.parquet", want: "read_parquet('emb.parquet')"},
		{path: "it's.csv", want: "read_csv_auto('it''s.csv', header = true)"},
		{path: "clicks.json", wantErr: true},
		{path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := tableFunction(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("tableFunction(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("tableFunction(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadClicks(t *testing.T) {
	db, _ := setupTestDB(t)
	writeFixture(t, db.cfg.TrainClicksPath,
		"user_id,article_id,category_id",
		"1,10,100",
		"1,11,100",
		"2,12,200",
		"1,10,100",
	)

	clicks, err := db.GetTrainClicks(context.Background())
	if err != nil {
		t.Fatalf("GetTrainClicks() error = %v", err)
	}

	want := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 100},
		{UserID: 1, ArticleID: 11, CategoryID: 100},
		{UserID: 2, ArticleID: 12, CategoryID: 200},
		{UserID: 1, ArticleID: 10, CategoryID: 100},
	}
	if len(clicks) != len(want) {
		t.Fatalf("got %d clicks, want %d", len(clicks), len(want))
	}
	for i := range want {
		if clicks[i] != want[i] {
			t.Errorf("click[%d] = %+v, want %+v", i, clicks[i], want[i])
		}
	}
}

func TestLoadClicksWithTimestamp(t *testing.T) {
	db, _ := setupTestDB(t)
	writeFixture(t, db.cfg.TestClicksPath,
		"user_id,session_id,click_article_id,article_id,category_id,click_timestamp",
		"5,900,0,42,7,1507029532200",
	)

	clicks, err := db.GetTestClicks(context.Background())
	if err != nil {
		t.Fatalf("GetTestClicks() error = %v", err)
	}
	if len(clicks) != 1 {
		t.Fatalf("got %d clicks, want 1", len(clicks))
	}
	if clicks[0].ArticleID != 42 || clicks[0].CategoryID != 7 {
		t.Errorf("click = %+v", clicks[0])
	}
	want := time.UnixMilli(1507029532200).UTC()
	if !clicks[0].Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", clicks[0].Timestamp, want)
	}
}

func TestLoadClicksErrors(t *testing.T) {
	db, dir := setupTestDB(t)

	missingCol := filepath.Join(dir, "missing.csv")
	writeFixture(t, missingCol, "user_id,article_id", "1,2")

	tests := []struct {
		name string
		path string
	}{
		{"missing column", missingCol},
		{"missing file", filepath.Join(dir, "absent.csv")},
		{"unsupported extension", filepath.Join(dir, "clicks.xlsx")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.LoadClicks(context.Background(), tt.path); err == nil {
				t.Errorf("LoadClicks(%s) should fail", tt.name)
			}
		})
	}
}

func TestLoadEmbeddings(t *testing.T) {
	db, _ := setupTestDB(t)
	writeFixture(t, db.cfg.EmbeddingsPath,
		"article_id,embedding",
		`1,"[0.0, 1.0, 0.5]"`,
		`0,"[1.0, 0.0, 0.25]"`,
	)

	table, err := db.GetEmbeddings(context.Background())
	if err != nil {
		t.Fatalf("GetEmbeddings() error = %v", err)
	}
	if table.Len() != 2 || table.Dim() != 3 {
		t.Fatalf("table = %d x %d, want 2 x 3", table.Len(), table.Dim())
	}

	vec, ok := table.Vector(1)
	if !ok {
		t.Fatal("article 1 missing")
	}
	want := []float64{0.0, 1.0, 0.5}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("Vector(1)[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestLoadEmbeddingsErrors(t *testing.T) {
	db, dir := setupTestDB(t)

	gap := filepath.Join(dir, "gap.csv")
	writeFixture(t, gap,
		"article_id,embedding",
		`0,"[1.0, 0.0]"`,
		`2,"[0.0, 1.0]"`,
	)
	ragged := filepath.Join(dir, "ragged.csv")
	writeFixture(t, ragged,
		"article_id,embedding",
		`0,"[1.0, 0.0]"`,
		`1,"[0.0]"`,
	)
	empty := filepath.Join(dir, "empty.csv")
	writeFixture(t, empty, "article_id,embedding")

	for name, path := range map[string]string{"gap": gap, "ragged": ragged, "empty": empty} {
		t.Run(name, func(t *testing.T) {
			if _, err := db.LoadEmbeddings(context.Background(), path); err == nil {
				t.Errorf("LoadEmbeddings(%s) should fail", name)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	db, _ := setupTestDB(t)
	writeFixture(t, db.cfg.TrainClicksPath, "user_id,article_id,category_id", "1,1,1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := db.GetTrainClicks(ctx); err == nil {
		t.Fatal("GetTrainClicks() with cancelled context should fail")
	}
}

func TestToFloat64s(t *testing.T) {
	if _, err := toFloat64s(nil); err == nil {
		t.Error("nil should fail")
	}
	if _, err := toFloat64s([]interface{}{1.0, nil}); err == nil {
		t.Error("NULL element should fail")
	}
	got, err := toFloat64s([]interface{}{float32(0.5), 2.0})
	if err != nil || got[0] != 0.5 || got[1] != 2.0 {
		t.Errorf("toFloat64s() = %v, %v", got, err)
	}
}
