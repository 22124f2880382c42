// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage
const (
	snapshotKeyPrefix = "snapshot:"
	metaKeyPrefix     = "meta:"
)

var (
	// ErrNotFound is returned when no snapshot exists for a key.
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorrupt is returned when a snapshot fails its checksum.
	ErrCorrupt = errors.New("snapshot corrupt")
)

// ModelMetadata describes a stored snapshot.
type ModelMetadata struct {
	// Key is the snapshot key, typically the training fingerprint.
	Key string `json:"key"`

	// Name is the model kind (e.g., "svd").
	Name string `json:"name"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is set by Save.
	SavedAt time.Time `json:"saved_at"`

	// RatingCount is the number of training rows.
	RatingCount int `json:"rating_count"`

	// UserCount and ItemCount are the trained dimensions.
	UserCount int `json:"user_count"`
	ItemCount int `json:"item_count"`

	// Checksum is the SHA-256 of the uncompressed state, set by Save.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed size, set by Save.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// storedSnapshot is the value stored under a snapshot key.
type storedSnapshot struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Options configures Open.
type Options struct {
	// Dir is the Badger directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps all data in memory, for tests.
	InMemory bool
}

// Store manages model snapshots.
type Store struct {
	db     *badger.DB
	ownsDB bool
}

// Open opens or creates a Badger database for snapshots.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &Store{db: db, ownsDB: true}, nil
}

// New wraps an already opened database. Close does not close db.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close releases the database if Open created it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// Save stores state under key, replacing any previous snapshot.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, key string, state interface{}, meta ModelMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.Key = key
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	var record bytes.Buffer
	if err := gob.NewEncoder(&record).Encode(storedSnapshot{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotKeyPrefix+key), record.Bytes()); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		if err := txn.Set([]byte(metaKeyPrefix+key), metaJSON); err != nil {
			return fmt.Errorf("set metadata: %w", err)
		}
		return nil
	})
}

// Load decodes the snapshot stored under key into target, which must be a
// pointer to the type passed to Save.
func (s *Store) Load(ctx context.Context, key string, target interface{}) (*ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sf storedSnapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&sf)
		})
	})
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read decompressed data: %v", ErrCorrupt, err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", ErrCorrupt, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &sf.Metadata, nil
}

// List returns metadata for every snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var models []ModelMetadata
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(metaKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var meta ModelMetadata
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return fmt.Errorf("decode metadata: %w", err)
			}
			models = append(models, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].SavedAt.After(models[j].SavedAt)
	})
	return models, nil
}

// Delete removes the snapshot stored under key. Deleting a missing key is
// not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(snapshotKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		if err := txn.Delete([]byte(metaKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete metadata: %w", err)
		}
		return nil
	})
}

// Prune keeps the keep most recently saved snapshots and deletes the rest.
// It returns the number of snapshots removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	models, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(models) <= keep {
		return 0, nil
	}

	removed := 0
	for _, meta := range models[keep:] {
		if err := s.Delete(ctx, meta.Key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
