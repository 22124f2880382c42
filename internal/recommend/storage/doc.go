// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package storage persists trained model parameters in BadgerDB.
//
// A snapshot is the gob encoding of a model state, gzip-compressed and
// protected by a SHA-256 checksum of the uncompressed bytes. Snapshots are
// addressed by a caller-chosen key, normally a fingerprint of the training
// data and hyperparameters, so a restart with unchanged inputs can reuse the
// stored model instead of retraining.
//
// # Key Layout
//
//	snapshot:{key}  gob(storedSnapshot{Metadata, CompressedData})
//	meta:{key}      JSON(ModelMetadata), for listing without decompression
//
// # Usage Example
//
//	store, err := storage.Open(storage.Options{Dir: "/data/models"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Save(ctx, fingerprint, svd.State(), storage.ModelMetadata{Name: "svd"})
//
//	var state algorithms.SVDState
//	meta, err := store.Load(ctx, fingerprint, &state)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // train from scratch
//	}
//
// # Data Integrity
//
// Load decompresses the payload, recomputes its checksum and rejects the
// snapshot with ErrCorrupt on mismatch.
//
// # Thread Safety
//
// All operations run in Badger transactions and are safe for concurrent use.
package storage
