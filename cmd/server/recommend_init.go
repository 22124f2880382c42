// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/database"
	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/recommend"
	"github.com/tomtom215/newsreel/internal/recommend/pipeline"
	"github.com/tomtom215/newsreel/internal/recommend/storage"
	"github.com/tomtom215/newsreel/internal/supervisor/services"
)

// RecommendComponents holds the recommendation engine and its optional
// snapshot store.
type RecommendComponents struct {
	Engine *recommend.Engine
	Store  *storage.Store
}

// Close releases the snapshot store.
func (c *RecommendComponents) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// buildEngineConfig maps the model section of the application config onto
// the engine configuration.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	m := cfg.Model
	return &recommend.Config{
		Alpha:   m.Alpha,
		Version: m.Version,
		Collaborative: recommend.CollaborativeConfig{
			Factors:        m.Factors,
			Epochs:         m.Epochs,
			LearningRate:   m.LearningRate,
			Regularization: m.Regularization,
			InitMean:       m.InitMean,
			InitStdDev:     m.InitStdDev,
			Biased:         m.Biased,
			Seed:           m.Seed,
		},
		Evaluation: recommend.EvaluationConfig{
			K:           m.EvalK,
			SampleUsers: m.EvalSampleUsers,
			Seed:        m.EvalSeed,
		},
		Limits: recommend.LimitsConfig{
			PredictionTimeout: m.PredictionTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    m.CacheEnabled,
			TTL:        m.CacheTTL,
			MaxEntries: m.CacheMaxEntries,
		},
		Training: recommend.TrainingConfig{
			Timeout: m.TrainingTimeout,
		},
	}
}

// initRecommend creates the engine and wires the model builder to the
// database. Training itself is left to the model service so the HTTP server
// can come up (and report not-ready) while the first build runs.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*RecommendComponents, error) {
	engineCfg := buildEngineConfig(cfg)

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	components := &RecommendComponents{Engine: engine}
	opts := []pipeline.Option{pipeline.WithLogger(logging.WithComponent("pipeline"))}

	if cfg.Store.Enabled {
		store, err := storage.Open(storage.Options{Dir: cfg.Store.Path})
		if err != nil {
			return nil, err
		}
		components.Store = store
		opts = append(opts, pipeline.WithStore(store))
		logger.Info().Str("path", cfg.Store.Path).Msg("Model snapshot store opened")
	}

	builder, err := pipeline.NewBuilder(db, engineCfg, opts...)
	if err != nil {
		_ = components.Close() //nolint:errcheck // already failing
		return nil, err
	}
	engine.SetBuilder(builder)

	logger.Info().
		Float64("alpha", engineCfg.Alpha).
		Int("factors", engineCfg.Collaborative.Factors).
		Int("epochs", engineCfg.Collaborative.Epochs).
		Bool("cache", engineCfg.Cache.Enabled).
		Msg("Recommendation engine initialized")

	return components, nil
}

// snapshotPruner returns the store as a pruner, or nil when snapshots are
// disabled. A typed nil would defeat the nil check in the model service.
func (c *RecommendComponents) snapshotPruner() services.SnapshotPruner {
	if c.Store == nil {
		return nil
	}
	return c.Store
}
