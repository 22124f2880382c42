// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// ModelEngine is the part of recommend.Engine the service drives.
type ModelEngine interface {
	Train(ctx context.Context) error
	Ready() bool
	Evaluate(ctx context.Context, req recommend.EvaluateRequest) (*recommend.EvaluationResult, error)
	PruneCache() int
}

// SnapshotPruner bounds the number of stored model snapshots.
type SnapshotPruner interface {
	Prune(ctx context.Context, keep int) (int, error)
}

// ModelServiceConfig holds configuration for the model service.
type ModelServiceConfig struct {
	// RetrainInterval rebuilds the model periodically. 0 disables.
	RetrainInterval time.Duration

	// StartupRetryInterval is the wait between failed initial builds.
	// Default: 30s.
	StartupRetryInterval time.Duration

	// EvaluateOnStartup logs hit rate after the first successful build.
	EvaluateOnStartup bool

	// KeepSnapshots is passed to the pruner after every build.
	KeepSnapshots int

	// CacheCleanupInterval drops expired cached recommendations
	// periodically. 0 disables.
	CacheCleanupInterval time.Duration
}

// ModelService trains the first model at startup and retrains on a
// schedule. The engine keeps serving the previous model when a retrain
// fails.
type ModelService struct {
	engine ModelEngine
	pruner SnapshotPruner // optional
	config ModelServiceConfig
	logger zerolog.Logger
}

// NewModelService creates a model service. pruner may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelService(engine ModelEngine, pruner SnapshotPruner, cfg ModelServiceConfig, logger zerolog.Logger) *ModelService {
	if cfg.StartupRetryInterval <= 0 {
		cfg.StartupRetryInterval = 30 * time.Second
	}
	return &ModelService{
		engine: engine,
		pruner: pruner,
		config: cfg,
		logger: logger.With().Str("service", "model").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ModelService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("retrain_interval", s.config.RetrainInterval).
		Bool("evaluate_on_startup", s.config.EvaluateOnStartup).
		Msg("model service starting")

	if !s.engine.Ready() {
		if err := s.initialTrain(ctx); err != nil {
			return err
		}
		if s.config.EvaluateOnStartup {
			s.evaluate(ctx)
		}
	}

	// A nil channel never fires, which disables that schedule.
	var retrainC, cleanupC <-chan time.Time
	if s.config.RetrainInterval > 0 {
		ticker := time.NewTicker(s.config.RetrainInterval)
		defer ticker.Stop()
		retrainC = ticker.C
	}
	if s.config.CacheCleanupInterval > 0 {
		ticker := time.NewTicker(s.config.CacheCleanupInterval)
		defer ticker.Stop()
		cleanupC = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model service shutting down")
			return ctx.Err()
		case <-retrainC:
			s.logger.Debug().Msg("scheduled retrain triggered")
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled retrain failed, previous model keeps serving")
			}
		case <-cleanupC:
			s.engine.PruneCache()
		}
	}
}

// initialTrain retries until the first model is published or ctx ends.
func (s *ModelService) initialTrain(ctx context.Context) error {
	for {
		err := s.train(ctx)
		if err == nil || s.engine.Ready() {
			return nil
		}
		s.logger.Error().Err(err).
			Dur("retry_in", s.config.StartupRetryInterval).
			Msg("initial model build failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.StartupRetryInterval):
		}
	}
}

func (s *ModelService) train(ctx context.Context) error {
	err := s.engine.Train(ctx)
	if errors.Is(err, recommend.ErrTrainingInProgress) {
		// A retrain requested over HTTP is already running.
		return nil
	}
	if err != nil {
		return err
	}

	if s.pruner != nil && s.config.KeepSnapshots > 0 {
		removed, err := s.pruner.Prune(ctx, s.config.KeepSnapshots)
		if err != nil {
			s.logger.Warn().Err(err).Msg("snapshot prune failed")
		} else if removed > 0 {
			s.logger.Info().Int("removed", removed).Msg("pruned model snapshots")
		}
	}
	return nil
}

func (s *ModelService) evaluate(ctx context.Context) {
	res, err := s.engine.Evaluate(ctx, recommend.EvaluateRequest{})
	if err != nil {
		s.logger.Warn().Err(err).Msg("startup evaluation failed")
		return
	}
	s.logger.Info().
		Int("k", res.K).
		Int("sampled_users", res.SampledUsers).
		Float64("hit_rate", res.HitRate).
		Msgf("Hit Rate at %d: %.4f", res.K, res.HitRate)
}

// String returns the service name for logging.
func (s *ModelService) String() string {
	return "model-service"
}
