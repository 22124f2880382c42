// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/cache"
	"github.com/tomtom215/newsreel/internal/metrics"
)

// Engine serves recommendations from the current model. It is safe for
// concurrent use: requests read an immutable *Model through an atomic
// pointer while Train builds and publishes the next one.
type Engine struct {
	config *Config
	logger zerolog.Logger

	model     atomic.Pointer[Model]
	publishMu sync.Mutex

	// Training state
	training  atomic.Bool
	trainMu   sync.Mutex
	lastError string

	builder  ModelBuilder
	notifier Notifier

	cache *cache.LRUCache[[]int]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Request is a recommendation request.
type Request struct {
	UserID int
	K      int

	// RequestID correlates logs and events. Generated when empty.
	RequestID string
}

// Response is a recommendation result.
type Response struct {
	UserID          int   `json:"user_id"`
	Recommendations []int `json:"recommendations"`

	// ModelType is the scorer name, always "hybrid".
	ModelType string `json:"model_type"`

	// Version is the configured API version string.
	Version string `json:"version"`

	ModelVersion int   `json:"model_version"`
	CacheHit     bool  `json:"cache_hit"`
	LatencyMS    int64 `json:"latency_ms"`
}

// EvaluateRequest overrides the configured evaluation parameters. Nil
// fields take the configured defaults. A zero SampleUsers samples every
// held-out user.
type EvaluateRequest struct {
	K           *int   `json:"k,omitempty"`
	SampleUsers *int   `json:"sample_users,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}

// NewEngine creates a recommendation engine with no model loaded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRUCache[[]int](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetBuilder sets the builder Train uses.
func (e *Engine) SetBuilder(b ModelBuilder) {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()
	e.builder = b
}

// SetNotifier sets the receiver of engine events. Call before serving.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Model returns the serving model, or nil before the first training.
func (e *Engine) Model() *Model {
	return e.model.Load()
}

// Ready reports whether a model is serving.
func (e *Engine) Ready() bool {
	return e.model.Load() != nil
}

// SetModel publishes m as the next model version.
func (e *Engine) SetModel(m *Model) {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	prev := e.model.Load()
	m.Version = 1
	if prev != nil {
		m.Version = prev.Version + 1
	}
	if m.TrainedAt.IsZero() {
		m.TrainedAt = time.Now()
	}
	e.model.Store(m)

	if e.cache != nil {
		e.cache.Clear()
	}
	metrics.SetModelInfo(m.Version, m.TrainUsers, len(m.Candidates))

	e.logger.Info().
		Int("version", m.Version).
		Int("train_clicks", m.TrainClicks).
		Int("train_users", m.TrainUsers).
		Int("candidates", len(m.Candidates)).
		Bool("from_snapshot", m.FromSnapshot).
		Msg("model published")
}

// Train builds a new model with the configured builder and publishes it. Only
// one training runs at a time; a concurrent call returns
// ErrTrainingInProgress. The previous model keeps serving on failure.
func (e *Engine) Train(ctx context.Context) error {
	if !e.training.CompareAndSwap(false, true) {
		return ErrTrainingInProgress
	}
	defer e.training.Store(false)
	return e.train(ctx)
}

// StartTrain claims the training slot and runs Train in the background. It
// returns false without starting anything when a training is already in
// progress. Failures are logged and recorded in Status.
func (e *Engine) StartTrain(ctx context.Context) bool {
	if !e.training.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer e.training.Store(false)
		_ = e.train(ctx)
	}()
	return true
}

// train runs one build. The caller holds the training slot.
func (e *Engine) train(ctx context.Context) error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	if e.builder == nil {
		e.lastError = errNoBuilder.Error()
		return errNoBuilder
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	start := time.Now()
	e.logger.Info().Msg("starting model training")

	m, err := e.builder.Build(ctx)
	metrics.RecordTraining(time.Since(start), err)
	if err != nil {
		e.lastError = err.Error()
		e.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("model training failed")
		return fmt.Errorf("build model: %w", err)
	}
	e.lastError = ""

	e.SetModel(m)
	e.logger.Info().Dur("duration", time.Since(start)).Int("version", m.Version).Msg("model training complete")

	if e.notifier != nil {
		e.notifier.NotifyModelTrained(ctx, m.Status())
	}
	return nil
}

// IsTraining reports whether a training run is in progress.
func (e *Engine) IsTraining() bool {
	return e.training.Load()
}

// Status describes the serving model and the training state.
func (e *Engine) Status() ModelStatus {
	var status ModelStatus
	if m := e.model.Load(); m != nil {
		status = m.Status()
	}
	status.Training = e.IsTraining()

	if e.trainMu.TryLock() {
		status.LastError = e.lastError
		e.trainMu.Unlock()
	}
	return status
}

// Recommend returns the top req.K articles for req.UserID. It returns
// ErrModelNotReady before the first model is published and an
// UnknownUserError for users absent from training.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Int("k", req.K).
		Logger()

	m := e.model.Load()
	if m == nil {
		metrics.RecordRecommendation("not_ready", time.Since(start))
		return nil, ErrModelNotReady
	}

	key := cacheKey(m.Version, req.UserID, req.K)
	if e.cache != nil {
		if ids, ok := e.cache.Get(key); ok {
			metrics.RecordRecommendCache(true)
			resp := e.buildResponse(m, req, ids, true, start)
			e.finish(ctx, req, resp, time.Since(start), logger)
			return resp, nil
		}
		metrics.RecordRecommendCache(false)
	}

	predictCtx, cancel := context.WithTimeout(ctx, e.config.Limits.PredictionTimeout)
	defer cancel()

	ids, err := Predict(predictCtx, m.Hybrid, req.UserID, req.K)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			metrics.RecordRecommendation("unknown_user", time.Since(start))
			logger.Debug().Msg("unknown user")
			return nil, err
		}
		e.errorCount.Add(1)
		metrics.RecordRecommendation("error", time.Since(start))
		logger.Error().Err(err).Msg("prediction failed")
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(key, ids)
	}

	resp := e.buildResponse(m, req, ids, false, start)
	e.finish(ctx, req, resp, time.Since(start), logger)
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(m *Model, req Request, ids []int, cacheHit bool, start time.Time) *Response {
	out := make([]int, len(ids))
	copy(out, ids)
	return &Response{
		UserID:          req.UserID,
		Recommendations: out,
		ModelType:       m.Hybrid.Name(),
		Version:         e.config.Version,
		ModelVersion:    m.Version,
		CacheHit:        cacheHit,
		LatencyMS:       time.Since(start).Milliseconds(),
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) finish(ctx context.Context, req Request, resp *Response, elapsed time.Duration, logger zerolog.Logger) {
	metrics.RecordRecommendation("success", elapsed)
	logger.Debug().
		Int("returned", len(resp.Recommendations)).
		Bool("cache_hit", resp.CacheHit).
		Int64("latency_ms", resp.LatencyMS).
		Msg("recommendation complete")

	if e.notifier != nil {
		e.notifier.NotifyRecommendation(ctx, RecommendationServed{
			RequestID:    req.RequestID,
			UserID:       req.UserID,
			K:            req.K,
			ArticleIDs:   resp.Recommendations,
			ModelVersion: resp.ModelVersion,
			CacheHit:     resp.CacheHit,
			ServedAt:     time.Now(),
		})
	}
}

// Evaluate runs a hit-rate evaluation of the serving model on its held-out
// clicks.
func (e *Engine) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluationResult, error) {
	m := e.model.Load()
	if m == nil {
		return nil, ErrModelNotReady
	}

	k, sampleUsers, seed := e.config.Evaluation.K, e.config.Evaluation.SampleUsers, e.config.Evaluation.Seed
	if req.K != nil {
		k = *req.K
	}
	if req.SampleUsers != nil {
		sampleUsers = *req.SampleUsers
	}
	if req.Seed != nil {
		seed = *req.Seed
	}

	start := time.Now()
	res, err := EvaluateHitRate(ctx, m.Hybrid, m.Test, k, sampleUsers, seed)
	if err != nil {
		return nil, err
	}
	metrics.RecordHitRate(res.K, res.HitRate)

	e.logger.Info().
		Int("version", m.Version).
		Int("k", res.K).
		Int("sampled_users", res.SampledUsers).
		Int("hits", res.Hits).
		Int("unknown_users", res.UnknownUsers).
		Float64("hit_rate", res.HitRate).
		Dur("duration", time.Since(start)).
		Msg("evaluation complete")

	return res, nil
}

// PruneCache drops expired cached recommendations and returns how many were
// removed.
func (e *Engine) PruneCache() int {
	if e.cache == nil {
		return 0
	}
	removed := e.cache.CleanupExpired()
	if removed > 0 {
		e.logger.Debug().Int("removed", removed).Msg("pruned expired recommendations")
	}
	return removed
}

// Stats returns request counters and cache statistics.
func (e *Engine) Stats() EngineStats {
	s := EngineStats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
	if e.cache != nil {
		s.Cache = e.cache.Stats()
	}
	return s
}

// EngineStats holds engine counters.
type EngineStats struct {
	Requests int64       `json:"requests"`
	Errors   int64       `json:"errors"`
	Cache    cache.Stats `json:"cache"`
}

var errNoBuilder = errors.New("no model builder configured")

func cacheKey(version, userID, k int) string {
	return strconv.Itoa(version) + ":" + strconv.Itoa(userID) + ":" + strconv.Itoa(k)
}
