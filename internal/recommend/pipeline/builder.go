// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/metrics"
	"github.com/tomtom215/newsreel/internal/recommend"
	"github.com/tomtom215/newsreel/internal/recommend/algorithms"
	"github.com/tomtom215/newsreel/internal/recommend/storage"
)

// fingerprintVersion changes whenever the rating construction or the SVD
// state layout changes, invalidating every stored snapshot.
const fingerprintVersion = "svd-v1"

// Builder implements recommend.ModelBuilder.
type Builder struct {
	provider recommend.DataProvider
	store    *storage.Store
	config   *recommend.Config
	logger   zerolog.Logger
}

var _ recommend.ModelBuilder = (*Builder)(nil)

// Option configures a Builder.
type Option func(*Builder)

// WithStore enables snapshot reuse.
func WithStore(store *storage.Store) Option {
	return func(b *Builder) {
		b.store = store
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger.With().Str("component", "pipeline").Logger()
	}
}

// NewBuilder creates a builder. A nil cfg uses recommend.DefaultConfig.
func NewBuilder(provider recommend.DataProvider, cfg *recommend.Config, opts ...Option) (*Builder, error) {
	if provider == nil {
		return nil, errors.New("data provider is required")
	}
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	b := &Builder{
		provider: provider,
		config:   cfg.Clone(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// SVDConfig maps the collaborative section of cfg onto algorithm parameters.
// Ratings are category shares, so the scale is fixed to [0, 1].
func SVDConfig(cfg recommend.CollaborativeConfig) algorithms.SVDConfig {
	return algorithms.SVDConfig{
		Factors:        cfg.Factors,
		Epochs:         cfg.Epochs,
		LearningRate:   cfg.LearningRate,
		Regularization: cfg.Regularization,
		InitMean:       cfg.InitMean,
		InitStdDev:     cfg.InitStdDev,
		Biased:         cfg.Biased,
		Seed:           cfg.Seed,
		RatingMin:      0,
		RatingMax:      1,
	}
}

// Build loads the data and returns a fully trained model.
func (b *Builder) Build(ctx context.Context) (*recommend.Model, error) {
	start := time.Now()

	train, err := b.provider.GetTrainClicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load train clicks: %w", err)
	}
	test, err := b.provider.GetTestClicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load test clicks: %w", err)
	}
	table, err := b.provider.GetEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	if table == nil {
		return nil, &recommend.InputValidationError{Field: "embeddings", Reason: "provider returned no embedding table"}
	}

	b.logger.Info().
		Int("train_clicks", len(train)).
		Int("test_clicks", len(test)).
		Int("embeddings", table.Len()).
		Int("embedding_dim", table.Dim()).
		Msg("Loaded training data")

	candidates := recommend.CandidateSet(test)

	content, err := algorithms.NewContentBased(ctx, train, candidates, table)
	if err != nil {
		return nil, fmt.Errorf("build content scorer: %w", err)
	}

	svdCfg := SVDConfig(b.config.Collaborative)
	fingerprint := Fingerprint(train, svdCfg)

	svd, fromSnapshot, err := b.collaborativeModel(ctx, train, svdCfg, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("build collaborative scorer: %w", err)
	}
	collaborative := algorithms.NewCollaborativeFromModel(svd, candidates)

	model, err := recommend.NewModel(content, collaborative, b.config.Alpha, train, test)
	if err != nil {
		return nil, err
	}
	model.Fingerprint = fingerprint
	model.FromSnapshot = fromSnapshot

	b.logger.Info().
		Str("fingerprint", shortFingerprint(fingerprint)).
		Bool("from_snapshot", fromSnapshot).
		Int("users", svd.NumUsers()).
		Int("items", svd.NumItems()).
		Int("candidates", len(candidates)).
		Dur("duration", time.Since(start)).
		Msg("Model built")

	return model, nil
}

// collaborativeModel restores the SVD for fingerprint from the store, or
// fits and saves it. Store failures are logged and never fail the build.
func (b *Builder) collaborativeModel(ctx context.Context, train []recommend.ClickEvent, cfg algorithms.SVDConfig, fingerprint string) (*algorithms.SVD, bool, error) {
	if b.store != nil {
		if svd, ok := b.loadSnapshot(ctx, fingerprint); ok {
			return svd, true, nil
		}
	}

	start := time.Now()
	ratings := recommend.BuildRatings(train)
	svd, err := algorithms.FitSVD(ctx, ratings, cfg)
	if err != nil {
		return nil, false, err
	}
	elapsed := time.Since(start)

	if b.store != nil {
		meta := storage.ModelMetadata{
			Name:               "svd",
			TrainedAt:          time.Now(),
			RatingCount:        len(ratings),
			UserCount:          svd.NumUsers(),
			ItemCount:          svd.NumItems(),
			TrainingDurationMS: elapsed.Milliseconds(),
		}
		if err := b.store.Save(ctx, fingerprint, svd.State(), meta); err != nil {
			metrics.RecordSnapshot("save", "error")
			b.logger.Warn().Err(err).Str("fingerprint", shortFingerprint(fingerprint)).Msg("Failed to save model snapshot")
		} else {
			metrics.RecordSnapshot("save", "success")
		}
	}
	return svd, false, nil
}

func (b *Builder) loadSnapshot(ctx context.Context, fingerprint string) (*algorithms.SVD, bool) {
	var state algorithms.SVDState
	meta, err := b.store.Load(ctx, fingerprint, &state)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.RecordSnapshot("load", "miss")
		return nil, false
	}
	if err != nil {
		metrics.RecordSnapshot("load", "error")
		b.logger.Warn().Err(err).Str("fingerprint", shortFingerprint(fingerprint)).Msg("Ignoring unreadable model snapshot")
		return nil, false
	}

	svd, err := algorithms.NewSVDFromState(state)
	if err != nil {
		metrics.RecordSnapshot("load", "error")
		b.logger.Warn().Err(err).Str("fingerprint", shortFingerprint(fingerprint)).Msg("Ignoring invalid model snapshot")
		return nil, false
	}

	metrics.RecordSnapshot("load", "hit")
	b.logger.Info().
		Str("fingerprint", shortFingerprint(fingerprint)).
		Time("trained_at", meta.TrainedAt).
		Int64("size_bytes", meta.SizeBytes).
		Msg("Restored model snapshot")
	return svd, true
}

// Fingerprint hashes the ordered train clicks together with the SVD
// parameters. Click order matters because SGD visits rows in input order.
func Fingerprint(train []recommend.ClickEvent, cfg algorithms.SVDConfig) string {
	h := sha256.New()
	_, _ = h.Write([]byte(fingerprintVersion)) //nolint:errcheck // hash writes never fail

	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:]) //nolint:errcheck // hash writes never fail
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:]) //nolint:errcheck // hash writes never fail
	}

	writeInt(int64(cfg.Factors))
	writeInt(int64(cfg.Epochs))
	writeFloat(cfg.LearningRate)
	writeFloat(cfg.Regularization)
	writeFloat(cfg.InitMean)
	writeFloat(cfg.InitStdDev)
	if cfg.Biased {
		writeInt(1)
	} else {
		writeInt(0)
	}
	writeInt(cfg.Seed)
	writeFloat(cfg.RatingMin)
	writeFloat(cfg.RatingMax)

	writeInt(int64(len(train)))
	for _, c := range train {
		writeInt(int64(c.UserID))
		writeInt(int64(c.ArticleID))
		writeInt(int64(c.CategoryID))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
