// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Alpha is the weight of the content-based scorer in the hybrid blend.
	// Default: 0.5.
	Alpha float64 `json:"alpha"`

	// Version is reported to clients alongside every recommendation list.
	// Default: "1.0".
	Version string `json:"version"`

	// Collaborative contains the latent-factor model hyperparameters.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Evaluation contains the defaults for hit-rate evaluation.
	Evaluation EvaluationConfig `json:"evaluation"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`

	// Training contains training limits.
	Training TrainingConfig `json:"training"`
}

// CollaborativeConfig holds biased SVD parameters.
type CollaborativeConfig struct {
	// Factors is the number of latent factors. Default: 100.
	Factors int `json:"factors"`

	// Epochs is the number of SGD passes over the ratings. Default: 20.
	Epochs int `json:"epochs"`

	// LearningRate is the SGD step size. Default: 0.005.
	LearningRate float64 `json:"learning_rate"`

	// Regularization is the L2 penalty on biases and factors. Default: 0.02.
	Regularization float64 `json:"regularization"`

	// InitMean is the mean of the factor initialization. Default: 0.
	InitMean float64 `json:"init_mean"`

	// InitStdDev is the standard deviation of the factor initialization.
	// Default: 0.1.
	InitStdDev float64 `json:"init_std_dev"`

	// Biased enables the user and item bias terms. Default: true.
	Biased bool `json:"biased"`

	// Seed makes factor initialization reproducible. Default: 42.
	Seed int64 `json:"seed"`
}

// EvaluationConfig holds hit-rate defaults.
type EvaluationConfig struct {
	// K is the list length evaluated. Default: 5.
	K int `json:"k"`

	// SampleUsers is the number of held-out users sampled. Default: 200.
	SampleUsers int `json:"sample_users"`

	// Seed drives user sampling. Default: 42.
	Seed int64 `json:"seed"`
}

// LimitsConfig holds request limits.
type LimitsConfig struct {
	// PredictionTimeout bounds a single prediction. Default: 10s.
	PredictionTimeout time.Duration `json:"prediction_timeout"`
}

// CacheConfig holds recommendation result caching parameters.
type CacheConfig struct {
	// Enabled turns the result cache on. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached list is served. Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size. Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// TrainingConfig holds training limits.
type TrainingConfig struct {
	// Timeout bounds one model build. Default: 30m.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Alpha:   0.5,
		Version: "1.0",
		Collaborative: CollaborativeConfig{
			Factors:        100,
			Epochs:         20,
			LearningRate:   0.005,
			Regularization: 0.02,
			InitMean:       0,
			InitStdDev:     0.1,
			Biased:         true,
			Seed:           42,
		},
		Evaluation: EvaluationConfig{
			K:           5,
			SampleUsers: 200,
			Seed:        42,
		},
		Limits: LimitsConfig{
			PredictionTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		Training: TrainingConfig{
			Timeout: 30 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %f", c.Alpha)
	}
	if c.Version == "" {
		return fmt.Errorf("version must not be empty")
	}

	if c.Collaborative.Factors < 1 {
		return fmt.Errorf("collaborative.factors must be positive, got %d", c.Collaborative.Factors)
	}
	if c.Collaborative.Epochs < 1 {
		return fmt.Errorf("collaborative.epochs must be positive, got %d", c.Collaborative.Epochs)
	}
	if c.Collaborative.LearningRate <= 0 {
		return fmt.Errorf("collaborative.learning_rate must be positive, got %f", c.Collaborative.LearningRate)
	}
	if c.Collaborative.Regularization < 0 {
		return fmt.Errorf("collaborative.regularization must be non-negative, got %f", c.Collaborative.Regularization)
	}
	if c.Collaborative.InitStdDev < 0 {
		return fmt.Errorf("collaborative.init_std_dev must be non-negative, got %f", c.Collaborative.InitStdDev)
	}

	if c.Evaluation.K < 1 {
		return fmt.Errorf("evaluation.k must be positive, got %d", c.Evaluation.K)
	}
	if c.Evaluation.SampleUsers < 1 {
		return fmt.Errorf("evaluation.sample_users must be positive, got %d", c.Evaluation.SampleUsers)
	}

	if c.Limits.PredictionTimeout <= 0 {
		return fmt.Errorf("limits.prediction_timeout must be positive, got %v", c.Limits.PredictionTimeout)
	}

	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
