// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Model    ModelConfig    `koanf:"model"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	NATS     NATSConfig     `koanf:"nats"`
	Store    StoreConfig    `koanf:"store"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig locates the training inputs and tunes DuckDB.
//
// Click files are CSV (optionally gzip-compressed) or Parquet with columns
// user_id, article_id and category_id. The embeddings file has columns
// article_id and embedding (a list of doubles), one row per article, with
// article ids 0..n-1.
type DataConfig struct {
	TrainClicksPath string        `koanf:"train_clicks_path"`
	TestClicksPath  string        `koanf:"test_clicks_path"`
	EmbeddingsPath  string        `koanf:"embeddings_path"`
	MaxMemory       string        `koanf:"max_memory"`
	Threads         int           `koanf:"threads"` // 0 = NumCPU
	QueryTimeout    time.Duration `koanf:"query_timeout"`
}

// ModelConfig holds the recommender parameters.
type ModelConfig struct {
	// Alpha is the content-based weight in the hybrid blend.
	Alpha float64 `koanf:"alpha"`

	// Version is reported with every recommendation list.
	Version string `koanf:"version"`

	// SVD hyperparameters.
	Factors        int     `koanf:"factors"`
	Epochs         int     `koanf:"epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`
	InitMean       float64 `koanf:"init_mean"`
	InitStdDev     float64 `koanf:"init_std_dev"`
	Biased         bool    `koanf:"biased"`
	Seed           int64   `koanf:"seed"`

	// Hit-rate evaluation defaults.
	EvalK           int   `koanf:"eval_k"`
	EvalSampleUsers int   `koanf:"eval_sample_users"`
	EvalSeed        int64 `koanf:"eval_seed"`

	// EvaluateOnStartup logs hit rate after the first successful build.
	EvaluateOnStartup bool `koanf:"evaluate_on_startup"`

	// RetrainInterval rebuilds the model periodically. 0 disables.
	RetrainInterval time.Duration `koanf:"retrain_interval"`

	TrainingTimeout   time.Duration `koanf:"training_timeout"`
	PredictionTimeout time.Duration `koanf:"prediction_timeout"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds authentication, authorization and throttling.
type SecurityConfig struct {
	// AuthMode is none, key or jwt.
	AuthMode string `koanf:"auth_mode"`

	// FunctionKeyHash is the bcrypt hash of the key accepted in the
	// x-functions-key header (or ?code=) in key mode. Callers presenting it
	// get the viewer role.
	FunctionKeyHash string `koanf:"function_key_hash"`

	// AdminKeyHash is the bcrypt hash of the admin key in key mode.
	AdminKeyHash string `koanf:"admin_key_hash"`

	// JWTSecret signs HS256 bearer tokens in jwt mode. At least 32 bytes.
	JWTSecret string `koanf:"jwt_secret"`
	JWTIssuer string `koanf:"jwt_issuer"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// EvaluateRate and EvaluateBurst throttle hit-rate evaluation, which
	// scores every candidate for every sampled user.
	EvaluateRate  float64 `koanf:"evaluate_rate"` // requests per second
	EvaluateBurst int     `koanf:"evaluate_burst"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig locates the RBAC model and policy. Empty paths use the
// embedded defaults.
type CasbinConfig struct {
	ModelPath   string `koanf:"model_path"`
	PolicyPath  string `koanf:"policy_path"`
	DefaultRole string `koanf:"default_role"`
}

// NATSConfig controls event publishing.
type NATSConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL of an external server. Ignored when EmbeddedServer is set.
	URL string `koanf:"url"`

	EmbeddedServer bool   `koanf:"embedded_server"`
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	StreamName          string `koanf:"stream_name"`
	StreamRetentionDays int    `koanf:"stream_retention_days"`
}

// StoreConfig controls BadgerDB model snapshots.
type StoreConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`

	// KeepSnapshots bounds how many snapshots survive a save.
	KeepSnapshots int `koanf:"keep_snapshots"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
