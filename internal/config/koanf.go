// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/newsreel/config.yaml",
	"/etc/newsreel/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			TrainClicksPath: "data/clicks_train.csv",
			TestClicksPath:  "data/clicks_test.csv",
			EmbeddingsPath:  "data/articles_embeddings.parquet",
			MaxMemory:       "2GB",
			Threads:         0,
			QueryTimeout:    5 * time.Minute,
		},
		Model: ModelConfig{
			Alpha:             0.5,
			Version:           "1.0",
			Factors:           100,
			Epochs:            20,
			LearningRate:      0.005,
			Regularization:    0.02,
			InitMean:          0,
			InitStdDev:        0.1,
			Biased:            true,
			Seed:              42,
			EvalK:             5,
			EvalSampleUsers:   200,
			EvalSeed:          42,
			EvaluateOnStartup: false,
			RetrainInterval:   0,
			TrainingTimeout:   30 * time.Minute,
			PredictionTimeout: 10 * time.Second,
			CacheEnabled:      true,
			CacheTTL:          5 * time.Minute,
			CacheMaxEntries:   10000,
		},
		Server: ServerConfig{
			Port:            7071,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			AuthMode:        "none",
			JWTIssuer:       "newsreel",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			EvaluateRate:    0.2,
			EvaluateBurst:   1,
			Casbin: CasbinConfig{
				DefaultRole: "viewer",
			},
		},
		NATS: NATSConfig{
			Enabled:             false,
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      true,
			Host:                "127.0.0.1",
			Port:                4222,
			StoreDir:            "/data/nats/jetstream",
			MaxMemory:           256 << 20,
			MaxStore:            1 << 30,
			StreamName:          "NEWSREEL_EVENTS",
			StreamRetentionDays: 7,
		},
		Store: StoreConfig{
			Enabled:       true,
			Path:          "/data/models",
			KeepSnapshots: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers defaults, the config file and environment variables,
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Data
	"train_clicks_path":  "data.train_clicks_path",
	"test_clicks_path":   "data.test_clicks_path",
	"embeddings_path":    "data.embeddings_path",
	"duckdb_max_memory":  "data.max_memory",
	"duckdb_threads":     "data.threads",
	"data_query_timeout": "data.query_timeout",

	// Model
	"model_alpha":              "model.alpha",
	"model_version":            "model.version",
	"svd_factors":              "model.factors",
	"svd_epochs":               "model.epochs",
	"svd_learning_rate":        "model.learning_rate",
	"svd_regularization":       "model.regularization",
	"svd_init_mean":            "model.init_mean",
	"svd_init_std_dev":         "model.init_std_dev",
	"svd_biased":               "model.biased",
	"svd_seed":                 "model.seed",
	"eval_k":                   "model.eval_k",
	"eval_sample_users":        "model.eval_sample_users",
	"eval_seed":                "model.eval_seed",
	"evaluate_on_startup":      "model.evaluate_on_startup",
	"model_retrain_interval":   "model.retrain_interval",
	"model_training_timeout":   "model.training_timeout",
	"model_prediction_timeout": "model.prediction_timeout",
	"recommend_cache_enabled":  "model.cache_enabled",
	"recommend_cache_ttl":      "model.cache_ttl",
	"recommend_cache_size":     "model.cache_max_entries",

	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"auth_mode":           "security.auth_mode",
	"function_key_hash":   "security.function_key_hash",
	"admin_key_hash":      "security.admin_key_hash",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"evaluate_rate":       "security.evaluate_rate",
	"evaluate_burst":      "security.evaluate_burst",
	"casbin_model_path":   "security.casbin.model_path",
	"casbin_policy_path":  "security.casbin.policy_path",
	"casbin_default_role": "security.casbin.default_role",

	// NATS
	"nats_enabled":        "nats.enabled",
	"nats_url":            "nats.url",
	"nats_embedded":       "nats.embedded_server",
	"nats_host":           "nats.host",
	"nats_port":           "nats.port",
	"nats_store_dir":      "nats.store_dir",
	"nats_max_memory":     "nats.max_memory",
	"nats_max_store":      "nats.max_store",
	"nats_stream_name":    "nats.stream_name",
	"nats_retention_days": "nats.stream_retention_days",

	// Model store
	"model_store_enabled": "store.enabled",
	"model_store_path":    "store.path",
	"model_store_keep":    "store.keep_snapshots",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps TRAIN_CLICKS_PATH to data.train_clicks_path and so
// on. Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
