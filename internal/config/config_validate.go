// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateData,
		c.validateModel,
		c.validateServer,
		c.validateSecurity,
		c.validateNATS,
		c.validateStore,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.TrainClicksPath == "" {
		return fmt.Errorf("TRAIN_CLICKS_PATH is required")
	}
	if c.Data.TestClicksPath == "" {
		return fmt.Errorf("TEST_CLICKS_PATH is required")
	}
	if c.Data.EmbeddingsPath == "" {
		return fmt.Errorf("EMBEDDINGS_PATH is required")
	}
	if c.Data.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	if c.Data.QueryTimeout <= 0 {
		return fmt.Errorf("DATA_QUERY_TIMEOUT must be positive")
	}
	return nil
}

//nolint:gocyclo // validation needs to check many fields
func (c *Config) validateModel() error {
	m := c.Model
	if m.Alpha < 0 || m.Alpha > 1 {
		return fmt.Errorf("MODEL_ALPHA must be between 0 and 1, got %v", m.Alpha)
	}
	if m.Version == "" {
		return fmt.Errorf("MODEL_VERSION must not be empty")
	}
	if m.Factors < 1 {
		return fmt.Errorf("SVD_FACTORS must be positive")
	}
	if m.Epochs < 1 {
		return fmt.Errorf("SVD_EPOCHS must be positive")
	}
	if m.LearningRate <= 0 {
		return fmt.Errorf("SVD_LEARNING_RATE must be positive")
	}
	if m.Regularization < 0 {
		return fmt.Errorf("SVD_REGULARIZATION must be non-negative")
	}
	if m.InitStdDev < 0 {
		return fmt.Errorf("SVD_INIT_STD_DEV must be non-negative")
	}
	if m.EvalK < 1 {
		return fmt.Errorf("EVAL_K must be positive")
	}
	if m.EvalSampleUsers < 1 {
		return fmt.Errorf("EVAL_SAMPLE_USERS must be positive")
	}
	if m.RetrainInterval < 0 {
		return fmt.Errorf("MODEL_RETRAIN_INTERVAL must be non-negative")
	}
	if m.RetrainInterval > 0 && m.RetrainInterval < time.Minute {
		return fmt.Errorf("MODEL_RETRAIN_INTERVAL must be at least 1m when set")
	}
	if m.TrainingTimeout <= 0 {
		return fmt.Errorf("MODEL_TRAINING_TIMEOUT must be positive")
	}
	if m.PredictionTimeout <= 0 {
		return fmt.Errorf("MODEL_PREDICTION_TIMEOUT must be positive")
	}
	if m.CacheEnabled && m.CacheMaxEntries < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validAuthModes are the accepted security.auth_mode values.
var validAuthModes = map[string]bool{
	"none": true,
	"key":  true,
	"jwt":  true,
}

const minJWTSecretLength = 32

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	s := c.Security
	if !validAuthModes[s.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, key, jwt")
	}
	// Refuse to expose an unauthenticated admin surface in production.
	if s.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}

	switch s.AuthMode {
	case "key":
		if s.FunctionKeyHash == "" {
			return fmt.Errorf("FUNCTION_KEY_HASH is required when AUTH_MODE=key")
		}
		if !strings.HasPrefix(s.FunctionKeyHash, "$2") {
			return fmt.Errorf("FUNCTION_KEY_HASH must be a bcrypt hash")
		}
		if s.AdminKeyHash != "" && !strings.HasPrefix(s.AdminKeyHash, "$2") {
			return fmt.Errorf("ADMIN_KEY_HASH must be a bcrypt hash")
		}
	case "jwt":
		if len(s.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
		}
	}

	if s.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production with authentication enabled")
	}

	if !s.RateLimitDisabled {
		if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
		}
		if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
		}
	}

	if s.EvaluateRate <= 0 {
		return fmt.Errorf("EVALUATE_RATE must be positive")
	}
	if s.EvaluateBurst < 1 {
		return fmt.Errorf("EVALUATE_BURST must be positive")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard CORS policy with authentication
// enabled, which startup logs as a warning outside production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if !c.NATS.EmbeddedServer && c.NATS.URL == "" {
		return fmt.Errorf("NATS_URL is required when NATS_EMBEDDED=false")
	}
	if c.NATS.EmbeddedServer {
		if c.NATS.StoreDir == "" {
			return fmt.Errorf("NATS_STORE_DIR is required for the embedded server")
		}
		if c.NATS.Port < 0 || c.NATS.Port > 65535 {
			return fmt.Errorf("NATS_PORT must be between 0 and 65535")
		}
	}
	if c.NATS.StreamName == "" {
		return fmt.Errorf("NATS_STREAM_NAME must not be empty")
	}
	if c.NATS.StreamRetentionDays < 1 {
		return fmt.Errorf("NATS_RETENTION_DAYS must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.Enabled {
		return nil
	}
	if c.Store.Path == "" {
		return fmt.Errorf("MODEL_STORE_PATH is required when the model store is enabled")
	}
	if c.Store.KeepSnapshots < 1 {
		return fmt.Errorf("MODEL_STORE_KEEP must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// IsProduction reports ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
