// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package config loads Newsreel configuration.

Values are layered with koanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/newsreel/config.yaml
 3. Environment variables listed in envMappings

Comma-separated environment values are split for slice fields such as
security.cors_origins. Load validates the merged result and returns the
first problem found.

# Sections

  - data: click logs and embeddings read through DuckDB
  - model: blend weight, SVD hyperparameters, evaluation and caching
  - server: HTTP listener
  - security: authentication mode, CORS, rate limits, Casbin policy
  - nats: event publishing (embedded or external JetStream)
  - store: BadgerDB model snapshots
  - logging: zerolog level and format

# Example

	data:
	  train_clicks_path: /data/clicks_train.csv
	  test_clicks_path: /data/clicks_test.csv
	  embeddings_path: /data/articles_embeddings.parquet
	model:
	  alpha: 0.5
	  factors: 100
	security:
	  auth_mode: key
	  function_key_hash: $2a$10$...
*/
package config
