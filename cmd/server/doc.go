// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package main is the Newsreel server.

Newsreel serves top-k article recommendations from a hybrid of a
content-based scorer (mean article embedding per user, cosine similarity)
and a biased SVD collaborative scorer, blended with a single weight alpha.

# Startup

 1. Configuration: defaults, optional config.yaml, then environment (koanf)
 2. Logging: zerolog, json or console
 3. Data: DuckDB reads the click logs and the article embeddings in place
 4. Engine: the model builder is wired to DuckDB and, when enabled, to the
    Badger snapshot store so an unchanged training set skips SVD fitting
 5. Events: NATS JetStream (embedded or external) or an in-memory channel
 6. HTTP: chi router with key or JWT auth and Casbin authorization
 7. Supervisor tree: model, messaging and api layers (suture v4)

The HTTP server starts before the first model is ready; /api/v1/health/ready
and the predict endpoints answer 503 until training completes.

# Configuration

Frequently used environment variables:

	TRAIN_CLICKS_PATH        click log used for training
	TEST_CLICKS_PATH         held-out click log used for evaluation
	EMBEDDINGS_PATH          article embeddings (parquet, csv or json)
	MODEL_ALPHA              content weight in [0, 1] (default 0.5)
	SVD_FACTORS, SVD_EPOCHS  collaborative model size
	MODEL_RETRAIN_INTERVAL   periodic retrain, 0 disables
	EVALUATE_ON_STARTUP      log hit rate after the first build
	HTTP_PORT                listen port (default 7071)
	AUTH_MODE                none, key or jwt
	FUNCTION_KEY_HASH        bcrypt hash accepted in x-functions-key
	NATS_ENABLED             publish events to JetStream
	MODEL_STORE_PATH         Badger directory for model snapshots

CONFIG_PATH points at a YAML file with the same keys as the koanf tags in
internal/config.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT, the notifier flushes queued events, and the event bus,
snapshot store and database are closed in that order.

# Usage

	export AUTH_MODE=none
	export TRAIN_CLICKS_PATH=data/clicks_train.csv
	export TEST_CLICKS_PATH=data/clicks_test.csv
	export EMBEDDINGS_PATH=data/articles_embeddings.parquet
	go run ./cmd/server

	curl -s localhost:7071/api/predict_function -d '{"user_id": 42, "k": 5}'

Swagger documentation is served at /swagger/index.html.
*/
package main
