// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/newsreel/docs" // swagger docs
	"github.com/tomtom215/newsreel/internal/api"
	"github.com/tomtom215/newsreel/internal/auth"
	"github.com/tomtom215/newsreel/internal/authz"
	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/database"
	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/supervisor"
	"github.com/tomtom215/newsreel/internal/supervisor/services"
)

//nolint:gocyclo // sequential startup
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("train_clicks", cfg.Data.TrainClicksPath).
		Str("test_clicks", cfg.Data.TestClicksPath).
		Str("embeddings", cfg.Data.EmbeddingsPath).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Newsreel")

	db, err := database.New(&cfg.Data)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recommender, err := initRecommend(cfg, db, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer func() {
		if err := recommender.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model store")
		}
	}()

	// sutureslog needs slog; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	events, err := initEvents(ctx, cfg, recommender.Engine, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()
		if err := events.Close(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	authenticator, err := auth.New(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}
	enforcer, err := authz.NewEnforcer(cfg.Security.Casbin)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization")
	}

	handler := api.NewHandler(recommender.Engine, cfg)
	handler.SetDatabase(db)
	handler.SetEventBus(events.Bus)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)), authenticator, enforcer)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddModelService(services.NewModelService(recommender.Engine, recommender.snapshotPruner(), services.ModelServiceConfig{
		RetrainInterval:   cfg.Model.RetrainInterval,
		EvaluateOnStartup: cfg.Model.EvaluateOnStartup,
		KeepSnapshots:     cfg.Store.KeepSnapshots,

		CacheCleanupInterval: cfg.Model.CacheTTL,
	}, logging.WithComponent("model-service")))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)
	if err := tree.Wait(ctx, errCh); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // best effort
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	stats := recommender.Engine.Stats()
	logging.Info().
		Int64("requests", stats.Requests).
		Int64("errors", stats.Errors).
		Msg("Application stopped gracefully")
}
