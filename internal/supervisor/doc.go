// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package supervisor runs Newsreel's long-lived services under suture v4.

The tree isolates failures by layer:

	newsreel
	├── model-layer
	│   └── model-service        initial build, periodic retrain
	├── messaging-layer
	│   ├── event router         activity log consumer
	│   └── training notifier    model.trained publisher
	└── api-layer
	    └── http-server

A service that returns an error is restarted with backoff once
FailureThreshold failures accumulate within the decay window. Supervisor
events are logged through sutureslog.

Usage:

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddModelService(services.NewModelService(engine, store, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
	return tree.Serve(ctx)
*/
package supervisor
