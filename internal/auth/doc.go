// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package auth authenticates API callers.

Three modes are supported, selected by AUTH_MODE:

  - none: every caller is anonymous and receives the configured default
    role. Rejected in production by config validation.
  - key: callers present a function key in the x-functions-key header or
    the code query parameter, the same convention Azure Functions uses.
    Keys are configured as bcrypt hashes; the function key grants the
    viewer role and the admin key grants admin.
  - jwt: callers present an HS256 bearer token whose role claim names
    their role.

Every mode produces a *Subject that Middleware stores in the request
context. Authorization decisions on that subject are made by the authz
package.

	authenticator, err := auth.New(&cfg.Security)
	if err != nil {
	    return err
	}
	r.Use(auth.Middleware(authenticator))
*/
package auth
