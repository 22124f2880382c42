// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package authz authorizes authenticated callers with Casbin RBAC.
//
// The default model and policy are embedded; MODEL_PATH and POLICY_PATH
// style overrides (security.casbin.*) replace them with files. The default
// policy grants:
//
//	viewer  recommendations  predict
//	viewer  model            read
//	admin   model            *        (evaluate, retrain)
//
// and makes admin inherit viewer. Decisions are cached by Casbin's
// SyncedCachedEnforcer and the cache is invalidated on every policy change.
package authz
