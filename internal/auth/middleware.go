// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/logging"
)

// FunctionKeyHeader carries the function key in key mode.
const FunctionKeyHeader = "x-functions-key"

// New builds the authenticator selected by cfg.AuthMode.
func New(cfg *config.SecurityConfig) (Authenticator, error) {
	mode, err := ParseAuthMode(cfg.AuthMode)
	if err != nil {
		return nil, err
	}

	defaultRole := cfg.Casbin.DefaultRole
	if defaultRole == "" {
		defaultRole = RoleViewer
	}

	switch mode {
	case AuthModeKey:
		return NewKeyAuthenticator(cfg.FunctionKeyHash, cfg.AdminKeyHash)
	case AuthModeJWT:
		manager, err := NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, err
		}
		return NewJWTAuthenticator(manager, defaultRole), nil
	default:
		return NewNoneAuthenticator(defaultRole), nil
	}
}

// Middleware authenticates every request and stores the Subject in the
// request context. Failures are answered with 401.
func Middleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(FunctionKeyHeader)
			if key == "" {
				key = r.URL.Query().Get("code")
			}

			subject, err := a.Authenticate(r.Context(), key, bearerToken(r))
			if err == nil && subject.IsExpired() {
				err = ErrExpiredCredentials
			}
			if err != nil {
				logging.Ctx(r.Context()).Debug().
					Err(err).
					Str("mode", a.Mode().String()).
					Msg("authentication failed")
				if a.Mode() == AuthModeJWT {
					w.Header().Set("WWW-Authenticate", `Bearer realm="newsreel"`)
				}
				writeUnauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	message := "Unauthorized."
	if errors.Is(err, ErrExpiredCredentials) {
		message = "Credentials expired."
	}

	body, _ := json.Marshal(map[string]string{ //nolint:errcheck // static map always marshals
		"status":  "error",
		"message": message,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, werr := w.Write(body); werr != nil {
		logging.Debug().Err(werr).Msg("failed to write unauthorized response")
	}
}
