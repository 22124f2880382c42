// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// AuthMode represents the authentication strategy.
type AuthMode string

const (
	// AuthModeNone disables authentication.
	AuthModeNone AuthMode = "none"

	// AuthModeKey uses bcrypt-hashed function keys.
	AuthModeKey AuthMode = "key"

	// AuthModeJWT uses HS256 bearer tokens.
	AuthModeJWT AuthMode = "jwt"
)

// Role names used by the default policy.
const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// ParseAuthMode converts a string to AuthMode. The empty string means none.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "none", "":
		return AuthModeNone, nil
	case "key":
		return AuthModeKey, nil
	case "jwt":
		return AuthModeJWT, nil
	default:
		return "", fmt.Errorf("invalid auth mode: %q", s)
	}
}

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors
var (
	// ErrNoCredentials indicates no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates credentials have expired.
	ErrExpiredCredentials = errors.New("credentials expired")
)

// Authenticator extracts and verifies the caller of a request.
type Authenticator interface {
	Authenticate(ctx context.Context, key, bearer string) (*Subject, error)
	Mode() AuthMode
}

// Subject is an authenticated caller.
type Subject struct {
	ID       string    `json:"id"`
	Roles    []string  `json:"roles,omitempty"`
	Mode     AuthMode  `json:"mode"`
	IssuedAt time.Time `json:"issued_at,omitempty"`

	// ExpiresAt is zero for credentials that do not expire.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// HasRole reports whether the subject holds role.
func (s *Subject) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

// IsExpired reports whether the credentials have expired.
func (s *Subject) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// ContextWithSubject stores s in ctx.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the subject stored by Middleware, or nil.
func SubjectFromContext(ctx context.Context) *Subject {
	s, _ := ctx.Value(subjectContextKey).(*Subject)
	return s
}
