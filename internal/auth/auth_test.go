// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/newsreel/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func hashKey(t *testing.T, key string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestParseAuthMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    AuthMode
		wantErr bool
	}{
		{"", AuthModeNone, false},
		{"none", AuthModeNone, false},
		{"key", AuthModeKey, false},
		{"jwt", AuthModeJWT, false},
		{"basic", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAuthMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseAuthMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestJWTManager(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager("short", ""); err == nil {
		t.Error("short secret should be rejected")
	}

	m, err := NewJWTManager(testSecret, "newsreel")
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		token, err := m.GenerateToken("alice", RoleAdmin, time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		claims, err := m.ValidateToken(token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.Subject != "alice" || claims.Role != RoleAdmin {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := m.GenerateToken("alice", RoleViewer, -time.Minute)
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredCredentials) {
			t.Errorf("ValidateToken() error = %v, want ErrExpiredCredentials", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, _ := NewJWTManager(testSecret, "someone-else")
		token, _ := other.GenerateToken("alice", RoleViewer, time.Hour)
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("ValidateToken() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewJWTManager(strings.Repeat("x", 32), "newsreel")
		token, _ := other.GenerateToken("alice", RoleViewer, time.Hour)
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("ValidateToken() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.ValidateToken("not.a.token"); err == nil {
			t.Error("garbage token should fail")
		}
	})
}

func TestKeyAuthenticator(t *testing.T) {
	t.Parallel()

	a, err := NewKeyAuthenticator(hashKey(t, "viewer-key"), hashKey(t, "admin-key"))
	if err != nil {
		t.Fatalf("NewKeyAuthenticator() error = %v", err)
	}

	tests := []struct {
		key      string
		wantRole string
		wantErr  error
	}{
		{"viewer-key", RoleViewer, nil},
		{"admin-key", RoleAdmin, nil},
		{"viewer-key", RoleViewer, nil}, // served from the verified cache
		{"wrong", "", ErrInvalidCredentials},
		{"", "", ErrNoCredentials},
	}
	for _, tt := range tests {
		s, err := a.Authenticate(context.Background(), tt.key, "")
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Authenticate(%q) error = %v, want %v", tt.key, err, tt.wantErr)
			continue
		}
		if err == nil && !s.HasRole(tt.wantRole) {
			t.Errorf("Authenticate(%q) roles = %v, want %s", tt.key, s.Roles, tt.wantRole)
		}
	}

	if _, err := NewKeyAuthenticator("plaintext", ""); err == nil {
		t.Error("plaintext hash should be rejected")
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	manager, _ := NewJWTManager(testSecret, "newsreel")
	validToken, _ := manager.GenerateToken("bob", RoleAdmin, time.Hour)
	keyAuth, _ := NewKeyAuthenticator(hashKey(t, "secret-key"), "")

	tests := []struct {
		name       string
		auth       Authenticator
		setup      func(r *http.Request)
		wantStatus int
		wantRole   string
	}{
		{
			name:       "none mode",
			auth:       NewNoneAuthenticator(RoleViewer),
			setup:      func(*http.Request) {},
			wantStatus: http.StatusOK,
			wantRole:   RoleViewer,
		},
		{
			name:       "key header",
			auth:       keyAuth,
			setup:      func(r *http.Request) { r.Header.Set(FunctionKeyHeader, "secret-key") },
			wantStatus: http.StatusOK,
			wantRole:   RoleViewer,
		},
		{
			name: "key query",
			auth: keyAuth,
			setup: func(r *http.Request) {
				r.URL.RawQuery = "code=secret-key"
			},
			wantStatus: http.StatusOK,
			wantRole:   RoleViewer,
		},
		{
			name:       "key missing",
			auth:       keyAuth,
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer",
			auth:       NewJWTAuthenticator(manager, RoleViewer),
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+validToken) },
			wantStatus: http.StatusOK,
			wantRole:   RoleAdmin,
		},
		{
			name:       "bearer wrong scheme",
			auth:       NewJWTAuthenticator(manager, RoleViewer),
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Basic "+validToken) },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got *Subject
			handler := Middleware(tt.auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = SubjectFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/predict_function", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if !strings.Contains(rec.Body.String(), `"status":"error"`) {
					t.Errorf("body = %s", rec.Body.String())
				}
				return
			}
			if got == nil || !got.HasRole(tt.wantRole) {
				t.Errorf("subject = %+v, want role %s", got, tt.wantRole)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		wantMode AuthMode
		wantErr  bool
	}{
		{"none", config.SecurityConfig{AuthMode: "none"}, AuthModeNone, false},
		{"jwt", config.SecurityConfig{AuthMode: "jwt", JWTSecret: testSecret}, AuthModeJWT, false},
		{"jwt short secret", config.SecurityConfig{AuthMode: "jwt", JWTSecret: "x"}, "", true},
		{"key without hash", config.SecurityConfig{AuthMode: "key"}, "", true},
		{"unknown", config.SecurityConfig{AuthMode: "oidc"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := New(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && a.Mode() != tt.wantMode {
				t.Errorf("Mode() = %s, want %s", a.Mode(), tt.wantMode)
			}
		})
	}
}

func TestSubjectExpiry(t *testing.T) {
	t.Parallel()
	if (&Subject{}).IsExpired() {
		t.Error("zero expiry should never expire")
	}
	if !(&Subject{ExpiresAt: time.Now().Add(-time.Second)}).IsExpired() {
		t.Error("past expiry should be expired")
	}
}
