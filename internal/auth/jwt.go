// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minJWTSecretLength is the shortest accepted HS256 secret.
const minJWTSecretLength = 32

// Claims are the JWT claims accepted in jwt mode.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret []byte
	issuer string
}

// NewJWTManager creates a token manager. secret must be at least 32 bytes.
func NewJWTManager(secret, issuer string) (*JWTManager, error) {
	if len(secret) < minJWTSecretLength {
		return nil, fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretLength)
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateToken issues a token for subject with role, valid for ttl.
func (m *JWTManager) GenerateToken(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature, algorithm, expiry and issuer of
// tokenString.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// JWTAuthenticator authenticates bearer tokens.
type JWTAuthenticator struct {
	manager     *JWTManager
	defaultRole string
}

// NewJWTAuthenticator creates a bearer authenticator. Tokens without a
// role claim receive defaultRole.
func NewJWTAuthenticator(manager *JWTManager, defaultRole string) *JWTAuthenticator {
	return &JWTAuthenticator{manager: manager, defaultRole: defaultRole}
}

// Mode returns AuthModeJWT.
func (a *JWTAuthenticator) Mode() AuthMode {
	return AuthModeJWT
}

// Authenticate validates the bearer token.
func (a *JWTAuthenticator) Authenticate(_ context.Context, _, bearer string) (*Subject, error) {
	if bearer == "" {
		return nil, ErrNoCredentials
	}
	claims, err := a.manager.ValidateToken(bearer)
	if err != nil {
		return nil, err
	}

	role := claims.Role
	if role == "" {
		role = a.defaultRole
	}
	s := &Subject{
		ID:    claims.Subject,
		Roles: []string{role},
		Mode:  AuthModeJWT,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
