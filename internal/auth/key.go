// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// maxVerifiedKeys bounds the cache of keys that already passed bcrypt.
const maxVerifiedKeys = 64

// KeyAuthenticator checks function keys against bcrypt hashes.
//
// bcrypt is deliberately slow, so a key that verified once is remembered by
// its SHA-256 digest and later requests skip the bcrypt comparison.
type KeyAuthenticator struct {
	functionHash []byte
	adminHash    []byte

	mu       sync.RWMutex
	verified map[string]string // sha256(key) -> role
}

// NewKeyAuthenticator creates a key authenticator. functionHash is
// required; adminHash may be empty to disable admin access.
func NewKeyAuthenticator(functionHash, adminHash string) (*KeyAuthenticator, error) {
	if !isBcryptHash(functionHash) {
		return nil, fmt.Errorf("function key hash must be a bcrypt hash")
	}
	if adminHash != "" && !isBcryptHash(adminHash) {
		return nil, fmt.Errorf("admin key hash must be a bcrypt hash")
	}
	return &KeyAuthenticator{
		functionHash: []byte(functionHash),
		adminHash:    []byte(adminHash),
		verified:     make(map[string]string),
	}, nil
}

func isBcryptHash(h string) bool {
	_, err := bcrypt.Cost([]byte(h))
	return err == nil && strings.HasPrefix(h, "$2")
}

// Mode returns AuthModeKey.
func (a *KeyAuthenticator) Mode() AuthMode {
	return AuthModeKey
}

// Authenticate checks key. The admin key is tried first so that an
// operator reusing one key for both gets admin.
func (a *KeyAuthenticator) Authenticate(_ context.Context, key, _ string) (*Subject, error) {
	if key == "" {
		return nil, ErrNoCredentials
	}

	digest := sha256.Sum256([]byte(key))
	id := hex.EncodeToString(digest[:])

	a.mu.RLock()
	role, ok := a.verified[id]
	a.mu.RUnlock()

	if !ok {
		switch {
		case len(a.adminHash) > 0 && bcrypt.CompareHashAndPassword(a.adminHash, []byte(key)) == nil:
			role = RoleAdmin
		case bcrypt.CompareHashAndPassword(a.functionHash, []byte(key)) == nil:
			role = RoleViewer
		default:
			return nil, ErrInvalidCredentials
		}
		a.remember(id, role)
	}

	return &Subject{
		ID:    "key:" + id[:12],
		Roles: []string{role},
		Mode:  AuthModeKey,
	}, nil
}

func (a *KeyAuthenticator) remember(id, role string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.verified) >= maxVerifiedKeys {
		clear(a.verified)
	}
	a.verified[id] = role
}

// NoneAuthenticator admits every caller as an anonymous subject.
type NoneAuthenticator struct {
	role string
}

// NewNoneAuthenticator creates an authenticator granting role to everyone.
func NewNoneAuthenticator(role string) *NoneAuthenticator {
	return &NoneAuthenticator{role: role}
}

// Mode returns AuthModeNone.
func (a *NoneAuthenticator) Mode() AuthMode {
	return AuthModeNone
}

// Authenticate always succeeds.
func (a *NoneAuthenticator) Authenticate(context.Context, string, string) (*Subject, error) {
	return &Subject{ID: "anonymous", Roles: []string{a.role}, Mode: AuthModeNone}, nil
}
