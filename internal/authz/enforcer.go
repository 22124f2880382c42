// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/tomtom215/newsreel/internal/config"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Objects and actions of the default policy.
const (
	ObjectRecommendations = "recommendations"
	ObjectModel           = "model"

	ActionPredict  = "predict"
	ActionRead     = "read"
	ActionEvaluate = "evaluate"
	ActionRetrain  = "retrain"
)

// decisionCacheTTL bounds how long a cached decision is reused.
const decisionCacheTTL = 5 * time.Minute

// Enforcer wraps a cached Casbin enforcer.
type Enforcer struct {
	enforcer    *casbin.SyncedCachedEnforcer
	defaultRole string
}

// NewEnforcer loads the model and policy named by cfg, falling back to the
// embedded defaults for empty paths.
func NewEnforcer(cfg config.CasbinConfig) (*Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if cfg.ModelPath != "" {
		if !fileExists(cfg.ModelPath) {
			return nil, fmt.Errorf("casbin model %s not found", cfg.ModelPath)
		}
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedCachedEnforcer
	if cfg.PolicyPath != "" {
		if !fileExists(cfg.PolicyPath) {
			return nil, fmt.Errorf("casbin policy %s not found", cfg.PolicyPath)
		}
		enforcer, err = casbin.NewSyncedCachedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedCachedEnforcer(m)
		if err == nil {
			err = loadPolicyText(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	enforcer.SetExpireTime(decisionCacheTTL)

	return &Enforcer{enforcer: enforcer, defaultRole: cfg.DefaultRole}, nil
}

// loadPolicyText adds the p and g lines of a policy CSV.
func loadPolicyText(enforcer *casbin.SyncedCachedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var err error
		switch {
		case parts[0] == "p" && len(parts) == 4:
			_, err = enforcer.AddPolicy(parts[1], parts[2], parts[3])
		case parts[0] == "g" && len(parts) == 3:
			_, err = enforcer.AddGroupingPolicy(parts[1], parts[2])
		default:
			err = fmt.Errorf("malformed line %q", line)
		}
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
	}
	return nil
}

// Enforce reports whether subject may perform action on object.
func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	return allowed, nil
}

// EnforceWithRoles allows the request if the subject itself or any of its
// roles is allowed. A subject with no roles is checked as the default role.
func (e *Enforcer) EnforceWithRoles(subject string, roles []string, object, action string) (bool, error) {
	if allowed, err := e.Enforce(subject, object, action); err != nil || allowed {
		return allowed, err
	}

	if len(roles) == 0 && e.defaultRole != "" {
		roles = []string{e.defaultRole}
	}
	for _, role := range roles {
		if allowed, err := e.Enforce(role, object, action); err != nil || allowed {
			return allowed, err
		}
	}
	return false, nil
}

// AddRoleForUser assigns role to user.
func (e *Enforcer) AddRoleForUser(user, role string) (bool, error) {
	added, err := e.enforcer.AddGroupingPolicy(user, role)
	if err != nil {
		return false, fmt.Errorf("failed to add role: %w", err)
	}
	return added, e.enforcer.InvalidateCache()
}

// GetPolicy returns all policy rules.
func (e *Enforcer) GetPolicy() [][]string {
	//nolint:errcheck // GetPolicy only fails on a nil model
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
