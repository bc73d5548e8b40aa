// Package entitlement decides whether a gated video-generation request may
// proceed, tracking the single global subscription record.
package entitlement

import (
	"sync"

	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
	"learnlens/types"
)

// Gate holds the premium flag and free-generation quota. The automatic
// topic-0 generation at upload time never goes through the gate; only
// explicit generation requests do.
type Gate struct {
	mu   sync.Mutex
	user types.User
	cfg  config.EntitlementConfig
	log  *zap.Logger
}

// New creates a Gate for a fresh non-premium user
func New(cfg config.EntitlementConfig, log *zap.Logger) *Gate {
	return &Gate{cfg: cfg, log: log}
}

// TryGrant admits one gated generation, consuming a unit of the free quota.
// The check and the increment happen under one lock so concurrent requests
// cannot both pass on the last unit. Premium users always pass and never
// consume quota. Fails with errs.ErrEntitlementDenied once the quota is gone.
func (g *Gate) TryGrant() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user.IsPremium {
		return nil
	}
	if g.user.FreeVideosUsed >= g.cfg.FreeVideoLimit {
		return errs.ErrEntitlementDenied
	}
	g.user.FreeVideosUsed++
	g.log.Info("free generation granted", zap.Int("freeVideosUsed", g.user.FreeVideosUsed))
	return nil
}

// Subscribe marks the user premium
func (g *Gate) Subscribe() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user.IsPremium = true
	g.log.Info("subscription activated")
}

// Status returns a snapshot of the subscription record
func (g *Gate) Status() types.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}
