package signal

import (
	"context"
	"time"

	"github.com/Alias1177/cryptosignal/models"
)

// Suppression reasons
const (
	ReasonHold           = "hold"
	ReasonBelowThreshold = "below_threshold"
	ReasonCooldown       = "cooldown"
	ReasonStoreError     = "store_error"
)

// Decision tells the caller whether to deliver a recommendation
type Decision struct {
	Emit   bool
	Reason string
}

// Gate filters recommendations by class, confidence and per-(symbol, class) cooldown
type Gate struct {
	store         models.CooldownStore
	cooldown      time.Duration
	minConfidence float64
}

// NewGate creates a gate over a cooldown store
func NewGate(store models.CooldownStore, cooldown time.Duration, minConfidence float64) *Gate {
	return &Gate{store: store, cooldown: cooldown, minConfidence: minConfidence}
}

// Admit claims the cooldown window before the caller delivers anything, so a failed
// delivery never reopens it.
func (g *Gate) Admit(ctx context.Context, rec *models.Recommendation, now time.Time) (Decision, error) {
	if rec.Class == models.Hold {
		return Decision{Reason: ReasonHold}, nil
	}
	if rec.Confidence < g.minConfidence {
		return Decision{Reason: ReasonBelowThreshold}, nil
	}

	key := models.CooldownKey{Symbol: rec.Symbol, Class: rec.Class}
	ok, err := g.store.CheckAndClaim(ctx, key, now, g.cooldown)
	if err != nil {
		return Decision{Reason: ReasonStoreError}, err
	}
	if !ok {
		return Decision{Reason: ReasonCooldown}, nil
	}
	return Decision{Emit: true}, nil
}
