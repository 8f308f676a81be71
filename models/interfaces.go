package models

import (
	"context"
	"time"
)

// MarketData is the exchange-facing collaborator. Errors wrap ErrNotFound or ErrUnavailable.
type MarketData interface {
	Candles(ctx context.Context, symbol string, tf Timeframe, limit int) ([]Candle, error)
	Ticker(ctx context.Context, symbol string) (*Ticker, error)
}

// Notifier delivers a formatted message for one recommendation
type Notifier interface {
	Notify(ctx context.Context, rec *Recommendation, message string) error
}

// CooldownStore claims emission windows. CheckAndClaim reports true and records now
// when no claim exists for key or the previous one is at least cooldown old.
type CooldownStore interface {
	CheckAndClaim(ctx context.Context, key CooldownKey, now time.Time, cooldown time.Duration) (bool, error)
}
