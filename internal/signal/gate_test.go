package signal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Alias1177/cryptosignal/internal/cooldown"
	"github.com/Alias1177/cryptosignal/models"
)

type failingStore struct{}

func (failingStore) CheckAndClaim(context.Context, models.CooldownKey, time.Time, time.Duration) (bool, error) {
	return false, errors.New("store down")
}

func TestGateCooldownSequence(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(cooldown.NewMemoryStore(), 2*time.Hour, 65)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &models.Recommendation{Symbol: "BTCUSDT", Class: models.StrongLong, Confidence: 92}

	steps := []struct {
		name string
		at   time.Time
		emit bool
	}{
		{name: "первый сигнал", at: start, emit: true},
		{name: "повтор через 10 минут", at: start.Add(10 * time.Minute), emit: false},
		{name: "после окончания паузы", at: start.Add(2*time.Hour + time.Minute), emit: true},
	}

	for _, step := range steps {
		d, err := gate.Admit(ctx, rec, step.at)
		if err != nil {
			t.Fatalf("%s: Admit() error = %v", step.name, err)
		}
		if d.Emit != step.emit {
			t.Errorf("%s: Admit().Emit = %v, want %v (reason %q)", step.name, d.Emit, step.emit, d.Reason)
		}
	}
}

func TestGateSuppression(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name   string
		gate   *Gate
		rec    *models.Recommendation
		reason string
		err    bool
	}{
		{
			name:   "hold",
			gate:   NewGate(cooldown.NewMemoryStore(), time.Hour, 65),
			rec:    &models.Recommendation{Symbol: "ETHUSDT", Class: models.Hold, Confidence: 99},
			reason: ReasonHold,
		},
		{
			name:   "below threshold",
			gate:   NewGate(cooldown.NewMemoryStore(), time.Hour, 65),
			rec:    &models.Recommendation{Symbol: "ETHUSDT", Class: models.Long, Confidence: 64.9},
			reason: ReasonBelowThreshold,
		},
		{
			name:   "store failure",
			gate:   NewGate(failingStore{}, time.Hour, 65),
			rec:    &models.Recommendation{Symbol: "ETHUSDT", Class: models.Short, Confidence: 80},
			reason: ReasonStoreError,
			err:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.gate.Admit(ctx, tt.rec, now)
			if (err != nil) != tt.err {
				t.Fatalf("Admit() error = %v, want error %v", err, tt.err)
			}
			if d.Emit || d.Reason != tt.reason {
				t.Errorf("Admit() = %+v, want suppressed with %q", d, tt.reason)
			}
		})
	}
}
