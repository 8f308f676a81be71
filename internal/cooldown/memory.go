package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/Alias1177/cryptosignal/models"
)

// MemoryStore keeps claims in process memory; they are lost on restart
type MemoryStore struct {
	mu     sync.Mutex
	claims map[models.CooldownKey]time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{claims: make(map[models.CooldownKey]time.Time)}
}

// CheckAndClaim implements models.CooldownStore
func (s *MemoryStore) CheckAndClaim(_ context.Context, key models.CooldownKey, now time.Time, cooldown time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.claims[key]; ok && now.Sub(last) < cooldown {
		return false, nil
	}
	s.claims[key] = now
	return true, nil
}

// Prune drops claims older than cooldown and reports how many were removed
func (s *MemoryStore) Prune(now time.Time, cooldown time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, last := range s.claims {
		if now.Sub(last) >= cooldown {
			delete(s.claims, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live claims
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.claims)
}
