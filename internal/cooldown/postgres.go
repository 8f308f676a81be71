package cooldown

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Alias1177/cryptosignal/internal/database"
	"github.com/Alias1177/cryptosignal/models"
)

// claimQuery inserts a claim or refreshes one that is at least a cooldown old.
// No returned row means the window is still closed.
const claimQuery = `
	INSERT INTO signal_cooldowns (symbol, class, emitted_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (symbol, class)
	DO UPDATE SET emitted_at = EXCLUDED.emitted_at
	WHERE signal_cooldowns.emitted_at <= $4
	RETURNING emitted_at
`

// PostgresStore persists claims so restarts do not re-emit
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore uses a migrated database handle
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CheckAndClaim implements models.CooldownStore
func (s *PostgresStore) CheckAndClaim(ctx context.Context, key models.CooldownKey, now time.Time, cooldown time.Duration) (bool, error) {
	var emittedAt time.Time
	err := s.db.QueryRowxContext(ctx, claimQuery, key.Symbol, string(key.Class), now, now.Add(-cooldown)).Scan(&emittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return true, nil
}
