package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/Alias1177/cryptosignal/models"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "signal:cooldown:"

// RedisStore shares claims between processes. A claim is a SET NX whose TTL is the
// cooldown, so the key disappears exactly when the window reopens.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore wraps an existing client
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// RedisOptions configures a dedicated client
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis connects and pings
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// CheckAndClaim implements models.CooldownStore
func (s *RedisStore) CheckAndClaim(ctx context.Context, key models.CooldownKey, now time.Time, cooldown time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key.String(), now.UnixMilli(), cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}
