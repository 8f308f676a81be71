package cooldown

import (
	"context"
	"fmt"

	"github.com/Alias1177/cryptosignal/internal/config"
	"github.com/Alias1177/cryptosignal/internal/database"
	"github.com/Alias1177/cryptosignal/models"
	"github.com/rs/zerolog/log"
)

// Open builds the configured cooldown backend. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config) (models.CooldownStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CooldownBackend {
	case "", config.BackendMemory:
		log.Info().Str("backend", config.BackendMemory).Msg("cooldown store ready, state is lost on restart")
		return NewMemoryStore(), noop, nil

	case config.BackendRedis:
		client, err := DialRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("backend", config.BackendRedis).Str("addr", cfg.RedisAddr).Msg("cooldown store ready")
		return NewRedisStore(client), client.Close, nil

	case config.BackendPostgres:
		db, err := database.New(ctx, database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("backend", config.BackendPostgres).Str("host", cfg.DBHost).Msg("cooldown store ready")
		return NewPostgresStore(db), db.Close, nil
	}

	return nil, noop, fmt.Errorf("%w: unknown cooldown backend %q", models.ErrConfiguration, cfg.CooldownBackend)
}
