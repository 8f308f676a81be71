package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Alias1177/cryptosignal/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Cooldown backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Symbols        []string
	Cooldown       time.Duration
	MinConfidence  float64
	ScoringProfile string
	ProfilePath    string
	PollSchedule   string
	SymbolPause    time.Duration
	MaxLeverage    int

	BinanceBaseURL string
	RequestTimeout time.Duration
	RequestsPerSec int

	TelegramBotToken string
	TelegramChatID   int64
	DryRun           bool

	CooldownBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	LogLevel    string
	MetricsAddr string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Symbols = parseSymbols(getEnvWithDefault("SYMBOLS", "BTC,ETH,SOL,BNB,XRP"))
	cfg.Cooldown = getEnvDurationWithDefault("COOLDOWN", 2*time.Hour)
	cfg.MinConfidence = getEnvFloatWithDefault("MIN_CONFIDENCE", 65)
	cfg.ScoringProfile = getEnvWithDefault("SCORING_PROFILE", "scalping")
	cfg.ProfilePath = os.Getenv("PROFILE_PATH")
	cfg.PollSchedule = getEnvWithDefault("POLL_SCHEDULE", "@every 1m")
	cfg.SymbolPause = getEnvDurationWithDefault("SYMBOL_PAUSE", 500*time.Millisecond)
	cfg.MaxLeverage = getEnvIntWithDefault("MAX_LEVERAGE", 50)

	cfg.BinanceBaseURL = getEnvWithDefault("BINANCE_BASE_URL", "https://api.binance.com")
	cfg.RequestTimeout = getEnvDurationWithDefault("REQUEST_TIMEOUT", 10*time.Second)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)
	cfg.DryRun = getEnvBoolWithDefault("DRY_RUN", false)

	cfg.CooldownBackend = strings.ToLower(getEnvWithDefault("COOLDOWN_BACKEND", BackendMemory))
	cfg.RedisAddr = getEnvWithDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvIntWithDefault("REDIS_DB", 0)

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "signals")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	return &cfg, nil
}

// Validate reports missing or inconsistent settings. Only the daemon needs a notification sink.
func (c *Config) Validate(requireSink bool) error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: SYMBOLS is empty", models.ErrConfiguration)
	}
	if c.Cooldown <= 0 {
		return fmt.Errorf("%w: COOLDOWN must be positive", models.ErrConfiguration)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		return fmt.Errorf("%w: MIN_CONFIDENCE must be within [0,100]", models.ErrConfiguration)
	}
	if c.MaxLeverage < 1 {
		return fmt.Errorf("%w: MAX_LEVERAGE must be at least 1", models.ErrConfiguration)
	}
	if c.RequestsPerSec < 1 {
		return fmt.Errorf("%w: REQUESTS_PER_SEC must be at least 1", models.ErrConfiguration)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", models.ErrConfiguration)
	}
	if requireSink && !c.DryRun && (c.TelegramBotToken == "" || c.TelegramChatID == 0) {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required unless DRY_RUN is set", models.ErrConfiguration)
	}
	switch c.CooldownBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("%w: unknown COOLDOWN_BACKEND %q", models.ErrConfiguration, c.CooldownBackend)
	}
	return nil
}

func parseSymbols(raw string) []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		s := models.NormalizeSymbol(part)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	return symbols
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
