package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Alias1177/cryptosignal/internal/analysis/prediction"
	"github.com/Alias1177/cryptosignal/internal/analyze"
	"github.com/Alias1177/cryptosignal/internal/api/binance"
	"github.com/Alias1177/cryptosignal/internal/config"
	"github.com/Alias1177/cryptosignal/internal/trading/risk"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var profileOverride string

var rootCmd = &cobra.Command{
	Use:   "signalbot",
	Short: "Crypto technical signal scanner",
	Long: `signalbot polls Binance candles for a list of symbols, scores them with a
configurable technical profile and posts qualifying recommendations to Telegram.

Configuration is read from the environment (and .env when present).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileOverride, "profile", "", "Scoring profile, overrides SCORING_PROFILE")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// loadConfig reads and validates the environment
func loadConfig(requireSink bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if profileOverride != "" {
		cfg.ScoringProfile = profileOverride
	}
	setupLogging(cfg.LogLevel)

	if err := cfg.Validate(requireSink); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine wires market data, the scoring profile and the calibrator
func buildEngine(cfg *config.Config) (*analyze.Engine, error) {
	profiles, err := prediction.LoadProfiles(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	profile, err := profiles.Get(cfg.ScoringProfile)
	if err != nil {
		return nil, err
	}

	market := binance.NewClient(binance.ClientOptions{
		BaseURL:         cfg.BinanceBaseURL,
		RequestTimeout:  cfg.RequestTimeout,
		RequestsPerSec:  cfg.RequestsPerSec,
		MaxRetryTimeout: 2 * cfg.RequestTimeout,
	})

	calibration := risk.DefaultCalibration()
	calibration.MaxLeverage = cfg.MaxLeverage

	log.Info().
		Str("profile", profile.Name).
		Float64("max_score", profile.MaxScore).
		Str("primary_timeframe", string(profile.PrimaryTimeframe)).
		Int("max_leverage", calibration.MaxLeverage).
		Msg("engine configured")

	return analyze.NewEngine(market, profile, analyze.WithCalibration(calibration)), nil
}
