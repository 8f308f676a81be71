package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alias1177/cryptosignal/internal/config"
	"github.com/Alias1177/cryptosignal/internal/cooldown"
	"github.com/Alias1177/cryptosignal/internal/metrics"
	"github.com/Alias1177/cryptosignal/internal/notify"
	"github.com/Alias1177/cryptosignal/internal/scanner"
	sig "github.com/Alias1177/cryptosignal/internal/signal"
	"github.com/Alias1177/cryptosignal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runOnStart bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the polling daemon",
	Long: `Evaluate every configured symbol on POLL_SCHEDULE and deliver recommendations
that pass the confidence threshold and the per-(symbol, class) cooldown.

Examples:
  signalbot run
  signalbot run --profile simple --run-on-start=false
  DRY_RUN=true signalbot run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runOnStart, "run-on-start", true, "Run one cycle immediately instead of waiting for the schedule")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	// cycles run on their own context so shutdown lets the in-flight symbol finish
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := cooldown.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("closing cooldown store")
		}
	}()

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := registry.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	var opts []scanner.Option
	if pruner, ok := store.(scanner.Pruner); ok {
		opts = append(opts, scanner.WithPruner(pruner))
	}

	sc := scanner.New(
		scanner.Config{
			Symbols:    cfg.Symbols,
			Schedule:   cfg.PollSchedule,
			Pause:      cfg.SymbolPause,
			Cooldown:   cfg.Cooldown,
			RunOnStart: runOnStart,
		},
		engine,
		sig.NewGate(store, cfg.Cooldown, cfg.MinConfidence),
		notifier,
		registry,
		opts...,
	)
	if err := sc.Start(ctx); err != nil {
		return err
	}

	log.Info().
		Strs("symbols", cfg.Symbols).
		Dur("cooldown", cfg.Cooldown).
		Float64("min_confidence", cfg.MinConfidence).
		Str("cooldown_backend", cfg.CooldownBackend).
		Bool("dry_run", cfg.DryRun).
		Msg("signalbot running")

	waitForShutdown()
	sc.Stop()
	return nil
}

func waitForShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	signal.Stop(c)
	log.Info().Msg("Shutdown signal received, finishing current symbol...")
}

func buildNotifier(cfg *config.Config) (models.Notifier, error) {
	if cfg.DryRun {
		return notify.NewLogNotifier(), nil
	}
	bot, err := notify.NewTelegramBot(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	log.Info().Str("bot", bot.Self.UserName).Int64("chat_id", cfg.TelegramChatID).Msg("telegram authorized")
	return notify.NewTelegramNotifier(bot, cfg.TelegramChatID), nil
}
