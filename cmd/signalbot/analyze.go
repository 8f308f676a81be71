package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Alias1177/cryptosignal/internal/notify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbols...]",
	Short: "Evaluate symbols once and print the recommendation",
	Long: `Run the full pipeline for the given symbols (or SYMBOLS when none are given)
without touching the cooldown store or sending anything.

Examples:
  signalbot analyze BTC
  signalbot analyze eth/usdt SOL --profile simple
  signalbot analyze BTC --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print recommendations as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	symbols := cfg.Symbols
	if len(args) > 0 {
		symbols = args
	}

	out := cmd.OutOrStdout()
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	failed := 0
	for _, symbol := range symbols {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		rec, err := engine.Analyze(ctx, symbol)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
			failed++
			continue
		}

		if analyzeJSON {
			if err := encoder.Encode(rec); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, notify.FormatRecommendation(rec))
		fmt.Fprintln(out)
	}

	if failed == len(symbols) {
		return fmt.Errorf("no symbol could be analyzed")
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d symbols failed\n", failed, len(symbols))
	}
	return nil
}
