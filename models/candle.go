package models

import (
	"strings"
	"time"
)

// Candle represents a single OHLCV bucket
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// Timeframe is a candle granularity as understood by the exchange
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe24h Timeframe = "24h"
)

// Duration returns the wall-clock length of one candle
func (tf Timeframe) Duration() time.Duration {
	switch tf {
	case Timeframe1m:
		return time.Minute
	case Timeframe5m:
		return 5 * time.Minute
	case Timeframe15m:
		return 15 * time.Minute
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe24h:
		return 24 * time.Hour
	}
	return 0
}

// TimeframeSeries is one symbol's candles at one granularity, oldest first
type TimeframeSeries struct {
	Symbol    string    `json:"symbol"`
	Timeframe Timeframe `json:"timeframe"`
	Candles   []Candle  `json:"candles"`
}

// CandlesFor returns the candles of the first series at tf, or nil
func CandlesFor(series []TimeframeSeries, tf Timeframe) []Candle {
	for _, s := range series {
		if s.Timeframe == tf {
			return s.Candles
		}
	}
	return nil
}

// Closes extracts close prices from a candle slice
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// Volumes extracts volumes from a candle slice
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}
	return volumes
}

// Ticker is the rolling 24h snapshot of a symbol
type Ticker struct {
	Symbol         string  `json:"symbol"`
	LastPrice      float64 `json:"last_price"`
	High24h        float64 `json:"high_24h"`
	Low24h         float64 `json:"low_24h"`
	Change24hPct   float64 `json:"change_24h_pct"`
	QuoteVolume24h float64 `json:"quote_volume_24h"`
}

// NormalizeSymbol converts user input like "btc" into an exchange pair like "BTCUSDT"
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "/", "")
	if s == "" || strings.HasSuffix(s, "USDT") {
		return s
	}
	return s + "USDT"
}

// BaseAsset strips the quote currency from a normalized pair
func BaseAsset(symbol string) string {
	return strings.TrimSuffix(NormalizeSymbol(symbol), "USDT")
}
