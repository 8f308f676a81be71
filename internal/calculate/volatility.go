package calculate

import (
	"math"

	"github.com/Alias1177/cryptosignal/models"
)

// HighLow returns the extremes of the trailing window. ok is false for an empty input.
func HighLow(candles []models.Candle, window int) (high, low float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	if window > 0 && len(candles) > window {
		candles = candles[len(candles)-window:]
	}

	high, low = math.Inf(-1), math.Inf(1)
	for _, c := range candles {
		high = math.Max(high, c.High)
		low = math.Min(low, c.Low)
	}
	return high, low, true
}

// RangePct is (max high - min low) / reference * 100 over the trailing window.
// A window <= 0 means the whole series.
func RangePct(candles []models.Candle, window int, reference float64) float64 {
	high, low, ok := HighLow(candles, window)
	if !ok || reference <= 0 {
		return 0
	}
	return (high - low) / reference * 100
}

// PositionInRange places price within [low, high] as a percentage; 50 on a flat range
func PositionInRange(price, low, high float64) float64 {
	if high <= low {
		return 50
	}
	return clamp((price-low)/(high-low)*100, 0, 100)
}

// ChangePct is the relative move from an older price in percent
func ChangePct(now, before float64) float64 {
	if before == 0 {
		return 0
	}
	return (now - before) / before * 100
}
