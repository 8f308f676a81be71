package market

import (
	"github.com/Alias1177/cryptosignal/internal/calculate"
	"github.com/Alias1177/cryptosignal/models"
)

// TimeframeSpec describes how one granularity is fetched and measured
type TimeframeSpec struct {
	Timeframe models.Timeframe
	Limit     int // candles fetched
	Lookback  int // periods used for momentum
	Window    int // trailing candles used for range and position
}

// DefaultSpecs covers every candle timeframe, shortest first. 24h comes from the ticker.
func DefaultSpecs() []TimeframeSpec {
	return []TimeframeSpec{
		{Timeframe: models.Timeframe1m, Limit: 60, Lookback: 5, Window: 30},
		{Timeframe: models.Timeframe5m, Limit: 100, Lookback: 3, Window: 24},
		{Timeframe: models.Timeframe15m, Limit: 100, Lookback: 4, Window: 16},
		{Timeframe: models.Timeframe1h, Limit: 100, Lookback: 4, Window: 24},
		{Timeframe: models.Timeframe4h, Limit: 100, Lookback: 6, Window: 18},
	}
}

// Aggregate computes momentum, volatility, range and position for every spec.
// Timeframes without a series fall back to neutral features.
func Aggregate(series []models.TimeframeSeries, ticker *models.Ticker, specs []TimeframeSpec) models.MultiTimeframeFeatures {
	features := make(models.MultiTimeframeFeatures, len(specs)+1)

	for _, spec := range specs {
		features[spec.Timeframe] = TimeframeFeatures(models.CandlesFor(series, spec.Timeframe), spec)
	}
	features[models.Timeframe24h] = TickerFeatures(ticker)

	return features
}

// TimeframeFeatures measures a single candle series
func TimeframeFeatures(candles []models.Candle, spec TimeframeSpec) models.TimeframeFeatures {
	n := len(candles)
	if n == 0 {
		return models.NeutralFeatures()
	}

	last := candles[n-1].Close
	f := models.TimeframeFeatures{
		PositionInRangePct: 50,
		Available:          true,
	}

	if spec.Lookback > 0 && n > spec.Lookback {
		f.MomentumPct = calculate.ChangePct(last, candles[n-1-spec.Lookback].Close)
	}

	f.RangePct = calculate.RangePct(candles, spec.Window, last)
	f.VolatilityPct = calculate.RangePct(candles, spec.Window, last)

	if high, low, ok := calculate.HighLow(candles, spec.Window); ok {
		f.PositionInRangePct = calculate.PositionInRange(last, low, high)
	}

	return f
}

// TickerFeatures derives the 24h entry from the rolling ticker
func TickerFeatures(t *models.Ticker) models.TimeframeFeatures {
	if t == nil || t.LastPrice <= 0 {
		return models.NeutralFeatures()
	}

	rangePct := 0.0
	if t.High24h > t.Low24h {
		rangePct = (t.High24h - t.Low24h) / t.LastPrice * 100
	}

	return models.TimeframeFeatures{
		MomentumPct:        t.Change24hPct,
		VolatilityPct:      rangePct,
		RangePct:           rangePct,
		PositionInRangePct: calculate.PositionInRange(t.LastPrice, t.Low24h, t.High24h),
		Available:          true,
	}
}
