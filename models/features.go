package models

// TimeframeFeatures are the per-granularity inputs of the scoring model
type TimeframeFeatures struct {
	MomentumPct        float64 `json:"momentum_pct"`
	VolatilityPct      float64 `json:"volatility_pct"`
	RangePct           float64 `json:"range_pct"`
	PositionInRangePct float64 `json:"position_in_range_pct"`
	Available          bool    `json:"available"`
}

// NeutralFeatures is substituted for a timeframe that could not be fetched
func NeutralFeatures() TimeframeFeatures {
	return TimeframeFeatures{PositionInRangePct: 50}
}

// MultiTimeframeFeatures maps every timeframe to its features
type MultiTimeframeFeatures map[Timeframe]TimeframeFeatures

// Get never fails: an absent timeframe reads as neutral
func (m MultiTimeframeFeatures) Get(tf Timeframe) TimeframeFeatures {
	if f, ok := m[tf]; ok {
		return f
	}
	return NeutralFeatures()
}
