package prediction

import (
	"math"
	"sort"

	"github.com/Alias1177/cryptosignal/internal/analysis/technical"
	"github.com/Alias1177/cryptosignal/models"
)

// compressionThresholds are the range% under which a short timeframe counts as compressed
var compressionThresholds = map[models.Timeframe]float64{
	models.Timeframe1m:  0.3,
	models.Timeframe5m:  0.6,
	models.Timeframe15m: 1.0,
}

// FeatureVector is the flat, always-populated input of the scorer
type FeatureVector struct {
	RSI                   float64
	MACDAboveSignal       float64 // +1 above, -1 below, 0 equal
	MACDCrossover         float64 // sign of the last crossover
	MACDHistogramStrength float64
	MACDDivergence        float64
	BollingerPctB         float64
	StochasticK           float64
	Momentum1m            float64
	Momentum5m            float64
	Momentum15m           float64
	Momentum1h            float64
	Momentum4h            float64
	Change24h             float64
	Position1m            float64
	Position5m            float64
	Position24h           float64
	VolumeRatio           float64
	VolumeRatio5m         float64
	Volatility1h          float64
	Volatility24h         float64
	Range1m               float64
	Range5m               float64
	Range15m              float64
	Compression           float64
	SupportDistancePct    float64 // +Inf without support levels
	ResistanceDistancePct float64 // +Inf without resistance levels
	MarketCapRank         float64 // 0 when unknown
	Price                 float64
}

var featureAccessors = map[string]func(*FeatureVector) float64{
	"rsi":                     func(f *FeatureVector) float64 { return f.RSI },
	"macd_above_signal":       func(f *FeatureVector) float64 { return f.MACDAboveSignal },
	"macd_crossover":          func(f *FeatureVector) float64 { return f.MACDCrossover },
	"macd_histogram_strength": func(f *FeatureVector) float64 { return f.MACDHistogramStrength },
	"macd_divergence":         func(f *FeatureVector) float64 { return f.MACDDivergence },
	"bollinger_pct_b":         func(f *FeatureVector) float64 { return f.BollingerPctB },
	"stochastic_k":            func(f *FeatureVector) float64 { return f.StochasticK },
	"momentum_1m":             func(f *FeatureVector) float64 { return f.Momentum1m },
	"momentum_5m":             func(f *FeatureVector) float64 { return f.Momentum5m },
	"momentum_15m":            func(f *FeatureVector) float64 { return f.Momentum15m },
	"momentum_1h":             func(f *FeatureVector) float64 { return f.Momentum1h },
	"momentum_4h":             func(f *FeatureVector) float64 { return f.Momentum4h },
	"change_24h":              func(f *FeatureVector) float64 { return f.Change24h },
	"position_1m":             func(f *FeatureVector) float64 { return f.Position1m },
	"position_5m":             func(f *FeatureVector) float64 { return f.Position5m },
	"position_24h":            func(f *FeatureVector) float64 { return f.Position24h },
	"volume_ratio":            func(f *FeatureVector) float64 { return f.VolumeRatio },
	"volume_ratio_5m":         func(f *FeatureVector) float64 { return f.VolumeRatio5m },
	"volatility_1h":           func(f *FeatureVector) float64 { return f.Volatility1h },
	"volatility_24h":          func(f *FeatureVector) float64 { return f.Volatility24h },
	"range_1m":                func(f *FeatureVector) float64 { return f.Range1m },
	"range_5m":                func(f *FeatureVector) float64 { return f.Range5m },
	"range_15m":               func(f *FeatureVector) float64 { return f.Range15m },
	"compression":             func(f *FeatureVector) float64 { return f.Compression },
	"support_distance_pct":    func(f *FeatureVector) float64 { return f.SupportDistancePct },
	"resistance_distance_pct": func(f *FeatureVector) float64 { return f.ResistanceDistancePct },
	"market_cap_rank":         func(f *FeatureVector) float64 { return f.MarketCapRank },
	"price":                   func(f *FeatureVector) float64 { return f.Price },
}

// FeatureNames lists every name a profile may reference
func FeatureNames() []string {
	names := make([]string, 0, len(featureAccessors))
	for name := range featureAccessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value resolves a feature by name
func (f *FeatureVector) Value(name string) (float64, bool) {
	get, ok := featureAccessors[name]
	if !ok {
		return 0, false
	}
	return get(f), true
}

// FeatureInputs is everything the per-symbol pipeline has computed
type FeatureInputs struct {
	Symbol        string
	Price         float64
	Primary       models.IndicatorSnapshot // indicators of the profile's primary timeframe
	VolumeRatio5m float64
	MACD          models.MACDSignalState
	Timeframes    models.MultiTimeframeFeatures
	Levels        models.SupportResistance
}

// BuildFeatures flattens the pipeline outputs into a FeatureVector
func BuildFeatures(in FeatureInputs) FeatureVector {
	tf := in.Timeframes
	fv := FeatureVector{
		RSI:                   in.Primary.RSI,
		MACDAboveSignal:       sign(in.Primary.MACD - in.Primary.MACDSignal),
		MACDCrossover:         in.MACD.LastCrossover.Sign(),
		MACDHistogramStrength: in.MACD.HistogramStrength,
		MACDDivergence:        in.MACD.Divergence.Sign(),
		BollingerPctB:         in.Primary.BollingerPctB,
		StochasticK:           in.Primary.StochasticK,
		Momentum1m:            tf.Get(models.Timeframe1m).MomentumPct,
		Momentum5m:            tf.Get(models.Timeframe5m).MomentumPct,
		Momentum15m:           tf.Get(models.Timeframe15m).MomentumPct,
		Momentum1h:            tf.Get(models.Timeframe1h).MomentumPct,
		Momentum4h:            tf.Get(models.Timeframe4h).MomentumPct,
		Change24h:             tf.Get(models.Timeframe24h).MomentumPct,
		Position1m:            tf.Get(models.Timeframe1m).PositionInRangePct,
		Position5m:            tf.Get(models.Timeframe5m).PositionInRangePct,
		Position24h:           tf.Get(models.Timeframe24h).PositionInRangePct,
		VolumeRatio:           in.Primary.VolumeRatio,
		VolumeRatio5m:         in.VolumeRatio5m,
		Volatility1h:          tf.Get(models.Timeframe1h).VolatilityPct,
		Volatility24h:         tf.Get(models.Timeframe24h).VolatilityPct,
		Range1m:               tf.Get(models.Timeframe1m).RangePct,
		Range5m:               tf.Get(models.Timeframe5m).RangePct,
		Range15m:              tf.Get(models.Timeframe15m).RangePct,
		SupportDistancePct:    math.Inf(1),
		ResistanceDistancePct: math.Inf(1),
		MarketCapRank:         float64(MarketCapRank(in.Symbol)),
		Price:                 in.Price,
	}

	for timeframe, limit := range compressionThresholds {
		f := tf.Get(timeframe)
		if f.Available && f.RangePct < limit {
			fv.Compression++
		}
	}

	if _, dist, ok := technical.NearestLevel(in.Levels.Support, in.Price); ok {
		fv.SupportDistancePct = dist
	}
	if _, dist, ok := technical.NearestLevel(in.Levels.Resistance, in.Price); ok {
		fv.ResistanceDistancePct = dist
	}

	return fv
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
