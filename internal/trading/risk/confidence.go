package risk

import "math"

// Signal carries the score and the features the calibrator looks at
type Signal struct {
	Score             float64
	MaxScore          float64
	EntryQuality      float64
	HistogramStrength float64
	VolumeRatio       float64
	Momentum15m       float64
	Momentum4h        float64
	Change24h         float64
	Position24h       float64
	Volatility1h      float64 // short-term volatility used by the ladder
	Volatility24h     float64
}

// BaseConfidence normalizes the score against the profile maximum
func BaseConfidence(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return math.Min(100, math.Abs(score)/maxScore*100)
}

// Confidence applies convergence boosts and anti-FOMO damping to the base confidence.
// The result is always within [0, 100].
func Confidence(s Signal) float64 {
	conf := BaseConfidence(s.Score, s.MaxScore)

	if s.VolumeRatio > 2 && math.Abs(s.Momentum4h) > 3 {
		conf = math.Min(100, conf+10)
	}
	if s.EntryQuality > 1 && s.HistogramStrength > 0.001 {
		conf = math.Min(100, conf+10)
	}
	if math.Abs(s.Change24h) > 8 && (s.Position24h < 20 || s.Position24h > 80) {
		conf = math.Min(100, conf+5)
	}

	// chasing a move that already ran
	if math.Abs(s.Momentum15m) > 3 {
		conf *= 0.8
	}

	if math.IsNaN(conf) {
		return 0
	}
	return math.Max(0, math.Min(100, conf))
}

// RiskMultiplier scales leverage down as 24h volatility grows
func RiskMultiplier(volatility24h float64) float64 {
	switch {
	case volatility24h > 15:
		return 0.4
	case volatility24h > 10:
		return 0.6
	case volatility24h > 7:
		return 0.8
	case volatility24h < 3:
		return 1.3
	}
	return 1.0
}
