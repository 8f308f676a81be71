package risk

import "math"

// LadderRung grants Leverage when every configured bound holds.
// Zero MaxShortVolatility or MinScoreRatio disables that bound.
type LadderRung struct {
	MinConfidence      float64 `yaml:"min_confidence"`
	MaxShortVolatility float64 `yaml:"max_short_volatility"`
	MinScoreRatio      float64 `yaml:"min_score_ratio"`
	Leverage           int     `yaml:"leverage"`
}

// DefaultLadder is evaluated top to bottom; the fallback is 1x
func DefaultLadder() []LadderRung {
	return []LadderRung{
		{MinConfidence: 95, MaxShortVolatility: 1.5, MinScoreRatio: 0.8, Leverage: 50},
		{MinConfidence: 90, MaxShortVolatility: 2, MinScoreRatio: 0.7, Leverage: 40},
		{MinConfidence: 85, MaxShortVolatility: 3, Leverage: 30},
		{MinConfidence: 80, Leverage: 25},
		{MinConfidence: 75, Leverage: 20},
		{MinConfidence: 70, Leverage: 15},
		{MinConfidence: 65, Leverage: 10},
		{MinConfidence: 55, Leverage: 5},
	}
}

func (r LadderRung) admits(confidence, shortVolatility, scoreRatio float64) bool {
	if confidence < r.MinConfidence {
		return false
	}
	if r.MaxShortVolatility > 0 && shortVolatility >= r.MaxShortVolatility {
		return false
	}
	if r.MinScoreRatio > 0 && scoreRatio < r.MinScoreRatio {
		return false
	}
	return true
}

// LadderLeverage picks the first rung the signal qualifies for
func LadderLeverage(ladder []LadderRung, confidence float64, s Signal) int {
	ratio := 0.0
	if s.MaxScore > 0 {
		ratio = math.Abs(s.Score) / s.MaxScore
	}
	for _, rung := range ladder {
		if rung.admits(confidence, s.Volatility1h, ratio) {
			return rung.Leverage
		}
	}
	return 1
}

// Leverage combines the ladder with the volatility multiplier, clamped to [1, maxLeverage]
func Leverage(ladder []LadderRung, maxLeverage int, confidence float64, s Signal) int {
	lev := int(math.Floor(float64(LadderLeverage(ladder, confidence, s)) * RiskMultiplier(s.Volatility24h)))
	if maxLeverage > 0 && lev > maxLeverage {
		lev = maxLeverage
	}
	if lev < 1 {
		lev = 1
	}
	return lev
}
