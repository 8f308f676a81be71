package patterns

import (
	"math"

	"github.com/Alias1177/cryptosignal/internal/calculate"
	"github.com/Alias1177/cryptosignal/models"
)

// DivergenceLookback is how far back price and MACD trends are compared
const DivergenceLookback = 10

// AnalyzeMACD extracts the latest crossover, divergence and histogram momentum
func AnalyzeMACD(closes []float64, m calculate.MACDSeries) models.MACDSignalState {
	state := models.MACDSignalState{
		LastCrossover:  models.CrossoverNeutral,
		CrossoverIndex: -1,
		Divergence:     models.DivergenceNone,
		Momentum:       models.MomentumDecreasing,
	}

	n := len(m.MACD)
	if n == 0 || len(m.Signal) != n || len(m.Histogram) != n {
		return state
	}

	// last crossover wins
	for i := 1; i < n; i++ {
		prev := m.MACD[i-1] - m.Signal[i-1]
		curr := m.MACD[i] - m.Signal[i]
		switch {
		case prev <= 0 && curr > 0:
			state.LastCrossover = models.CrossoverBullish
			state.CrossoverIndex = i
		case prev >= 0 && curr < 0:
			state.LastCrossover = models.CrossoverBearish
			state.CrossoverIndex = i
		}
	}

	state.Divergence = detectMACDDivergence(closes, m.MACD)

	if n >= 2 && m.Histogram[n-1] > m.Histogram[n-2] {
		state.Momentum = models.MomentumIncreasing
	}
	state.HistogramStrength = math.Abs(m.Histogram[n-1])

	return state
}

// detectMACDDivergence compares the price trend with the MACD trend over the lookback
func detectMACDDivergence(closes, macd []float64) models.Divergence {
	if len(closes) < DivergenceLookback || len(macd) < DivergenceLookback {
		return models.DivergenceNone
	}

	priceTrend := closes[len(closes)-1] - closes[len(closes)-DivergenceLookback]
	macdTrend := macd[len(macd)-1] - macd[len(macd)-DivergenceLookback]

	switch {
	case priceTrend < 0 && macdTrend > 0:
		return models.DivergenceBullish
	case priceTrend > 0 && macdTrend < 0:
		return models.DivergenceBearish
	}
	return models.DivergenceNone
}
