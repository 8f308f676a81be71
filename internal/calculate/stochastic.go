package calculate

import "github.com/Alias1177/cryptosignal/models"

// Stochastic returns %K of the last candle and %D, the mean of the last dPeriod %K values.
// Not enough data gives 50/50.
func Stochastic(candles []models.Candle, kPeriod, dPeriod int) (k, d float64) {
	n := len(candles)
	if kPeriod <= 0 || n < kPeriod {
		return 50, 50
	}
	if dPeriod <= 0 {
		dPeriod = 1
	}

	var sum float64
	count := 0
	for end := n; end > n-dPeriod && end >= kPeriod; end-- {
		v := stochasticK(candles[end-kPeriod : end])
		if end == n {
			k = v
		}
		sum += v
		count++
	}
	return k, sum / float64(count)
}

func stochasticK(window []models.Candle) float64 {
	high, low, ok := HighLow(window, 0)
	if !ok {
		return 50
	}
	return PositionInRange(window[len(window)-1].Close, low, high)
}
