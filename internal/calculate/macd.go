package calculate

import "math"

// MACDSeries holds the three MACD lines aligned with the input closes
type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// Last returns the latest MACD, signal and histogram values
func (m MACDSeries) Last() (macd, signal, histogram float64) {
	n := len(m.MACD)
	if n == 0 {
		return 0, 0, 0
	}
	return m.MACD[n-1], m.Signal[n-1], m.Histogram[n-1]
}

// MACD computes fast EMA minus slow EMA, its signal EMA and the histogram.
// Any non-finite close yields all-zero lines.
func MACD(closes []float64, fast, slow, signal int) MACDSeries {
	n := len(closes)
	zero := MACDSeries{
		MACD:      make([]float64, n),
		Signal:    make([]float64, n),
		Histogram: make([]float64, n),
	}
	for _, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return zero
		}
	}
	if n == 0 {
		return zero
	}

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line := make([]float64, n)
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMA(line, signal)

	hist := make([]float64, n)
	for i := range line {
		hist[i] = line[i] - signalLine[i]
	}

	return MACDSeries{MACD: line, Signal: signalLine, Histogram: hist}
}
