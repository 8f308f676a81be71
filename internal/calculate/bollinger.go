package calculate

import "math"

// Bands is one Bollinger Bands reading
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands uses the population standard deviation of the trailing period closes.
// Shorter series collapse all three bands onto the last close.
func BollingerBands(closes []float64, period int, stdDev float64) Bands {
	n := len(closes)
	if n == 0 {
		return Bands{}
	}
	if period <= 0 || n < period {
		last := closes[n-1]
		return Bands{Upper: last, Middle: last, Lower: last}
	}

	window := closes[n-period:]
	middle := Average(window)

	var variance float64
	for _, c := range window {
		variance += (c - middle) * (c - middle)
	}
	sd := math.Sqrt(variance / float64(period))

	return Bands{
		Upper:  middle + sd*stdDev,
		Middle: middle,
		Lower:  middle - sd*stdDev,
	}
}

// PercentB places price relative to the bands: 0 at the lower band, 100 at the upper one.
// It is not clamped; 50 when the bands are flat.
func (b Bands) PercentB(price float64) float64 {
	if b.Upper <= b.Lower {
		return 50
	}
	return (price - b.Lower) / (b.Upper - b.Lower) * 100
}
