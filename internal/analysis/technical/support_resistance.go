package technical

import (
	"math"
	"sort"

	"github.com/Alias1177/cryptosignal/models"
)

const (
	// DefaultExtremaWindow is the half-width of the centered extrema window
	DefaultExtremaWindow = 5
	// ClusterTolerance is the relative distance under which points merge
	ClusterTolerance = 0.01
	// MaxLevelsPerSide caps each side of the output
	MaxLevelsPerSide = 5
)

type pricePoint struct {
	index int
	price float64
}

// DetectSupportResistance finds local extrema inside a ±window band and clusters them.
// Fewer than 2*window+1 candles give empty sets.
func DetectSupportResistance(candles []models.Candle, window int) models.SupportResistance {
	result := models.SupportResistance{
		Support:    []models.Level{},
		Resistance: []models.Level{},
	}
	if window <= 0 || len(candles) < 2*window+1 {
		return result
	}

	var highs, lows []pricePoint
	for i := window; i < len(candles)-window; i++ {
		maxHigh, minLow := math.Inf(-1), math.Inf(1)
		for j := i - window; j <= i+window; j++ {
			maxHigh = math.Max(maxHigh, candles[j].High)
			minLow = math.Min(minLow, candles[j].Low)
		}
		if candles[i].High == maxHigh {
			highs = append(highs, pricePoint{index: i, price: candles[i].High})
		}
		if candles[i].Low == minLow {
			lows = append(lows, pricePoint{index: i, price: candles[i].Low})
		}
	}

	result.Resistance = clusterLevels(highs)
	result.Support = clusterLevels(lows)
	return result
}

// clusterLevels merges points closer than ClusterTolerance to the running group maximum.
// Each group is represented by its highest price and the index of its latest touch;
// the most recently touched groups are kept, oldest first.
func clusterLevels(points []pricePoint) []models.Level {
	if len(points) == 0 {
		return []models.Level{}
	}

	sorted := make([]pricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].price < sorted[j].price
	})

	var levels []models.Level
	for _, p := range sorted {
		if n := len(levels); n > 0 {
			rep := levels[n-1].Price
			if math.Abs(p.price-rep)/rep < ClusterTolerance {
				levels[n-1].Price = math.Max(rep, p.price)
				if p.index > levels[n-1].Index {
					levels[n-1].Index = p.index
				}
				continue
			}
		}
		levels = append(levels, models.Level{Index: p.index, Price: p.price})
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Index < levels[j].Index
	})
	if len(levels) > MaxLevelsPerSide {
		levels = levels[len(levels)-MaxLevelsPerSide:]
	}
	return levels
}

// NearestLevel returns the level closest to price and its distance in percent of price
func NearestLevel(levels []models.Level, price float64) (models.Level, float64, bool) {
	if len(levels) == 0 || price <= 0 {
		return models.Level{}, 0, false
	}

	best := levels[0]
	for _, l := range levels[1:] {
		if math.Abs(price-l.Price) < math.Abs(price-best.Price) {
			best = l
		}
	}
	return best, math.Abs(price-best.Price) / price * 100, true
}
