package calculate

import (
	"github.com/Alias1177/cryptosignal/models"
)

// Params are the indicator windows used for a snapshot
type Params struct {
	RSIPeriod    int
	MACDFast     int
	MACDSlow     int
	MACDSignal   int
	VolumeWindow int

	BollingerPeriod int
	BollingerStdDev float64
	StochasticK     int
	StochasticD     int
}

// DefaultParams are the classic 14 / 12-26-9 / 20 settings, plus 20x2 bands and 14-3 stochastic
func DefaultParams() Params {
	return Params{
		RSIPeriod:    14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		VolumeWindow: DefaultVolumeWindow,

		BollingerPeriod: 20,
		BollingerStdDev: 2,
		StochasticK:     14,
		StochasticD:     3,
	}
}

// Indicators bundles the latest snapshot with the full series the analyzers need
type Indicators struct {
	Snapshot models.IndicatorSnapshot
	Closes   []float64
	RSI      []float64
	MACD     MACDSeries
}

// CalculateAllIndicators computes RSI, MACD, volume ratio, Bollinger %B and stochastic for a candle series.
// Short series degrade to neutral values instead of failing.
func CalculateAllIndicators(candles []models.Candle, p Params) *Indicators {
	closes := models.Closes(candles)
	if len(candles) < 2 {
		return &Indicators{
			Snapshot: models.NeutralSnapshot(),
			Closes:   closes,
			RSI:      RSISeries(closes, p.RSIPeriod),
			MACD:     MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal),
		}
	}

	rsi := RSISeries(closes, p.RSIPeriod)
	macd := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	line, signal, hist := macd.Last()
	bands := BollingerBands(closes, p.BollingerPeriod, p.BollingerStdDev)
	stochK, stochD := Stochastic(candles, p.StochasticK, p.StochasticD)

	return &Indicators{
		Snapshot: models.IndicatorSnapshot{
			RSI:           rsi[len(rsi)-1],
			MACD:          line,
			MACDSignal:    signal,
			MACDHistogram: hist,
			VolumeRatio:   VolumeRatio(models.Volumes(candles), p.VolumeWindow),
			BollingerPctB: bands.PercentB(closes[len(closes)-1]),
			StochasticK:   stochK,
			StochasticD:   stochD,
		},
		Closes: closes,
		RSI:    rsi,
		MACD:   macd,
	}
}
