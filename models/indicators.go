package models

// IndicatorSnapshot holds latest-candle indicator values for one series
type IndicatorSnapshot struct {
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	VolumeRatio   float64 `json:"volume_ratio"`
	BollingerPctB float64 `json:"bollinger_pct_b"`
	StochasticK   float64 `json:"stochastic_k"`
	StochasticD   float64 `json:"stochastic_d"`
}

// NeutralSnapshot is used when a series is too short to compute anything
func NeutralSnapshot() IndicatorSnapshot {
	return IndicatorSnapshot{RSI: 50, VolumeRatio: 1, BollingerPctB: 50, StochasticK: 50, StochasticD: 50}
}

// Level is a clustered support or resistance price
type Level struct {
	Index int     `json:"index"`
	Price float64 `json:"price"`
}

// SupportResistance holds up to five recent clusters per side
type SupportResistance struct {
	Support    []Level `json:"support"`
	Resistance []Level `json:"resistance"`
}

type Crossover string

const (
	CrossoverBullish Crossover = "bullish"
	CrossoverBearish Crossover = "bearish"
	CrossoverNeutral Crossover = "neutral"
)

type Divergence string

const (
	DivergenceBullish Divergence = "bullish"
	DivergenceBearish Divergence = "bearish"
	DivergenceNone    Divergence = "none"
)

type MomentumDirection string

const (
	MomentumIncreasing MomentumDirection = "increasing"
	MomentumDecreasing MomentumDirection = "decreasing"
)

// MACDSignalState summarizes crossover, divergence and histogram behaviour
type MACDSignalState struct {
	LastCrossover     Crossover         `json:"last_crossover"`
	CrossoverIndex    int               `json:"crossover_index"` // -1 when no crossover was seen
	Divergence        Divergence        `json:"divergence"`
	Momentum          MomentumDirection `json:"momentum"`
	HistogramStrength float64           `json:"histogram_strength"`
}

// Sign maps bullish to +1, bearish to -1 and neutral to 0
func (c Crossover) Sign() float64 {
	switch c {
	case CrossoverBullish:
		return 1
	case CrossoverBearish:
		return -1
	}
	return 0
}

// Sign maps bullish to +1, bearish to -1 and none to 0
func (d Divergence) Sign() float64 {
	switch d {
	case DivergenceBullish:
		return 1
	case DivergenceBearish:
		return -1
	}
	return 0
}
