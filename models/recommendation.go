package models

import "time"

// RecommendationClass is one of the seven discrete states
type RecommendationClass string

const (
	StrongLong  RecommendationClass = "STRONG_LONG"
	Long        RecommendationClass = "LONG"
	WeakLong    RecommendationClass = "WEAK_LONG"
	Hold        RecommendationClass = "HOLD"
	WeakShort   RecommendationClass = "WEAK_SHORT"
	Short       RecommendationClass = "SHORT"
	StrongShort RecommendationClass = "STRONG_SHORT"
)

type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
	DirectionHold  Direction = "hold"
)

// DirectionOf follows the sign of the score
func DirectionOf(score float64) Direction {
	switch {
	case score > 0:
		return DirectionLong
	case score < 0:
		return DirectionShort
	}
	return DirectionHold
}

type PositionSize string

const (
	SizeNone   PositionSize = "NONE"
	SizeMicro  PositionSize = "MICRO"
	SizeSmall  PositionSize = "SMALL"
	SizeMedium PositionSize = "MEDIUM"
	SizeLarge  PositionSize = "LARGE"
	SizeUltra  PositionSize = "ULTRA"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY_HIGH"
	RiskExtreme  RiskLevel = "EXTREME"
)

// MaxReasons caps the reason list carried by a breakdown
const MaxReasons = 8

// ScoreBreakdown is the output of the scoring engine
type ScoreBreakdown struct {
	Momentum           float64  `json:"momentum"`
	Trend              float64  `json:"trend"`
	Volume             float64  `json:"volume"`
	OversoldOverbought float64  `json:"oversold_overbought"`
	Volatility         float64  `json:"volatility"`
	Niche              float64  `json:"niche"`
	Total              float64  `json:"total"`
	EntryQuality       float64  `json:"entry_quality"`
	Reasons            []string `json:"reasons"`
}

// AddReason appends a reason unless the list is already full
func (b *ScoreBreakdown) AddReason(reason string) {
	if reason == "" || len(b.Reasons) >= MaxReasons {
		return
	}
	b.Reasons = append(b.Reasons, reason)
}

// Recommendation is the final per-symbol verdict
type Recommendation struct {
	ID           string              `json:"id"`
	Symbol       string              `json:"symbol"`
	Profile      string              `json:"profile"`
	Class        RecommendationClass `json:"class"`
	Direction    Direction           `json:"direction"`
	Score        float64             `json:"score"`
	Confidence   float64             `json:"confidence"`
	Leverage     int                 `json:"leverage"`
	PositionSize PositionSize        `json:"position_size"`
	Risk         RiskLevel           `json:"risk"`
	Reasons      []string            `json:"reasons"`
	Price        float64             `json:"price"`
	Breakdown    ScoreBreakdown      `json:"breakdown"`
	Indicators   IndicatorSnapshot   `json:"indicators"`
	Ticker       *Ticker             `json:"ticker,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// CooldownKey identifies one emission window
type CooldownKey struct {
	Symbol string
	Class  RecommendationClass
}

func (k CooldownKey) String() string {
	return k.Symbol + ":" + string(k.Class)
}
