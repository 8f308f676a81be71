package risk

import (
	"github.com/Alias1177/cryptosignal/models"
)

// SizeRule assigns Size when confidence is below ConfidenceBelow or leverage below LeverageBelow
type SizeRule struct {
	ConfidenceBelow float64             `yaml:"confidence_below"`
	LeverageBelow   int                 `yaml:"leverage_below"`
	Size            models.PositionSize `yaml:"size"`
}

// DefaultSizeRules are checked in order; anything past them is ULTRA
func DefaultSizeRules() []SizeRule {
	return []SizeRule{
		{ConfidenceBelow: 50, Size: models.SizeNone},
		{ConfidenceBelow: 60, Size: models.SizeMicro},
		{ConfidenceBelow: 70, LeverageBelow: 10, Size: models.SizeSmall},
		{ConfidenceBelow: 80, Size: models.SizeMedium},
		{ConfidenceBelow: 90, LeverageBelow: 30, Size: models.SizeLarge},
	}
}

// Calibration holds the hand-tuned tables of the calibrator
type Calibration struct {
	Ladder      []LadderRung `yaml:"ladder"`
	SizeRules   []SizeRule   `yaml:"size_rules"`
	MaxLeverage int          `yaml:"max_leverage"`
}

// DefaultCalibration caps leverage at 50x
func DefaultCalibration() Calibration {
	return Calibration{
		Ladder:      DefaultLadder(),
		SizeRules:   DefaultSizeRules(),
		MaxLeverage: 50,
	}
}

// Assessment is the calibrator's verdict for one signal
type Assessment struct {
	Confidence     float64
	RiskMultiplier float64
	Leverage       int
	PositionSize   models.PositionSize
	Risk           models.RiskLevel
}

// Assess runs confidence, leverage, sizing and risk labelling
func (c Calibration) Assess(s Signal, direction models.Direction) Assessment {
	conf := Confidence(s)
	lev := Leverage(c.Ladder, c.MaxLeverage, conf, s)

	return Assessment{
		Confidence:     conf,
		RiskMultiplier: RiskMultiplier(s.Volatility24h),
		Leverage:       lev,
		PositionSize:   c.PositionSize(direction, conf, lev),
		Risk:           RiskLabel(conf),
	}
}

// PositionSize maps confidence and leverage onto a size bucket
func (c Calibration) PositionSize(direction models.Direction, confidence float64, leverage int) models.PositionSize {
	if direction == models.DirectionHold {
		return models.SizeNone
	}
	for _, rule := range c.SizeRules {
		if confidence < rule.ConfidenceBelow || (rule.LeverageBelow > 0 && leverage < rule.LeverageBelow) {
			return rule.Size
		}
	}
	return models.SizeUltra
}

// RiskLabel grades how aggressive a recommendation is
func RiskLabel(confidence float64) models.RiskLevel {
	switch {
	case confidence > 95:
		return models.RiskExtreme
	case confidence > 85:
		return models.RiskVeryHigh
	case confidence > 70:
		return models.RiskHigh
	case confidence > 50:
		return models.RiskMedium
	}
	return models.RiskLow
}
