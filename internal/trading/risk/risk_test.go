package risk

import (
	"math"
	"testing"

	"github.com/Alias1177/cryptosignal/models"
)

func TestConfidenceClamped(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want float64
	}{
		{
			name: "score above max",
			sig:  Signal{Score: 40, MaxScore: 18},
			want: 100,
		},
		{
			name: "all boosts on a full score",
			sig: Signal{
				Score: -18, MaxScore: 18,
				VolumeRatio: 3, Momentum4h: -4,
				EntryQuality: 2, HistogramStrength: 0.002,
				Change24h: -9, Position24h: 5,
			},
			want: 100,
		},
		{
			name: "boosts add up",
			sig: Signal{
				Score: 9, MaxScore: 18,
				VolumeRatio: 3, Momentum4h: 4,
				Change24h: 9, Position24h: 90,
			},
			want: 65,
		},
		{
			name: "anti-FOMO damping",
			sig:  Signal{Score: 9, MaxScore: 18, Momentum15m: 3.5},
			want: 40,
		},
		{
			name: "zero max score",
			sig:  Signal{Score: 5},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.sig)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Confidence() = %v outside [0,100]", got)
			}
		})
	}
}

func TestRiskMultiplier(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1, 1.3}, {3, 1.0}, {7, 1.0}, {7.5, 0.8}, {12, 0.6}, {20, 0.4},
	}
	for _, tt := range tests {
		if got := RiskMultiplier(tt.vol); got != tt.want {
			t.Errorf("RiskMultiplier(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}
}

func TestLeverageLadder(t *testing.T) {
	ladder := DefaultLadder()
	tests := []struct {
		name string
		conf float64
		sig  Signal
		want int
	}{
		{name: "top rung", conf: 97, sig: Signal{Score: 16, MaxScore: 18, Volatility1h: 1}, want: 50},
		{name: "top rung blocked by short volatility", conf: 97, sig: Signal{Score: 16, MaxScore: 18, Volatility1h: 1.8}, want: 40},
		{name: "score ratio too low", conf: 97, sig: Signal{Score: 10, MaxScore: 18, Volatility1h: 1}, want: 30},
		{name: "volatile", conf: 97, sig: Signal{Score: 16, MaxScore: 18, Volatility1h: 5}, want: 25},
		{name: "mid", conf: 72, sig: Signal{Score: 10, MaxScore: 18}, want: 15},
		{name: "low", conf: 56, sig: Signal{Score: 10, MaxScore: 18}, want: 5},
		{name: "fallback", conf: 30, sig: Signal{Score: 5, MaxScore: 18}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LadderLeverage(ladder, tt.conf, tt.sig); got != tt.want {
				t.Errorf("LadderLeverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeverageBoundsAndMonotonicity(t *testing.T) {
	ladder := DefaultLadder()
	for _, conf := range []float64{0, 30, 56, 66, 72, 81, 86, 91, 97, 100} {
		for _, score := range []float64{0, 5, 12, 15, 18} {
			prev := math.MaxInt
			for vol := 0.0; vol <= 30; vol += 0.5 {
				sig := Signal{Score: score, MaxScore: 18, Volatility1h: 1, Volatility24h: vol}
				lev := Leverage(ladder, 50, conf, sig)
				if lev < 1 || lev > 50 {
					t.Fatalf("Leverage(conf=%v, score=%v, vol=%v) = %d outside [1,50]", conf, score, vol, lev)
				}
				if lev > prev {
					t.Fatalf("Leverage increased with volatility: conf=%v score=%v vol=%v: %d > %d", conf, score, vol, lev, prev)
				}
				prev = lev
			}
		}
	}
}

func TestPositionSize(t *testing.T) {
	c := DefaultCalibration()
	tests := []struct {
		name      string
		direction models.Direction
		conf      float64
		lev       int
		want      models.PositionSize
	}{
		{"hold", models.DirectionHold, 99, 50, models.SizeNone},
		{"low confidence", models.DirectionLong, 45, 1, models.SizeNone},
		{"micro", models.DirectionLong, 55, 5, models.SizeMicro},
		{"small by confidence", models.DirectionShort, 65, 12, models.SizeSmall},
		{"small by leverage", models.DirectionShort, 85, 6, models.SizeSmall},
		{"medium", models.DirectionLong, 75, 20, models.SizeMedium},
		{"large by leverage", models.DirectionLong, 95, 25, models.SizeLarge},
		{"ultra", models.DirectionLong, 95, 50, models.SizeUltra},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.PositionSize(tt.direction, tt.conf, tt.lev); got != tt.want {
				t.Errorf("PositionSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiskLabel(t *testing.T) {
	tests := []struct {
		conf float64
		want models.RiskLevel
	}{
		{99, models.RiskExtreme},
		{95, models.RiskVeryHigh},
		{86, models.RiskVeryHigh},
		{80, models.RiskHigh},
		{60, models.RiskMedium},
		{50, models.RiskLow},
	}
	for _, tt := range tests {
		if got := RiskLabel(tt.conf); got != tt.want {
			t.Errorf("RiskLabel(%v) = %v, want %v", tt.conf, got, tt.want)
		}
	}
}

func TestAssessStrongSetup(t *testing.T) {
	a := DefaultCalibration().Assess(Signal{Score: 17.5, MaxScore: 18}, models.DirectionLong)

	if a.Confidence < 90 {
		t.Errorf("Confidence = %v, want >= 90", a.Confidence)
	}
	if a.Leverage != 50 {
		t.Errorf("Leverage = %v, want 50", a.Leverage)
	}
	if a.PositionSize != models.SizeUltra || a.Risk != models.RiskExtreme {
		t.Errorf("PositionSize = %v Risk = %v, want ULTRA EXTREME", a.PositionSize, a.Risk)
	}
}
