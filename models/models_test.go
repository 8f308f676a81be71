package models

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"btc", "BTCUSDT"},
		{" ETHUSDT ", "ETHUSDT"},
		{"sol/usdt", "SOLUSDT"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSymbol(tt.in); got != tt.want {
				t.Errorf("NormalizeSymbol(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMultiTimeframeFeaturesGetDefaults(t *testing.T) {
	m := MultiTimeframeFeatures{Timeframe5m: {MomentumPct: 1.2, PositionInRangePct: 80, Available: true}}

	if got := m.Get(Timeframe5m).MomentumPct; got != 1.2 {
		t.Errorf("Get(5m).MomentumPct = %v, want 1.2", got)
	}
	missing := m.Get(Timeframe4h)
	if missing.MomentumPct != 0 || missing.PositionInRangePct != 50 || missing.Available {
		t.Errorf("Get(4h) = %+v, want neutral defaults", missing)
	}
}

func TestCandlesFor(t *testing.T) {
	series := []TimeframeSeries{
		{Symbol: "BTCUSDT", Timeframe: Timeframe1h, Candles: []Candle{{Close: 1}, {Close: 2}}},
		{Symbol: "BTCUSDT", Timeframe: Timeframe5m, Candles: []Candle{{Close: 3}}},
	}

	if got := CandlesFor(series, Timeframe1h); len(got) != 2 || got[1].Close != 2 {
		t.Errorf("CandlesFor(1h) = %+v, want two candles ending at 2", got)
	}
	if got := CandlesFor(series, Timeframe4h); got != nil {
		t.Errorf("CandlesFor(4h) = %+v, want nil", got)
	}
}

func TestScoreBreakdownReasonCap(t *testing.T) {
	var b ScoreBreakdown
	for i := 0; i < 12; i++ {
		b.AddReason("reason")
	}
	if len(b.Reasons) != MaxReasons {
		t.Errorf("len(Reasons) = %d, want %d", len(b.Reasons), MaxReasons)
	}
}

func TestDirectionOf(t *testing.T) {
	if DirectionOf(0.5) != DirectionLong || DirectionOf(-0.1) != DirectionShort || DirectionOf(0) != DirectionHold {
		t.Error("DirectionOf does not follow the score sign")
	}
}
