package calculate

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Alias1177/cryptosignal/models"
	"github.com/markcheno/go-talib"
)

func noisySeries(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += rng.NormFloat64()
		if price < 1 {
			price = 1
		}
		out[i] = price
	}
	return out
}

func TestRSIBounds(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, v := range RSISeries(noisySeries(200, seed), 14) {
			if math.IsNaN(v) || v < 0 || v > 100 {
				t.Fatalf("seed %d: RSI value %v outside [0,100]", seed, v)
			}
		}
	}
}

func TestRSIDegenerateSeries(t *testing.T) {
	flat := make([]float64, 50)
	rising := make([]float64, 50)
	falling := make([]float64, 50)
	for i := range flat {
		flat[i] = 100
		rising[i] = 100 + float64(i)
		falling[i] = 100 - float64(i)
	}

	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{name: "flat", closes: flat, want: 50},
		{name: "only gains", closes: rising, want: 100},
		{name: "only losses", closes: falling, want: 0},
		{name: "too short", closes: rising[:10], want: 50},
		{name: "empty", closes: nil, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RSI(tt.closes, 14); got != tt.want {
				t.Errorf("RSI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRSIInsufficientHistoryIsNeutralEverywhere(t *testing.T) {
	for i, v := range RSISeries([]float64{1, 2, 3, 4, 5}, 14) {
		if v != 50 {
			t.Errorf("RSISeries()[%d] = %v, want 50", i, v)
		}
	}
}

func TestRSIMatchesTalib(t *testing.T) {
	closes := noisySeries(150, 42)
	got := RSISeries(closes, 14)
	want := talib.Rsi(closes, 14)

	for i := 14; i < len(closes); i++ {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("RSISeries()[%d] = %v, talib = %v", i, got[i], want[i])
		}
	}
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 2}, 3)
	if got[0] != 1 {
		t.Errorf("EMA()[0] = %v, want 1", got[0])
	}
	// alpha 0.5: (2 + 0.5*1) / (1 + 0.5)
	if math.Abs(got[1]-5.0/3.0) > 1e-12 {
		t.Errorf("EMA()[1] = %v, want %v", got[1], 5.0/3.0)
	}

	for i, v := range EMA([]float64{7, 7, 7, 7, 7}, 4) {
		if math.Abs(v-7) > 1e-12 {
			t.Errorf("EMA(constant)[%d] = %v, want 7", i, v)
		}
	}
}

func TestMACD(t *testing.T) {
	t.Run("flat series", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 10
		}
		m, s, h := MACD(closes, 12, 26, 9).Last()
		if math.Abs(m) > 1e-12 || math.Abs(s) > 1e-12 || math.Abs(h) > 1e-12 {
			t.Errorf("MACD(flat) = %v, %v, %v, want zeros", m, s, h)
		}
	})

	t.Run("uptrend", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		m, _, _ := MACD(closes, 12, 26, 9).Last()
		if m <= 0 {
			t.Errorf("MACD(uptrend) = %v, want positive", m)
		}
	})

	t.Run("non-finite input", func(t *testing.T) {
		res := MACD([]float64{1, 2, math.NaN(), 4}, 12, 26, 9)
		for i := range res.MACD {
			if res.MACD[i] != 0 || res.Signal[i] != 0 || res.Histogram[i] != 0 {
				t.Fatalf("MACD(NaN)[%d] not zero", i)
			}
		}
	})
}

func TestSMAMatchesTalibOnFullWindows(t *testing.T) {
	values := noisySeries(80, 7)
	got := SMA(values, 10)
	want := talib.Sma(values, 10)
	for i := 9; i < len(values); i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("SMA()[%d] = %v, talib = %v", i, got[i], want[i])
		}
	}
	if got[0] != values[0] {
		t.Errorf("SMA()[0] = %v, want %v", got[0], values[0])
	}
}

func TestVolumeRatio(t *testing.T) {
	tests := []struct {
		name    string
		volumes []float64
		want    float64
	}{
		{name: "empty", volumes: nil, want: 1},
		{name: "zero volume", volumes: []float64{0, 0, 0}, want: 1},
		{name: "steady", volumes: []float64{10, 10, 10, 10}, want: 1},
		{name: "spike", volumes: []float64{10, 10, 10, 50}, want: 50.0 / 20.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VolumeRatio(tt.volumes, 20); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("VolumeRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeAndPosition(t *testing.T) {
	candles := generateTestCandles(10, func(i int) models.Candle {
		return models.Candle{
			OpenTime: time.Unix(int64(i)*60, 0),
			High:     101 + float64(i),
			Low:      99 + float64(i),
			Close:    100 + float64(i),
		}
	})

	if got := RangePct(candles, 5, 100); math.Abs(got-6) > 1e-12 {
		t.Errorf("RangePct() = %v, want 6", got)
	}
	if got := RangePct(candles, 0, 0); got != 0 {
		t.Errorf("RangePct(reference 0) = %v, want 0", got)
	}
	if got := PositionInRange(105, 100, 110); got != 50 {
		t.Errorf("PositionInRange() = %v, want 50", got)
	}
	if got := PositionInRange(100, 100, 100); got != 50 {
		t.Errorf("PositionInRange(flat) = %v, want 50", got)
	}
	if got := PositionInRange(120, 100, 110); got != 100 {
		t.Errorf("PositionInRange(above) = %v, want 100", got)
	}
}

func TestCalculateAllIndicatorsShortSeries(t *testing.T) {
	ind := CalculateAllIndicators([]models.Candle{{Close: 10, Volume: 5}}, DefaultParams())
	if ind.Snapshot != models.NeutralSnapshot() {
		t.Errorf("Snapshot = %+v, want neutral", ind.Snapshot)
	}
}

func generateTestCandles(n int, generator func(int) models.Candle) []models.Candle {
	candles := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		candles[i] = generator(i)
	}
	return candles
}

func TestBollingerBandsMatchesTalib(t *testing.T) {
	closes := noisySeries(120, 11)
	upper, middle, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)

	b := BollingerBands(closes, 20, 2)
	last := len(closes) - 1
	for _, pair := range [][2]float64{{b.Upper, upper[last]}, {b.Middle, middle[last]}, {b.Lower, lower[last]}} {
		if math.Abs(pair[0]-pair[1]) > 1e-6 {
			t.Errorf("BollingerBands() = %+v, want %v/%v/%v", b, upper[last], middle[last], lower[last])
			break
		}
	}
}

func TestBollingerPercentB(t *testing.T) {
	b := Bands{Upper: 110, Middle: 100, Lower: 90}
	tests := []struct {
		price float64
		want  float64
	}{
		{90, 0},
		{100, 50},
		{110, 100},
		{115, 125},
	}
	for _, tt := range tests {
		if got := b.PercentB(tt.price); got != tt.want {
			t.Errorf("PercentB(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}

	flat := BollingerBands([]float64{5, 5, 5}, 20, 2)
	if flat.Upper != 5 || flat.PercentB(5) != 50 {
		t.Errorf("short series bands = %+v, want collapsed on 5", flat)
	}
}

func TestStochastic(t *testing.T) {
	// closes 1..20 at the top of each candle's range
	rising := generateTestCandles(20, func(i int) models.Candle {
		c := float64(i + 1)
		return models.Candle{High: c, Low: c - 1, Close: c}
	})

	k, d := Stochastic(rising, 14, 3)
	if k != 100 || d != 100 {
		t.Errorf("Stochastic(rising) = %v/%v, want 100/100", k, d)
	}

	k, d = Stochastic(rising[:5], 14, 3)
	if k != 50 || d != 50 {
		t.Errorf("Stochastic(short) = %v/%v, want 50/50", k, d)
	}

	mid := append(append([]models.Candle{}, rising...), models.Candle{High: 12, Low: 10, Close: 13.5})
	k, _ = Stochastic(mid, 14, 3)
	// window covers candles 7..20: high 20, low 7
	if want := (13.5 - 7) / (20 - 7) * 100; math.Abs(k-want) > 1e-9 {
		t.Errorf("Stochastic(pullback) K = %v, want %v", k, want)
	}
}
