package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alias1177/cryptosignal/internal/analysis/market"
	"github.com/Alias1177/cryptosignal/internal/analysis/prediction"
	"github.com/Alias1177/cryptosignal/internal/analysis/technical"
	"github.com/Alias1177/cryptosignal/internal/calculate"
	"github.com/Alias1177/cryptosignal/internal/patterns"
	"github.com/Alias1177/cryptosignal/internal/trading/risk"
	"github.com/Alias1177/cryptosignal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Stages reported by StageError
const (
	StageTicker  = "ticker"
	StageCandles = "candles"
	StagePrice   = "price"
)

// StageError tells which step of a symbol's evaluation failed
type StageError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Engine turns fresh market data into a Recommendation
type Engine struct {
	md          models.MarketData
	profile     *prediction.Profile
	calibration risk.Calibration
	specs       []market.TimeframeSpec
	params      calculate.Params
	now         func() time.Time
	logger      zerolog.Logger
}

type Option func(*Engine)

func WithCalibration(c risk.Calibration) Option {
	return func(e *Engine) { e.calibration = c }
}

func WithTimeframes(specs []market.TimeframeSpec) Option {
	return func(e *Engine) { e.specs = specs }
}

func WithParams(p calculate.Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine for one scoring profile
func NewEngine(md models.MarketData, profile *prediction.Profile, opts ...Option) *Engine {
	e := &Engine{
		md:          md,
		profile:     profile,
		calibration: risk.DefaultCalibration(),
		specs:       market.DefaultSpecs(),
		params:      calculate.DefaultParams(),
		now:         time.Now,
		logger:      log.With().Str("component", "engine").Str("profile", profile.Name).Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.specs = withPrimary(e.specs, profile.PrimaryTimeframe)
	return e
}

// Profile returns the scoring profile in use
func (e *Engine) Profile() *prediction.Profile { return e.profile }

// withPrimary makes sure the primary timeframe is always fetched
func withPrimary(specs []market.TimeframeSpec, primary models.Timeframe) []market.TimeframeSpec {
	for _, s := range specs {
		if s.Timeframe == primary {
			return specs
		}
	}
	out := make([]market.TimeframeSpec, 0, len(specs)+1)
	out = append(out, specs...)
	return append(out, market.TimeframeSpec{Timeframe: primary, Limit: 100, Lookback: 4, Window: 24})
}

// Analyze evaluates one symbol. An unknown symbol or a missing primary series fails the call;
// secondary timeframes and the ticker degrade to neutral features.
func (e *Engine) Analyze(ctx context.Context, symbol string) (*models.Recommendation, error) {
	symbol = models.NormalizeSymbol(symbol)
	logger := e.logger.With().Str("symbol", symbol).Logger()
	primaryTF := e.profile.PrimaryTimeframe

	ticker, err := e.md.Ticker(ctx, symbol)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || ctx.Err() != nil {
			return nil, &StageError{Symbol: symbol, Stage: StageTicker, Err: err}
		}
		logger.Warn().Err(err).Msg("ticker unavailable, 24h features neutral")
		ticker = nil
	}

	series := make([]models.TimeframeSeries, 0, len(e.specs))
	for _, spec := range e.specs {
		candles, err := e.md.Candles(ctx, symbol, spec.Timeframe, spec.Limit)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) || spec.Timeframe == primaryTF || ctx.Err() != nil {
				return nil, &StageError{Symbol: symbol, Stage: StageCandles + ":" + string(spec.Timeframe), Err: err}
			}
			logger.Warn().Err(err).Str("timeframe", string(spec.Timeframe)).Msg("timeframe skipped")
			continue
		}
		series = append(series, models.TimeframeSeries{Symbol: symbol, Timeframe: spec.Timeframe, Candles: candles})
	}

	primary := models.CandlesFor(series, primaryTF)
	price := 0.0
	if ticker != nil && ticker.LastPrice > 0 {
		price = ticker.LastPrice
	} else if len(primary) > 0 {
		price = primary[len(primary)-1].Close
	}
	if price <= 0 {
		return nil, &StageError{Symbol: symbol, Stage: StagePrice, Err: models.ErrInsufficientHistory}
	}

	ind := calculate.CalculateAllIndicators(primary, e.params)
	volume5m := ind.Snapshot.VolumeRatio
	if primaryTF != models.Timeframe5m {
		volume5m = 1
		if c := models.CandlesFor(series, models.Timeframe5m); len(c) > 0 {
			volume5m = calculate.VolumeRatio(models.Volumes(c), e.params.VolumeWindow)
		}
	}

	fv := prediction.BuildFeatures(prediction.FeatureInputs{
		Symbol:        symbol,
		Price:         price,
		Primary:       ind.Snapshot,
		VolumeRatio5m: volume5m,
		MACD:          patterns.AnalyzeMACD(ind.Closes, ind.MACD),
		Timeframes:    market.Aggregate(series, ticker, e.specs),
		Levels:        technical.DetectSupportResistance(primary, technical.DefaultExtremaWindow),
	})

	breakdown := prediction.Score(e.profile, fv)
	class := prediction.Classify(breakdown.Total, e.profile.Thresholds)
	direction := models.DirectionOf(breakdown.Total)
	if class == models.Hold {
		direction = models.DirectionHold
	}

	assessment := e.calibration.Assess(risk.Signal{
		Score:             breakdown.Total,
		MaxScore:          e.profile.MaxScore,
		EntryQuality:      breakdown.EntryQuality,
		HistogramStrength: fv.MACDHistogramStrength,
		VolumeRatio:       fv.VolumeRatio5m,
		Momentum15m:       fv.Momentum15m,
		Momentum4h:        fv.Momentum4h,
		Change24h:         fv.Change24h,
		Position24h:       fv.Position24h,
		Volatility1h:      fv.Volatility1h,
		Volatility24h:     fv.Volatility24h,
	}, direction)

	rec := &models.Recommendation{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		Profile:      e.profile.Name,
		Class:        class,
		Direction:    direction,
		Score:        breakdown.Total,
		Confidence:   assessment.Confidence,
		Leverage:     assessment.Leverage,
		PositionSize: assessment.PositionSize,
		Risk:         assessment.Risk,
		Reasons:      breakdown.Reasons,
		Price:        price,
		Breakdown:    breakdown,
		Indicators:   ind.Snapshot,
		Ticker:       ticker,
		CreatedAt:    e.now(),
	}

	logger.Debug().
		Str("class", string(class)).
		Float64("score", breakdown.Total).
		Float64("confidence", assessment.Confidence).
		Int("leverage", assessment.Leverage).
		Msg("symbol evaluated")

	return rec, nil
}
