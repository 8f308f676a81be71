package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Alias1177/cryptosignal/internal/analyze"
	"github.com/Alias1177/cryptosignal/internal/metrics"
	"github.com/Alias1177/cryptosignal/internal/notify"
	"github.com/Alias1177/cryptosignal/internal/signal"
	"github.com/Alias1177/cryptosignal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Analyzer produces a recommendation for one symbol
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*models.Recommendation, error)
}

// Pruner is implemented by cooldown stores that keep claims in process memory
type Pruner interface {
	Prune(now time.Time, cooldown time.Duration) int
}

// Config controls the polling loop
type Config struct {
	Symbols    []string
	Schedule   string
	Pause      time.Duration
	Cooldown   time.Duration
	RunOnStart bool
}

// CycleReport summarizes one pass over the symbol list
type CycleReport struct {
	Evaluated  int
	Emitted    int
	Suppressed int
	Failed     int
}

// Scanner evaluates the symbol list sequentially on a cron schedule
type Scanner struct {
	cfg      Config
	analyzer Analyzer
	gate     *signal.Gate
	notifier models.Notifier
	metrics  *metrics.Registry
	pruner   Pruner
	now      func() time.Time

	cron     *cron.Cron
	stopping chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

type Option func(*Scanner)

// WithPruner drops expired in-memory claims after every cycle
func WithPruner(p Pruner) Option {
	return func(s *Scanner) { s.pruner = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// New creates a scanner
func New(cfg Config, analyzer Analyzer, gate *signal.Gate, notifier models.Notifier, m *metrics.Registry, opts ...Option) *Scanner {
	s := &Scanner{
		cfg:      cfg,
		analyzer: analyzer,
		gate:     gate,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
		stopping: make(chan struct{}),
		logger:   log.With().Str("component", "scanner").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{s.logger}),
		cron.WithChain(cron.Recover(cronLogger{s.logger})),
	)
	return s
}

// Start registers the polling job and starts the scheduler.
// Cycles never overlap; a cycle still running when the next one is due is skipped.
func (s *Scanner) Start(ctx context.Context) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cronLogger{s.logger})).Then(cron.FuncJob(func() {
		s.RunCycle(ctx)
	}))

	if _, err := s.cron.AddJob(s.cfg.Schedule, job); err != nil {
		return fmt.Errorf("%w: poll schedule %q: %v", models.ErrConfiguration, s.cfg.Schedule, err)
	}
	if s.cfg.RunOnStart {
		s.cron.Schedule(&onceSchedule{}, job)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.cfg.Schedule).
		Int("symbols", len(s.cfg.Symbols)).
		Msg("scanner started")
	return nil
}

// Stop lets the in-flight symbol finish and waits for the running cycle to return
func (s *Scanner) Stop() {
	s.stopOnce.Do(func() { close(s.stopping) })
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scanner stopped")
}

func (s *Scanner) stopped() bool {
	select {
	case <-s.stopping:
		return true
	default:
		return false
	}
}

// RunCycle evaluates every symbol once, in list order. A failing symbol is logged and skipped.
func (s *Scanner) RunCycle(ctx context.Context) CycleReport {
	started := time.Now()
	var report CycleReport

	for i, symbol := range s.cfg.Symbols {
		if ctx.Err() != nil || s.stopped() {
			s.logger.Info().Int("remaining", len(s.cfg.Symbols)-i).Msg("cycle interrupted")
			break
		}
		if i > 0 && s.cfg.Pause > 0 {
			select {
			case <-ctx.Done():
			case <-s.stopping:
			case <-time.After(s.cfg.Pause):
			}
			if ctx.Err() != nil || s.stopped() {
				break
			}
		}

		emitted, err := s.processSymbol(ctx, symbol)
		switch {
		case err != nil:
			report.Failed++
		case emitted:
			report.Evaluated++
			report.Emitted++
		default:
			report.Evaluated++
			report.Suppressed++
		}
	}

	if s.pruner != nil {
		if n := s.pruner.Prune(s.now(), s.cfg.Cooldown); n > 0 {
			s.logger.Debug().Int("pruned", n).Msg("expired cooldowns dropped")
		}
	}

	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.ObserveCycle(elapsed)
	}
	s.logger.Info().
		Int("evaluated", report.Evaluated).
		Int("emitted", report.Emitted).
		Int("suppressed", report.Suppressed).
		Int("failed", report.Failed).
		Dur("elapsed", elapsed).
		Msg("cycle finished")
	return report
}

func (s *Scanner) processSymbol(ctx context.Context, symbol string) (emitted bool, err error) {
	logger := s.logger.With().Str("symbol", symbol).Logger()
	stage := "analyze"

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			logger.Error().Str("stage", stage).Interface("panic", r).Msg("symbol evaluation panicked")
			s.recordError("panic")
		}
	}()

	rec, err := s.analyzer.Analyze(ctx, symbol)
	if err != nil {
		var stageErr *analyze.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		logger.Error().Err(err).Str("stage", stage).Msg("symbol skipped")
		s.recordError(stageLabel(stage))
		return false, err
	}
	if s.metrics != nil {
		s.metrics.RecordEvaluation(string(rec.Class))
	}

	stage = "gate"
	decision, err := s.gate.Admit(ctx, rec, s.now())
	if err != nil {
		logger.Error().Err(err).Str("stage", stage).Msg("cooldown store failed, signal withheld")
		s.recordError(stage)
	}
	if !decision.Emit {
		logger.Debug().
			Str("class", string(rec.Class)).
			Float64("confidence", rec.Confidence).
			Str("reason", decision.Reason).
			Msg("signal suppressed")
		if s.metrics != nil {
			s.metrics.RecordSuppression(decision.Reason)
		}
		return false, nil
	}

	stage = "notify"
	if err := s.notifier.Notify(ctx, rec, notify.FormatRecommendation(rec)); err != nil {
		// the claim stays; delivery outcome never reopens the window
		logger.Error().Err(err).Str("stage", stage).Msg("delivery failed")
		s.recordError(stage)
	}
	if s.metrics != nil {
		s.metrics.RecordEmission(string(rec.Class))
	}
	logger.Info().
		Str("class", string(rec.Class)).
		Float64("confidence", rec.Confidence).
		Int("leverage", rec.Leverage).
		Msg("signal emitted")
	return true, nil
}

func (s *Scanner) recordError(stage string) {
	if s.metrics != nil {
		s.metrics.RecordError(stage)
	}
}

// stageLabel keeps metric cardinality low: "candles:5m" becomes "candles"
func stageLabel(stage string) string {
	label, _, _ := strings.Cut(stage, ":")
	return label
}

// onceSchedule fires immediately and then never again
type onceSchedule struct {
	fired bool
}

func (o *onceSchedule) Next(t time.Time) time.Time {
	if o.fired {
		return time.Time{}
	}
	o.fired = true
	return t
}

// cronLogger routes cron's internal logging through zerolog
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
