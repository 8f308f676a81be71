package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Registry holds the scanner's Prometheus metrics
type Registry struct {
	reg *prometheus.Registry

	Evaluations   *prometheus.CounterVec
	Emissions     *prometheus.CounterVec
	Suppressions  *prometheus.CounterVec
	FetchErrors   *prometheus.CounterVec
	CycleDuration prometheus.Histogram
}

// NewRegistry builds and registers every collector on a private registry
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptosignal_evaluations_total",
				Help: "Recommendations produced, by class",
			},
			[]string{"class"},
		),
		Emissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptosignal_emissions_total",
				Help: "Recommendations delivered to the sink, by class",
			},
			[]string{"class"},
		),
		Suppressions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptosignal_suppressions_total",
				Help: "Recommendations withheld by the gate, by reason",
			},
			[]string{"reason"},
		),
		FetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptosignal_symbol_errors_total",
				Help: "Per-symbol failures, by stage",
			},
			[]string{"stage"},
		),
		CycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cryptosignal_cycle_duration_seconds",
				Help:    "Duration of a full polling cycle",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),
	}

	r.reg.MustRegister(
		r.Evaluations,
		r.Emissions,
		r.Suppressions,
		r.FetchErrors,
		r.CycleDuration,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Registry) RecordEvaluation(class string) { r.Evaluations.WithLabelValues(class).Inc() }
func (r *Registry) RecordEmission(class string)   { r.Emissions.WithLabelValues(class).Inc() }
func (r *Registry) RecordSuppression(reason string) {
	r.Suppressions.WithLabelValues(reason).Inc()
}
func (r *Registry) RecordError(stage string) { r.FetchErrors.WithLabelValues(stage).Inc() }

// ObserveCycle records how long a polling cycle took
func (r *Registry) ObserveCycle(d time.Duration) {
	r.CycleDuration.Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint until ctx is cancelled
func (r *Registry) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
