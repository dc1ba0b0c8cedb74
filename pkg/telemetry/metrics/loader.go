package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"covenant-hq/saturn/pkg/contract/loader"
)

// LoaderMetrics tracks metrics for contract loading.
//
// Metrics:
//   - saturn_contract_loads_total: Total loads by outcome
//   - saturn_contract_load_failures_total: Failed loads by error kind
//   - saturn_contract_load_duration_seconds: Load duration
type LoaderMetrics struct {
	loadsTotal    *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	loadDuration  prometheus.Histogram
}

// NewLoaderMetrics creates and registers loader metrics with the provided
// registry.
func NewLoaderMetrics(registry *prometheus.Registry) *LoaderMetrics {
	lm := &LoaderMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saturn",
				Name:      "contract_loads_total",
				Help:      "Total number of contract load attempts",
			},
			[]string{"outcome"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saturn",
				Name:      "contract_load_failures_total",
				Help:      "Total number of failed contract loads by error kind",
			},
			[]string{"kind"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "saturn",
				Name:      "contract_load_duration_seconds",
				Help:      "Duration of contract loads in seconds",
				// Loads are filesystem-bound and small: 100µs to ~1.6s
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
			},
		),
	}

	registry.MustRegister(
		lm.loadsTotal,
		lm.failuresTotal,
		lm.loadDuration,
	)

	return lm
}

// RecordLoad records one load attempt and its duration.
func (lm *LoaderMetrics) RecordLoad(err error, duration time.Duration) {
	if err == nil {
		lm.loadsTotal.WithLabelValues("success").Inc()
	} else {
		lm.loadsTotal.WithLabelValues("failure").Inc()
		lm.failuresTotal.WithLabelValues(errorKind(err)).Inc()
	}
	lm.loadDuration.Observe(duration.Seconds())
}

// errorKind maps a loader error to a bounded label value.
func errorKind(err error) string {
	var (
		secErr   *loader.SecurityError
		circErr  *loader.CircularIncludeError
		depthErr *loader.DepthError
		sizeErr  *loader.SizeError
		valErr   *loader.ValidationError
		loadErr  *loader.LoadError
	)

	switch {
	case errors.As(err, &secErr):
		return "security_violation"
	case errors.As(err, &circErr):
		return "circular_include"
	case errors.As(err, &depthErr):
		return "max_depth_exceeded"
	case errors.As(err, &sizeErr):
		return "file_too_large"
	case errors.As(err, &valErr):
		return "validation"
	case errors.As(err, &loadErr):
		return "file_not_found"
	default:
		return "other"
	}
}
