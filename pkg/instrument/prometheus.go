// Package instrument provides reactive.Instrumentation implementations backed
// by Prometheus and OpenTelemetry.
package instrument

import (
	"time"

	"github.com/delaneyj/maple/reactive"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "maple").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect and flush durations.
	// Default: powers of ten from one microsecond to one second.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus instrumentation.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "maple",
		Subsystem: "reactive",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 7),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus records runtime events as Prometheus metrics.
type Prometheus struct {
	signalWrites   prometheus.Counter
	effectRuns     prometheus.Counter
	effectDuration prometheus.Histogram
	disposals      prometheus.Counter
	flushes        prometheus.Counter
	flushRuns      prometheus.Histogram
	flushDuration  prometheus.Histogram
}

var _ reactive.Instrumentation = (*Prometheus)(nil)

// NewPrometheus registers the runtime metrics and returns the hooks feeding
// them. Registering twice against the same registry panics.
//
// Metrics collected:
//   - maple_reactive_signal_writes_total
//   - maple_reactive_effect_runs_total
//   - maple_reactive_effect_duration_seconds
//   - maple_reactive_scope_disposals_total
//   - maple_reactive_flushes_total
//   - maple_reactive_flush_runs
//   - maple_reactive_flush_duration_seconds
func NewPrometheus(opts ...MetricsOption) *Prometheus {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     buckets,
		})
	}

	return &Prometheus{
		signalWrites:   counter("signal_writes_total", "Total number of signal writes"),
		effectRuns:     counter("effect_runs_total", "Total number of computation runs"),
		effectDuration: histogram("effect_duration_seconds", "Computation run duration in seconds", config.Buckets),
		disposals:      counter("scope_disposals_total", "Total number of disposed scopes and computations"),
		flushes:        counter("flushes_total", "Total number of scheduler flushes"),
		flushRuns:      histogram("flush_runs", "Computation runs per flush", prometheus.ExponentialBuckets(1, 4, 8)),
		flushDuration:  histogram("flush_duration_seconds", "Flush duration in seconds", config.Buckets),
	}
}

func (p *Prometheus) SignalWritten() {
	p.signalWrites.Inc()
}

func (p *Prometheus) EffectRan(d time.Duration) {
	p.effectRuns.Inc()
	p.effectDuration.Observe(d.Seconds())
}

func (p *Prometheus) ScopeDisposed() {
	p.disposals.Inc()
}

func (p *Prometheus) Flushed(runs int, d time.Duration) {
	p.flushes.Inc()
	p.flushRuns.Observe(float64(runs))
	p.flushDuration.Observe(d.Seconds())
}
