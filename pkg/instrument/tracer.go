package instrument

import (
	"context"
	"time"

	"github.com/delaneyj/maple/reactive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/delaneyj/maple"

// TracerConfig configures the OpenTelemetry instrumentation.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: the module path).
	TracerName string

	// Provider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	Provider trace.TracerProvider
}

// TracerOption configures the OpenTelemetry instrumentation.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = provider
	}
}

// Tracer emits one span per flush. Writes, runs and disposals observed since
// the previous flush are attached to it as attributes.
type Tracer struct {
	tracer trace.Tracer

	writes    int
	runs      int
	disposals int
	busy      time.Duration
}

var _ reactive.Instrumentation = (*Tracer)(nil)

// NewTracer creates a Tracer from the global provider unless
// WithTracerProvider says otherwise.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: config.Provider.Tracer(config.TracerName),
	}
}

func (t *Tracer) SignalWritten() {
	t.writes++
}

func (t *Tracer) EffectRan(d time.Duration) {
	t.runs++
	t.busy += d
}

func (t *Tracer) ScopeDisposed() {
	t.disposals++
}

func (t *Tracer) Flushed(runs int, d time.Duration) {
	end := time.Now()
	_, span := t.tracer.Start(context.Background(), "maple.flush",
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(
			attribute.Int("maple.flush.runs", runs),
			attribute.Int("maple.signal.writes", t.writes),
			attribute.Int("maple.effect.runs", t.runs),
			attribute.Int("maple.scope.disposals", t.disposals),
			attribute.Int64("maple.effect.busy_ns", t.busy.Nanoseconds()),
		),
	)
	span.End(trace.WithTimestamp(end))

	t.writes, t.runs, t.disposals, t.busy = 0, 0, 0, 0
}
