package main

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/delaneyj/maple/internal/testutil"
	"github.com/delaneyj/maple/pkg/instrument"
	"github.com/delaneyj/maple/reactive"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphMatchesDirectEvaluation(t *testing.T) {
	tests := []GraphConfig{
		{Name: "static", Width: 6, TotalLayers: 4, StaticFraction: 1, Sources: 2, ReadFraction: 1, Iterations: 50},
		{Name: "dynamic", Width: 8, TotalLayers: 6, StaticFraction: 0.5, Sources: 4, ReadFraction: 0.5, Iterations: 80},
		{Name: "single source", Width: 3, TotalLayers: 3, StaticFraction: 0.1, Sources: 1, ReadFraction: 1, Iterations: 9},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			require.NoError(t, tt.Validate())
			rt := reactive.NewRuntime(reactive.WithLogger(testutil.NewTestLogger(t)))
			l := newLayout(tt)
			g := buildGraph(rt, l)

			assert.Equal(t, l.evaluate(tt.Iterations), g.run(tt.Iterations))
			assert.Positive(t, g.counter)
			assert.Equal(t, 0, rt.Depth())
		})
	}
}

func TestGraphStaticNodeRunsOncePerWrite(t *testing.T) {
	// one layer of width 2, each node reading both sources
	cfg := GraphConfig{Width: 2, TotalLayers: 2, StaticFraction: 1, Sources: 2, ReadFraction: 1, Iterations: 4}
	rt := reactive.NewRuntime()
	g := buildGraph(rt, newLayout(cfg))
	require.Equal(t, int64(2), g.counter)

	g.counter = 0
	g.run(cfg.Iterations)
	assert.Equal(t, int64(2*cfg.Iterations), g.counter)
}

func TestRunConfigKeepsBestRepeat(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	cfg := GraphConfig{Name: "small", Width: 4, TotalLayers: 3, StaticFraction: 1, Sources: 2, ReadFraction: 1, Iterations: 20}

	r, err := runConfig(context.Background(), logger, cfg, 2)
	require.NoError(t, err)
	assert.Equal(t, newLayout(cfg).evaluate(cfg.Iterations), r.sum)
	assert.Positive(t, r.count)

	cfg.ExpectedCount = r.count + 1
	_, err = runConfig(context.Background(), logger, cfg, 1)
	assert.ErrorContains(t, err, "count")
}

func TestRunConfigInstrumented(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := instrument.NewPrometheus(instrument.WithRegistry(registry))
	cfg := GraphConfig{Name: "small", Width: 4, TotalLayers: 3, StaticFraction: 1, Sources: 2, ReadFraction: 1, Iterations: 10}

	_, err := runConfig(context.Background(), slog.New(slog.DiscardHandler), cfg, 1,
		reactive.WithInstrumentation(instrument.Multi(metrics, instrument.NewTracer())))
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)
	var writes float64
	for _, mf := range families {
		if mf.GetName() == "maple_reactive_signal_writes_total" {
			writes = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	// warm up plus one timed run, one write per iteration
	assert.Equal(t, float64(2*cfg.Iterations), writes)
	require.NoError(t, logMetrics(testutil.NewTestLogger(t), registry))
}

func TestRemoveElems(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	out := removeElems(src, 2, rand.New(rand.NewSource(0)))
	assert.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, src)
	assert.Subset(t, src, out)
}
