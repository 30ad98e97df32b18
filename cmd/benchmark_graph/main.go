package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/maple/pkg/instrument"
	"github.com/delaneyj/maple/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const (
	configKey   = "config"
	repeatsKey  = "repeats"
	parallelKey = "parallel"
	metricsKey  = "metrics"
	verboseKey  = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered dynamic graph benchmarks against the reactive runtime",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file listing the graphs to run, the built in set runs when empty",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per graph, the best one is reported (overrides the config)",
			},
			&cli.UintFlag{
				Name:  parallelKey,
				Usage: "Graphs benchmarked concurrently (overrides the config)",
			},
			&cli.BoolFlag{
				Name:  metricsKey,
				Usage: "Instrument every runtime and log the collected totals",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log every repeat",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type result struct {
	cfg      GraphConfig
	sum      int
	count    int64
	duration time.Duration
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool(verboseKey) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	if n := cmd.Uint(repeatsKey); n > 0 {
		cfg.Repeats = int(n)
	}
	if n := cmd.Uint(parallelKey); n > 0 {
		cfg.Parallel = int(n)
	}

	logger.Info("starting graph benchmark", "graphs", len(cfg.Graphs), "repeats", cfg.Repeats, "parallel", cfg.Parallel)
	start := time.Now()

	// the runtime only reports warnings here
	rtLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var (
		registry *prometheus.Registry
		metrics  *instrument.Prometheus
	)
	if cmd.Bool(metricsKey) {
		registry = prometheus.NewRegistry()
		metrics = instrument.NewPrometheus(instrument.WithRegistry(registry), instrument.WithSubsystem("benchmark_graph"))
	}

	results := make([]result, len(cfg.Graphs))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Parallel)
	for i, g := range cfg.Graphs {
		eg.Go(func() error {
			opts := []reactive.Option{reactive.WithLogger(rtLogger.With("graph", g.Name))}
			if metrics != nil {
				// tracers keep per flush state so each runtime gets its own
				tracer := instrument.NewTracer(instrument.WithTracerName("benchmark_graph/" + g.Name))
				opts = append(opts, reactive.WithInstrumentation(instrument.Multi(metrics, tracer)))
			}
			r, err := runConfig(egctx, logger, g, cfg.Repeats, opts...)
			if err != nil {
				return fmt.Errorf("graph %q: %w", g.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	render(os.Stdout, results)
	if registry != nil {
		if err := logMetrics(logger, registry); err != nil {
			return err
		}
	}
	logger.Info("finished graph benchmark", "duration", time.Since(start))
	return nil
}

// runConfig builds the graph once, warms it up and keeps the fastest of
// repeats timed runs. Every graph owns its runtime so configs can run on
// separate goroutines.
func runConfig(ctx context.Context, logger *slog.Logger, cfg GraphConfig, repeats int, opts ...reactive.Option) (result, error) {
	rt := reactive.NewRuntime(opts...)
	l := newLayout(cfg)
	g := buildGraph(rt, l)

	// warm up
	g.run(cfg.Iterations)

	best := result{cfg: cfg, duration: time.Hour}
	for i := range repeats {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		g.counter = 0
		start := time.Now()
		sum := g.run(cfg.Iterations)
		duration := time.Since(start)
		logger.Debug("repeat finished", "graph", cfg.Name, "repeat", i+1, "of", repeats, "sum", sum, "count", g.counter, "duration", duration)

		if duration < best.duration {
			best.duration = duration
			best.sum = sum
			best.count = g.counter
		}
	}

	if want := l.evaluate(cfg.Iterations); best.sum != want {
		return best, fmt.Errorf("sum %d does not match direct evaluation %d", best.sum, want)
	}
	if cfg.ExpectedSum != 0 && float64(best.sum) != cfg.ExpectedSum {
		return best, fmt.Errorf("sum %d, expected %v", best.sum, cfg.ExpectedSum)
	}
	if cfg.ExpectedCount != 0 && best.count != cfg.ExpectedCount {
		return best, fmt.Errorf("count %d, expected %d", best.count, cfg.ExpectedCount)
	}
	return best, nil
}

func render(w io.Writer, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"framework", "size", "sources", "read%", "static%",
		"iterations", "test", "time", "updateRate", "title",
	})
	for _, r := range results {
		updateRate := float64(r.count) / (float64(r.duration) / float64(time.Millisecond))
		table.Append([]string{
			"maple", // framework
			fmt.Sprintf("%dx%d", r.cfg.Width, r.cfg.TotalLayers), // size
			fmt.Sprint(r.cfg.Sources),                            // sources
			fmt.Sprint(r.cfg.ReadFraction),                       // read%
			fmt.Sprint(r.cfg.StaticFraction),                     // static%
			humanize.Comma(int64(r.cfg.Iterations)),              // iterations
			r.cfg.Name,                                           // test
			fmt.Sprint(r.duration),                               // time
			humanize.Comma(int64(updateRate)),                    // updateRate
			r.cfg.Title(),                                        // title
		})
	}
	table.Render()
}

// logMetrics logs one line per collected counter and histogram.
func logMetrics(logger *slog.Logger, registry prometheus.Gatherer) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				logger.Info("metric", "name", mf.GetName(), "value", humanize.Comma(int64(m.GetCounter().GetValue())))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				logger.Info("metric", "name", mf.GetName(), "count", humanize.Comma(int64(h.GetSampleCount())), "sum", h.GetSampleSum())
			}
		}
	}
	return nil
}
