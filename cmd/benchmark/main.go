package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/delaneyj/maple/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	widthsKey     = "widths"
	heightsKey    = "heights"
	iterationsKey = "iterations"
	profileKey    = "profile"
	verboseKey    = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write to effect propagation latency through memo chains",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  widthsKey,
				Usage: "Comma separated number of parallel chains",
				Value: "1,10,100,1000",
			},
			&cli.StringFlag{
				Name:  heightsKey,
				Usage: "Comma separated number of memos per chain",
				Value: "1,10,100,1000",
			},
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Writes timed per width x height pair",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Enable debug logging",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool(verboseKey) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ww, err := parseSizes(cmd.String(widthsKey))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", widthsKey, err)
	}
	hh, err := parseSizes(cmd.String(heightsKey))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", heightsKey, err)
	}
	iters := int(cmd.Uint(iterationsKey))
	if iters < 1 {
		return fmt.Errorf("--%s must be positive", iterationsKey)
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	logger.Info("warming up")
	propagateTable(ww, hh, iters)

	tbl := propagateTable(ww, hh, iters)
	tbl.SetOutputMirror(os.Stdout)
	tbl.Render()
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("size must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes in %q", s)
	}
	return sizes, nil
}

func addOne(v int) int {
	return v + 1
}

// propagate builds w chains of h memos hanging off one source, each ending in
// an effect, and returns the number of effect runs seen per write.
func propagate(rt *reactive.Runtime, w, h int) (src *reactive.Signal[int], effectRuns *int) {
	runs := 0
	src = reactive.CreateSignal(rt, 1)
	for range w {
		var last reactive.Reader[int] = src
		for range h {
			last = reactive.Derive1(rt, last, addOne)
		}
		reactive.CreateEffect(rt, func() {
			last.Get()
			runs++
		})
	}
	return src, &runs
}

func propagateTable(ww, hh []int, iters int) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle("Maple Signals")
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactive.NewRuntime()
			root := reactive.CreateRoot(rt, func(dispose func()) {
				src, _ := propagate(rt, w, h)
				for range iters {
					start := time.Now()
					src.Set(src.Peek() + 1)
					tach.AddTime(time.Since(start))
				}
			})
			root.Dispose()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}
	return tbl
}
