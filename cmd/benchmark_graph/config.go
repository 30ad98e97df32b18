package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MAPLE_BENCH_"

// GraphConfig describes one layered dependency graph and how to exercise it.
type GraphConfig struct {
	Name           string  `koanf:"name"`            // friendly name, should be unique
	Width          int     `koanf:"width"`           // nodes per layer
	TotalLayers    int     `koanf:"total_layers"`    // depth, the sources count as one layer
	StaticFraction float64 `koanf:"static_fraction"` // fraction of nodes that always read all their sources
	Sources        int     `koanf:"sources"`         // sources read by each node
	ReadFraction   float64 `koanf:"read_fraction"`   // fraction of leaves read after each write
	Iterations     int     `koanf:"iterations"`
	ExpectedSum    float64 `koanf:"expected_sum"`   // checked when non zero
	ExpectedCount  int64   `koanf:"expected_count"` // checked when non zero
}

// Config is the benchmark_graph configuration file.
type Config struct {
	Repeats  int           `koanf:"repeats"`
	Parallel int           `koanf:"parallel"`
	Graphs   []GraphConfig `koanf:"graphs"`
}

var defaultGraphs = []GraphConfig{
	{Name: "simple component", Width: 10, TotalLayers: 5, StaticFraction: 1, Sources: 2, ReadFraction: 0.2, Iterations: 600_000},
	{Name: "dynamic component", Width: 10, TotalLayers: 10, StaticFraction: 0.75, Sources: 6, ReadFraction: 0.2, Iterations: 15_000},
	{Name: "large web app", Width: 1000, TotalLayers: 12, StaticFraction: 0.95, Sources: 4, ReadFraction: 1, Iterations: 7_000},
	{Name: "wide dense", Width: 1000, TotalLayers: 5, StaticFraction: 1, Sources: 25, ReadFraction: 1, Iterations: 3_000},
	{Name: "deep", Width: 5, TotalLayers: 500, StaticFraction: 1, Sources: 3, ReadFraction: 1, Iterations: 500},
	{Name: "very dynamic", Width: 100, TotalLayers: 15, StaticFraction: 0.5, Sources: 6, ReadFraction: 1, Iterations: 2_000},
}

// LoadConfig reads path, if given, then overlays MAPLE_BENCH_* environment
// variables. Precedence (highest to lowest): env vars > config file > defaults.
// Without a file, or with a file listing no graphs, the built in graphs run.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"repeats":  5,
		"parallel": 1,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// MAPLE_BENCH_REPEATS -> repeats
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	// graphs are decoded one by one so that only missing fractions default
	if graphs := k.Slices("graphs"); len(graphs) > 0 {
		cfg.Graphs = make([]GraphConfig, len(graphs))
		for i, gk := range graphs {
			g, err := loadGraph(gk)
			if err != nil {
				return nil, fmt.Errorf("unable to decode graph %d: %w", i, err)
			}
			cfg.Graphs[i] = g
		}
	}
	if len(cfg.Graphs) == 0 {
		cfg.Graphs = append([]GraphConfig(nil), defaultGraphs...)
	}
	for i := range cfg.Graphs {
		cfg.Graphs[i].ApplyDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadGraph decodes one graph entry. Fractions left out of the file default
// to 1, a fully static graph read in full; an explicit 0 is kept.
func loadGraph(src *koanf.Koanf) (GraphConfig, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"static_fraction": 1.0,
		"read_fraction":   1.0,
	}, "."), nil); err != nil {
		return GraphConfig{}, err
	}
	if err := k.Merge(src); err != nil {
		return GraphConfig{}, err
	}
	var g GraphConfig
	err := k.Unmarshal("", &g)
	return g, err
}

// ApplyDefaults names unnamed graphs after their shape.
func (g *GraphConfig) ApplyDefaults() {
	if g.Name == "" {
		g.Name = g.Title()
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Repeats < 1 {
		errs = append(errs, fmt.Errorf("repeats must be at least 1, got %d", c.Repeats))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be at least 1, got %d", c.Parallel))
	}
	for _, g := range c.Graphs {
		if err := g.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("graph %q: %w", g.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (g *GraphConfig) Validate() error {
	switch {
	case g.Width < 1:
		return fmt.Errorf("width must be positive, got %d", g.Width)
	case g.TotalLayers < 2:
		return fmt.Errorf("total_layers must be at least 2, got %d", g.TotalLayers)
	case g.Sources < 1:
		return fmt.Errorf("sources must be positive, got %d", g.Sources)
	case g.StaticFraction < 0 || g.StaticFraction > 1:
		return fmt.Errorf("static_fraction must be within [0, 1], got %v", g.StaticFraction)
	case g.ReadFraction <= 0 || g.ReadFraction > 1:
		return fmt.Errorf("read_fraction must be within (0, 1], got %v", g.ReadFraction)
	case g.Iterations < 1:
		return fmt.Errorf("iterations must be positive, got %d", g.Iterations)
	}
	return nil
}

// Title summarizes the graph shape.
func (g *GraphConfig) Title() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d %d sources", g.Width, g.TotalLayers, g.Sources)
	if g.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if g.ReadFraction < 1 {
		fmt.Fprintf(&sb, " read %0.2f%%", 100*g.ReadFraction)
	}
	return sb.String()
}
