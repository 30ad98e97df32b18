package main

import (
	"math"
	"math/rand"

	"github.com/delaneyj/maple/reactive"
)

// node describes one derived cell: the cells of the previous layer it reads,
// and whether it skips one of them depending on the first value.
type node struct {
	sources []int
	dynamic bool
}

// layout is the shape of a graph, independent of any runtime, so the same
// graph can be built reactively and evaluated directly.
type layout struct {
	width  int
	layers [][]node
	leaves []int // indexes of the leaves read after each write
}

func newLayout(cfg GraphConfig) *layout {
	random := rand.New(rand.NewSource(0))
	l := &layout{
		width:  cfg.Width,
		layers: make([][]node, cfg.TotalLayers-1),
	}
	for i := range l.layers {
		row := make([]node, cfg.Width)
		for myDex := range row {
			srcs := make([]int, 0, cfg.Sources)
			for sourceDex := range cfg.Sources {
				srcs = append(srcs, (myDex+sourceDex)%cfg.Width)
			}
			row[myDex] = node{
				sources: srcs,
				dynamic: random.Float64() >= cfg.StaticFraction,
			}
		}
		l.layers[i] = row
	}

	leaves := make([]int, cfg.Width)
	for i := range leaves {
		leaves[i] = i
	}
	skip := int(math.Round(float64(len(leaves)) * (1 - cfg.ReadFraction)))
	l.leaves = removeElems(leaves, skip, random)
	return l
}

// eval computes a node's value from the values its sources read.
func (n node) eval(read func(i int) int) int {
	if !n.dynamic || len(n.sources) < 2 {
		sum := 0
		for _, s := range n.sources {
			sum += read(s)
		}
		return sum
	}

	sum := read(n.sources[0])
	tail := n.sources[1:]
	shouldDrop := sum&0x1 > 0
	dropDex := sum % len(tail)
	for i, s := range tail {
		if shouldDrop && i == dropDex {
			continue
		}
		sum += read(s)
	}
	return sum
}

type graph struct {
	rt      *reactive.Runtime
	sources []*reactive.Signal[int]
	leaves  []reactive.Reader[int]
	counter int64
}

func buildGraph(rt *reactive.Runtime, l *layout) *graph {
	g := &graph{rt: rt}
	g.sources = make([]*reactive.Signal[int], l.width)
	prev := make([]reactive.Reader[int], l.width)
	for i := range g.sources {
		g.sources[i] = reactive.CreateSignal(rt, i)
		prev[i] = g.sources[i]
	}

	for _, layer := range l.layers {
		row := make([]reactive.Reader[int], len(layer))
		for i, n := range layer {
			in := prev
			row[i] = reactive.CreateMemo(rt, func() int {
				g.counter++
				return n.eval(func(s int) int {
					return in[s].Get()
				})
			})
		}
		prev = row
	}

	g.leaves = make([]reactive.Reader[int], len(l.leaves))
	for i, leaf := range l.leaves {
		g.leaves[i] = prev[leaf]
	}
	return g
}

// run writes one source per iteration and reads the selected leaves after
// each write. It returns the sum of the leaves at the end.
func (g *graph) run(iterations int) int {
	for i := range iterations {
		reactive.Batch(g.rt, func() {
			sourceDex := i % len(g.sources)
			g.sources[sourceDex].Set(i + sourceDex)
		})
		for _, leaf := range g.leaves {
			leaf.Get()
		}
	}

	sum := 0
	for _, leaf := range g.leaves {
		sum += leaf.Get()
	}
	return sum
}

// evaluate computes the same leaf sum as run without the reactive runtime.
func (l *layout) evaluate(iterations int) int {
	values := make([]int, l.width)
	for i := range values {
		values[i] = i
	}
	for i := range iterations {
		sourceDex := i % l.width
		values[sourceDex] = i + sourceDex
	}

	for _, layer := range l.layers {
		next := make([]int, len(layer))
		for i, n := range layer {
			next[i] = n.eval(func(s int) int { return values[s] })
		}
		values = next
	}

	sum := 0
	for _, leaf := range l.leaves {
		sum += values[leaf]
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for range rmCount {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
