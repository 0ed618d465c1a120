package gridsearch_test

import (
	"math"
	"testing"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) gridsearch.Pos { return gridsearch.Pos{X: x, Y: y} }

// layoutGraph parses an ASCII layout and returns its graph and endpoints.
func layoutGraph(t *testing.T, layout string, options ...gridgen.Option) (*gridsearch.Graph, gridsearch.Pos, gridsearch.Pos) {
	t.Helper()
	grid, markers, err := gridgen.Parse(layout, options...)
	require.NoError(t, err)
	require.NotNil(t, markers.Start)
	require.NotNil(t, markers.Goal)
	graph, err := grid.Graph()
	require.NoError(t, err)
	return graph, *markers.Start, *markers.Goal
}

// noiseGraph builds an eight-way octile grid with noise obstacles, keeping
// the opposite corners open.
func noiseGraph(t *testing.T, width, height int, seed int64, threshold float64) (*gridsearch.Graph, gridsearch.Pos, gridsearch.Pos) {
	t.Helper()
	grid, err := gridgen.New(width, height, gridgen.WithConnectivity(gridgen.Eight), gridgen.WithMetric(gridgen.Octile))
	require.NoError(t, err)
	start, goal := pos(0, 0), pos(width-1, height-1)
	grid.Scatter(seed, threshold, 0.2, start, goal)
	graph, err := grid.Graph()
	require.NoError(t, err)
	return graph, start, goal
}

func walkable(graph *gridsearch.Graph, p gridsearch.Pos) bool {
	n, ok := graph.Node(p)
	return ok && n.Walkable
}

// referenceCosts relaxes every edge until nothing changes.
func referenceCosts(graph *gridsearch.Graph, start gridsearch.Pos) map[gridsearch.Pos]float64 {
	dist := map[gridsearch.Pos]float64{start: 0}
	nodes := graph.Nodes()
	for changed := true; changed; {
		changed = false
		for _, n := range nodes {
			d, ok := dist[n.Pos]
			if !ok || !n.Walkable {
				continue
			}
			for _, m := range graph.NeighborsOf(n.Pos) {
				if !walkable(graph, m) {
					continue
				}
				next := d + graph.Distance(n.Pos, m)
				if old, seen := dist[m]; !seen || next < old-1e-9 {
					dist[m] = next
					changed = true
				}
			}
		}
	}
	return dist
}

// referenceHops returns the fewest edges from start to goal, or -1.
func referenceHops(graph *gridsearch.Graph, start, goal gridsearch.Pos) int {
	hops := map[gridsearch.Pos]int{start: 0}
	queue := []gridsearch.Pos{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return hops[current]
		}
		for _, m := range graph.NeighborsOf(current) {
			if _, seen := hops[m]; seen || !walkable(graph, m) {
				continue
			}
			hops[m] = hops[current] + 1
			queue = append(queue, m)
		}
	}
	return -1
}

func requireContiguousPath(t *testing.T, graph *gridsearch.Graph, result gridsearch.Result, start, goal gridsearch.Pos) {
	t.Helper()
	require.True(t, result.Found)
	require.NotEmpty(t, result.Path)
	require.Equal(t, start, result.Path[0])
	require.Equal(t, goal, result.Path[len(result.Path)-1])
	require.Equal(t, len(result.Path)-1, result.PathLength)

	seen := map[gridsearch.Pos]bool{}
	cost := 0.0
	for i, p := range result.Path {
		require.False(t, seen[p], "node %v repeated", p)
		seen[p] = true
		require.True(t, walkable(graph, p), "node %v is not walkable", p)
		if i > 0 {
			require.Contains(t, graph.NeighborsOf(result.Path[i-1]), p)
			cost += graph.Distance(result.Path[i-1], p)
		}
	}
	require.InDelta(t, cost, result.Cost, 1e-9)
}

func isInf(v float64) bool { return math.IsInf(v, 1) }

// openGraph is an obstacle-free four-way grid searched corner to corner.
func openGraph(t *testing.T, width, height int) (*gridsearch.Graph, gridsearch.Pos, gridsearch.Pos) {
	t.Helper()
	grid, err := gridgen.New(width, height)
	require.NoError(t, err)
	graph, err := grid.Graph()
	require.NoError(t, err)
	return graph, pos(0, 0), pos(width-1, height-1)
}
