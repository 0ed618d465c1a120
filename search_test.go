package gridsearch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openThreeByThree = `
S..
...
..G
`

func TestOpenGrid(t *testing.T) {
	for _, algorithm := range gridsearch.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, start, goal := layoutGraph(t, openThreeByThree)

			result, err := gridsearch.Search(context.Background(), algorithm, graph, start, goal)
			require.NoError(t, err)

			requireContiguousPath(t, graph, result, start, goal)
			assert.LessOrEqual(t, result.NodesExpanded, 9)
			assert.False(t, result.Cancelled)
			if algorithm != gridsearch.DepthFirstSearch {
				assert.Equal(t, 4, result.PathLength)
				assert.Equal(t, 4.0, result.Cost)
			}
		})
	}
}

func TestUnreachableGoal(t *testing.T) {
	const walledIn = `
S..
..#
.#G
`
	for _, algorithm := range gridsearch.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, start, goal := layoutGraph(t, walledIn)

			result, err := gridsearch.Search(context.Background(), algorithm, graph, start, goal)
			require.NoError(t, err)

			assert.False(t, result.Found)
			assert.False(t, result.Cancelled)
			assert.Empty(t, result.Path)
			assert.Zero(t, result.PathLength)
			assert.Equal(t, 6, result.NodesExpanded)
		})
	}
}

func TestStartIsGoal(t *testing.T) {
	for _, algorithm := range gridsearch.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			grid, err := gridgen.New(1, 1)
			require.NoError(t, err)
			graph, err := grid.Graph()
			require.NoError(t, err)

			result, err := gridsearch.Search(context.Background(), algorithm, graph, pos(0, 0), pos(0, 0))
			require.NoError(t, err)

			assert.True(t, result.Found)
			assert.Equal(t, []gridsearch.Pos{pos(0, 0)}, result.Path)
			assert.Equal(t, 1, result.NodesExpanded)
			assert.Zero(t, result.PathLength)
			assert.Zero(t, result.Cost)
		})
	}
}

func TestWeightedSearchIsOptimal(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			graph, start, goal := noiseGraph(t, 16, 12, seed, 0.25)
			want, reachable := referenceCosts(graph, start)[goal]

			for _, algorithm := range []gridsearch.Algorithm{gridsearch.AStarSearch, gridsearch.DijkstraSearch} {
				graph.Reset()
				result, err := gridsearch.Search(context.Background(), algorithm, graph, start, goal)
				require.NoError(t, err)
				require.Equal(t, reachable, result.Found, algorithm.String())
				if !reachable {
					continue
				}
				requireContiguousPath(t, graph, result, start, goal)
				assert.InDelta(t, want, result.Cost, 1e-9, algorithm.String())
				assert.LessOrEqual(t, result.NodesExpanded, graph.Len())
			}
		})
	}
}

func TestBreadthFirstUsesFewestEdges(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			graph, start, goal := noiseGraph(t, 16, 12, seed, 0.25)
			want := referenceHops(graph, start, goal)

			result, err := gridsearch.Search(context.Background(), gridsearch.BreadthFirstSearch, graph, start, goal)
			require.NoError(t, err)
			if want < 0 {
				assert.False(t, result.Found)
				return
			}
			requireContiguousPath(t, graph, result, start, goal)
			assert.Equal(t, want, result.PathLength)
		})
	}
}

func TestDepthFirstFindsAPath(t *testing.T) {
	graph, start, goal := noiseGraph(t, 16, 12, 3, 0.25)
	reachable := referenceHops(graph, start, goal) >= 0

	result, err := gridsearch.Search(context.Background(), gridsearch.DepthFirstSearch, graph, start, goal)
	require.NoError(t, err)
	require.Equal(t, reachable, result.Found)
	if reachable {
		requireContiguousPath(t, graph, result, start, goal)
	}
}

func TestExpandedCountMatchesDistinctExpandedNodes(t *testing.T) {
	for _, algorithm := range gridsearch.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, start, goal := noiseGraph(t, 12, 10, 5, 0.3)
			stepper, err := gridsearch.NewStepper(context.Background(), algorithm, graph, start, goal)
			require.NoError(t, err)

			expanded := map[gridsearch.Pos]bool{}
			for {
				snapshot, err := stepper.Step()
				require.NoError(t, err)
				for _, p := range snapshot.Closed {
					assert.False(t, expanded[p], "%v expanded twice", p)
					expanded[p] = true
				}
				if snapshot.Done {
					break
				}
			}
			result := stepper.Result()
			assert.Equal(t, len(expanded), result.NodesExpanded)
			assert.LessOrEqual(t, result.NodesExpanded, graph.Len())
		})
	}
}

func TestRerunAfterResetIsIdentical(t *testing.T) {
	trace := func(t *testing.T, graph *gridsearch.Graph, algorithm gridsearch.Algorithm, start, goal gridsearch.Pos) ([]gridsearch.StepSnapshot, gridsearch.Result) {
		stepper, err := gridsearch.NewStepper(context.Background(), algorithm, graph, start, goal)
		require.NoError(t, err)
		var steps []gridsearch.StepSnapshot
		for !stepper.Done() {
			snapshot, err := stepper.Step()
			require.NoError(t, err)
			steps = append(steps, snapshot)
		}
		return steps, stepper.Result()
	}

	for _, algorithm := range gridsearch.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, start, goal := noiseGraph(t, 14, 9, 11, 0.3)

			firstSteps, firstResult := trace(t, graph, algorithm, start, goal)
			firstNodes := graph.Nodes()
			graph.Reset()
			secondSteps, secondResult := trace(t, graph, algorithm, start, goal)

			ignoreRunID := cmpopts.IgnoreFields(gridsearch.StepSnapshot{}, "RunID")
			assert.Empty(t, cmp.Diff(firstSteps, secondSteps, ignoreRunID))
			assert.Empty(t, cmp.Diff(firstResult, secondResult))
			assert.Empty(t, cmp.Diff(firstNodes, graph.Nodes()))
		})
	}
}

func TestDijkstraFinalizesInCostOrder(t *testing.T) {
	graph, start, goal := noiseGraph(t, 14, 10, 2, 0.3)
	stepper, err := gridsearch.Dijkstra(context.Background(), graph, start, goal)
	require.NoError(t, err)

	finalized := map[gridsearch.Pos]float64{}
	last := 0.0
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		if !snapshot.HasCurrent {
			continue
		}
		node, ok := graph.Node(snapshot.Current)
		require.True(t, ok)
		assert.GreaterOrEqual(t, node.G, last)
		last = node.G
		finalized[snapshot.Current] = node.G
	}

	for p, g := range finalized {
		node, _ := graph.Node(p)
		assert.Equal(t, g, node.G, "g of %v changed after it was closed", p)
	}
}

func TestAStarBreaksTiesOnHeuristic(t *testing.T) {
	// After (0,0) and (0,1) are expanded, (1,0), (0,2) and (1,1) all have
	// f = 4. The lower h picks (0,2) even though (1,0) entered first.
	graph, start, goal := layoutGraph(t, openThreeByThree)
	stepper, err := gridsearch.AStar(context.Background(), graph, start, goal)
	require.NoError(t, err)

	var order []gridsearch.Pos
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		order = append(order, snapshot.Closed...)
	}
	assert.Equal(t, []gridsearch.Pos{pos(0, 0), pos(0, 1), pos(0, 2), pos(1, 2), pos(2, 2)}, order)
	assert.Equal(t, order, stepper.Result().Path)
	assert.Equal(t, 5, stepper.Result().NodesExpanded)
}

func TestDijkstraBreaksTiesOnFrontierOrder(t *testing.T) {
	graph, start, goal := layoutGraph(t, openThreeByThree)
	stepper, err := gridsearch.Dijkstra(context.Background(), graph, start, goal)
	require.NoError(t, err)

	var order []gridsearch.Pos
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		order = append(order, snapshot.Closed...)
	}
	// g = 1 nodes in the order they were opened, then the g = 2 nodes.
	require.GreaterOrEqual(t, len(order), 6)
	assert.Equal(t, []gridsearch.Pos{pos(0, 0), pos(0, 1), pos(1, 0), pos(0, 2), pos(1, 1), pos(2, 0)}, order[:6])
	assert.Equal(t, 4, stepper.Result().PathLength)
}

func TestSuspensionGranularity(t *testing.T) {
	cases := map[gridsearch.Algorithm]int{
		gridsearch.AStarSearch:        4,
		gridsearch.DijkstraSearch:     4,
		gridsearch.DepthFirstSearch:   1,
		gridsearch.BreadthFirstSearch: 1,
	}
	for algorithm, opened := range cases {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, _, goal := layoutGraph(t, `
G..
.S.
...
`)
			stepper, err := gridsearch.NewStepper(context.Background(), algorithm, graph, pos(1, 1), goal)
			require.NoError(t, err)

			snapshot, err := stepper.Step()
			require.NoError(t, err)
			assert.Equal(t, 1, snapshot.StepIndex)
			assert.True(t, snapshot.HasCurrent)
			assert.Equal(t, pos(1, 1), snapshot.Current)
			assert.Equal(t, 1, snapshot.Expanded)
			assert.Len(t, snapshot.Opened, opened)
			assert.False(t, snapshot.Done)

			node, _ := graph.Node(pos(1, 1))
			assert.Equal(t, gridsearch.Closed, node.State)
			for _, p := range snapshot.Opened {
				n, _ := graph.Node(p)
				assert.Equal(t, gridsearch.Open, n.State)
				assert.Equal(t, pos(1, 1), graph.Nodes()[n.Connection].Pos)
			}
		})
	}
}

func TestDepthFirstFollowsNeighborOrder(t *testing.T) {
	graph, start, goal := layoutGraph(t, `
S..
...
..G
`)
	stepper, err := gridsearch.DFS(context.Background(), graph, start, goal)
	require.NoError(t, err)

	var opened []gridsearch.Pos
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		opened = append(opened, snapshot.Opened...)
	}
	// Neighbors are scanned up, left, down, right; from (0,0) that is (0,1)
	// then (1,0), and the stack pops (1,0) first.
	require.GreaterOrEqual(t, len(opened), 2)
	assert.Equal(t, []gridsearch.Pos{pos(0, 1), pos(1, 0)}, opened[:2])
	requireContiguousPath(t, graph, stepper.Result(), start, goal)
}

func TestWorkersMatchInlineEvaluation(t *testing.T) {
	for _, algorithm := range []gridsearch.Algorithm{gridsearch.AStarSearch, gridsearch.DijkstraSearch} {
		t.Run(algorithm.String(), func(t *testing.T) {
			graph, start, goal := noiseGraph(t, 20, 20, 9, 0.3)

			inline, err := gridsearch.Search(context.Background(), algorithm, graph, start, goal)
			require.NoError(t, err)
			inlineNodes := graph.Nodes()

			graph.Reset()
			parallel, err := gridsearch.Search(context.Background(), algorithm, graph, start, goal, gridsearch.WithWorkers(4))
			require.NoError(t, err)

			assert.Empty(t, cmp.Diff(inline, parallel))
			assert.Empty(t, cmp.Diff(inlineNodes, graph.Nodes()))
		})
	}
}
