package gridsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrInvalidEndpoint is returned when start or goal is missing from the
	// graph or not walkable.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrSearchAlreadyActive is returned when a search is started on a graph
	// that has not been reset since the previous one.
	ErrSearchAlreadyActive = errors.New("graph has not been reset since the previous search")
	// ErrUnknownAlgorithm is returned by ParseAlgorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrStepBudgetExceeded is returned by a Driver whose step budget ran out.
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
)

// Algorithm selects a search strategy.
type Algorithm int

const (
	AStarSearch Algorithm = iota
	DijkstraSearch
	DepthFirstSearch
	BreadthFirstSearch
)

// Algorithms lists every strategy in a stable order.
var Algorithms = []Algorithm{AStarSearch, DijkstraSearch, DepthFirstSearch, BreadthFirstSearch}

func (a Algorithm) String() string {
	switch a {
	case AStarSearch:
		return "astar"
	case DijkstraSearch:
		return "dijkstra"
	case DepthFirstSearch:
		return "dfs"
	case BreadthFirstSearch:
		return "bfs"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts the names printed by Algorithm.String, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "astar", "a*":
		return AStarSearch, nil
	case "dijkstra":
		return DijkstraSearch, nil
	case "dfs", "depth-first":
		return DepthFirstSearch, nil
	case "bfs", "breadth-first":
		return BreadthFirstSearch, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Result contains the outcome of a search.
type Result struct {
	Found         bool
	Path          []Pos
	Cost          float64
	PathLength    int
	NodesExpanded int
	Cancelled     bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines price neighbor edges
// for A* and Dijkstra. Values below two keep the work inline.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// Search runs the chosen algorithm to completion.
func Search(
	ctx context.Context,
	algorithm Algorithm,
	graph *Graph,
	start Pos,
	goal Pos,
	options ...Option,
) (Result, error) {
	stepper, err := NewStepper(ctx, algorithm, graph, start, goal, options...)
	if err != nil {
		return Result{}, err
	}
	return stepper.Run()
}

// AStar starts an A* search. The frontier is ordered by f, then h.
func AStar(ctx context.Context, graph *Graph, start, goal Pos, options ...Option) (*Stepper, error) {
	return NewStepper(ctx, AStarSearch, graph, start, goal, options...)
}

// Dijkstra starts a uniform-cost search. The frontier is ordered by g.
func Dijkstra(ctx context.Context, graph *Graph, start, goal Pos, options ...Option) (*Stepper, error) {
	return NewStepper(ctx, DijkstraSearch, graph, start, goal, options...)
}

// DFS starts a depth-first search. The path it finds is not necessarily
// the shortest.
func DFS(ctx context.Context, graph *Graph, start, goal Pos, options ...Option) (*Stepper, error) {
	return NewStepper(ctx, DepthFirstSearch, graph, start, goal, options...)
}

// BFS starts a breadth-first search. Its path has the fewest edges, which
// is not the cheapest path when edge costs differ (diagonals, for example).
func BFS(ctx context.Context, graph *Graph, start, goal Pos, options ...Option) (*Stepper, error) {
	return NewStepper(ctx, BreadthFirstSearch, graph, start, goal, options...)
}
