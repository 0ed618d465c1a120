package gridsearch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/pdrpinto/gridsearch/internal"
)

// StepSnapshot exposes the per-step state of the search. Opened and Closed
// list the nodes that entered the frontier and were expanded during the
// step; Current is the node being expanded when the step suspended. Full
// node state is available from the Graph between steps.
type StepSnapshot struct {
	RunID      string
	Algorithm  Algorithm
	StepIndex  int
	Current    Pos
	HasCurrent bool
	Opened     []Pos
	Closed     []Pos
	Frontier   int
	Expanded   int
	Done       bool
	Found      bool
	Cancelled  bool
	Path       []Pos
}

// searcher is one algorithm's resumable state. advance performs exactly one
// suspension unit and reports whether the search terminated.
type searcher interface {
	advance(ctx context.Context) (bool, error)
	frontierLen() int
}

// Stepper advances a search one suspension point at a time.
// It is not safe for concurrent use; cancel the parent context to stop it
// from another goroutine.
type Stepper struct {
	id        string
	algorithm Algorithm
	graph     *Graph
	start     int
	goal      int
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
	search    searcher

	current   int
	opened    []Pos
	closed    []Pos
	expanded  int
	stepCount int
	done      bool
	err       error
	result    Result
}

// NewStepper validates the endpoints, claims the graph and prepares the
// chosen algorithm. No node is touched when an error is returned.
func NewStepper(
	parent context.Context,
	algorithm Algorithm,
	graph *Graph,
	start Pos,
	goal Pos,
	options ...Option,
) (*Stepper, error) {
	opts := Options{NumberOfWorkers: 1}
	for _, o := range options {
		o(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if !slices.Contains(Algorithms, algorithm) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, algorithm)
	}

	s := &Stepper{
		id:        uuid.NewString(),
		algorithm: algorithm,
		graph:     graph,
		current:   NoConnection,
	}
	startIndex, goalIndex, err := graph.claim(s, start, goal)
	if err != nil {
		return nil, err
	}
	s.start, s.goal = startIndex, goalIndex
	s.ctx, s.cancel = context.WithCancel(parent)
	s.logger = opts.Logger.With("run_id", s.id, "algorithm", algorithm.String())

	switch algorithm {
	case AStarSearch:
		s.search = newBestFirst(s, true, opts.NumberOfWorkers)
	case DijkstraSearch:
		s.search = newBestFirst(s, false, opts.NumberOfWorkers)
	case DepthFirstSearch:
		s.search = newTraversal(s, true)
	case BreadthFirstSearch:
		s.search = newTraversal(s, false)
	}

	s.logger.Debug("search started", "start", start.String(), "goal", goal.String(), "nodes", graph.Len())
	return s, nil
}

// ID returns the run id used in log records.
func (s *Stepper) ID() string { return s.id }

// Algorithm returns the strategy this stepper runs.
func (s *Stepper) Algorithm() Algorithm { return s.algorithm }

// Done reports whether the search terminated, was cancelled or failed.
func (s *Stepper) Done() bool { return s.done }

// Step advances the search by one suspension unit and returns a snapshot.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.snapshot(), s.err
	}
	if err := s.ctx.Err(); err != nil {
		s.abort(err)
		return s.snapshot(), err
	}

	s.stepCount++
	s.opened, s.closed = nil, nil
	terminated, err := s.search.advance(s.ctx)
	if err != nil {
		s.abort(err)
		return s.snapshot(), err
	}
	if terminated && !s.done {
		s.complete(false)
	}
	return s.snapshot(), nil
}

// Run steps until the search terminates and returns its result.
func (s *Stepper) Run() (Result, error) {
	for {
		snapshot, err := s.Step()
		if err != nil {
			return s.Result(), err
		}
		if snapshot.Done {
			return s.Result(), nil
		}
	}
}

// Cancel stops the search. Node state stays as last observed. Cancelling a
// finished or already cancelled search does nothing.
func (s *Stepper) Cancel() {
	if s.done {
		return
	}
	s.abort(context.Canceled)
}

// Result returns the outcome so far. It is only meaningful once Done.
func (s *Stepper) Result() Result {
	result := s.result
	result.Path = slices.Clone(s.result.Path)
	return result
}

func (s *Stepper) snapshot() StepSnapshot {
	snapshot := StepSnapshot{
		RunID:     s.id,
		Algorithm: s.algorithm,
		StepIndex: s.stepCount,
		Opened:    slices.Clone(s.opened),
		Closed:    slices.Clone(s.closed),
		Frontier:  s.search.frontierLen(),
		Expanded:  s.expanded,
		Done:      s.done,
		Found:     s.result.Found,
		Cancelled: s.result.Cancelled,
		Path:      slices.Clone(s.result.Path),
	}
	if s.current != NoConnection {
		snapshot.Current = s.graph.nodes[s.current].Pos
		snapshot.HasCurrent = true
	}
	return snapshot
}

// expand records node i as the step's current node and finalizes it.
func (s *Stepper) expand(i int) {
	s.current = i
	s.expanded++
	s.graph.setState(i, Closed)
	s.closed = append(s.closed, s.graph.nodes[i].Pos)
}

func (s *Stepper) open(i int) {
	s.graph.setState(i, Open)
	s.opened = append(s.opened, s.graph.nodes[i].Pos)
}

func (s *Stepper) predecessor(i int) (int, bool) {
	previous := s.graph.nodes[i].Connection
	return previous, previous != NoConnection
}

// complete ends the search. On success the path is rebuilt from the
// connection links and every node on it is marked Path.
func (s *Stepper) complete(found bool) {
	s.done = true
	s.result = Result{Found: found, NodesExpanded: s.expanded}
	if found {
		chain := internal.ReconstructPath(s.predecessor, s.goal, s.start, s.graph.Len())
		s.result.Path = make([]Pos, len(chain))
		for k, i := range chain {
			s.result.Path[k] = s.graph.nodes[i].Pos
			if k > 0 {
				s.result.Cost += s.graph.distance(s.result.Path[k-1], s.result.Path[k])
			}
			s.graph.setState(i, Path)
		}
		s.result.PathLength = len(chain) - 1
	}
	s.cancel()
	s.graph.release(s)

	if found {
		s.logger.Debug("path found", "nodes_expanded", s.expanded, "path_length", s.result.PathLength, "cost", s.result.Cost)
	} else {
		s.logger.Debug("path not found", "nodes_expanded", s.expanded)
	}
}

func (s *Stepper) abort(err error) {
	s.done = true
	s.err = err
	s.result = Result{Cancelled: true, NodesExpanded: s.expanded}
	s.cancel()
	s.graph.release(s)
	s.logger.Debug("search cancelled", "nodes_expanded", s.expanded, "steps", s.stepCount, "error", err)
}
