package gridsearch

import (
	"context"
	"sync"
)

// expandTask asks a worker to price the edge from FromNode to ToNode.
type expandTask struct {
	Index         int
	FromNode      int
	ToNode        int
	CurrentGScore float64
}

// relaxProposal is the worker's priced edge. Index is the neighbor's
// position in the scan so proposals can be applied in neighbor order.
type relaxProposal struct {
	Index  int
	ToNode int
	GScore float64
	HScore float64
}

// relaxPool prices neighbor edges for the best-first searches. With one
// worker it runs inline; with more it fans tasks out to goroutines that
// only read positions, never node state.
type relaxPool struct {
	graph     *Graph
	goal      Pos
	heuristic bool
	workers   int

	once      sync.Once
	tasks     chan expandTask
	proposals chan relaxProposal
}

func newRelaxPool(graph *Graph, goal Pos, heuristic bool, workers int) *relaxPool {
	return &relaxPool{graph: graph, goal: goal, heuristic: heuristic, workers: workers}
}

func (p *relaxPool) price(task expandTask) relaxProposal {
	from, to := p.graph.nodes[task.FromNode].Pos, p.graph.nodes[task.ToNode].Pos
	proposal := relaxProposal{
		Index:  task.Index,
		ToNode: task.ToNode,
		GScore: task.CurrentGScore + p.graph.distance(from, to),
	}
	if p.heuristic {
		proposal.HScore = p.graph.distance(to, p.goal)
	}
	return proposal
}

func (p *relaxPool) start(ctx context.Context) {
	p.tasks = make(chan expandTask)
	p.proposals = make(chan relaxProposal)
	for i := 0; i < p.workers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-p.tasks:
					select {
					case <-ctx.Done():
						return
					case p.proposals <- p.price(task):
					}
				}
			}
		}()
	}
}

// evaluate prices every candidate neighbor of from and returns the
// proposals in candidate order.
func (p *relaxPool) evaluate(ctx context.Context, from int, gScore float64, candidates []int) ([]relaxProposal, error) {
	out := make([]relaxProposal, len(candidates))
	if p.workers <= 1 || len(candidates) < 2 {
		for i, to := range candidates {
			out[i] = p.price(expandTask{Index: i, FromNode: from, ToNode: to, CurrentGScore: gScore})
		}
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.once.Do(func() { p.start(ctx) })
	go func() {
		for i, to := range candidates {
			select {
			case <-ctx.Done():
				return
			case p.tasks <- expandTask{Index: i, FromNode: from, ToNode: to, CurrentGScore: gScore}:
			}
		}
	}()
	for range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case proposal := <-p.proposals:
			out[proposal.Index] = proposal
		}
	}
	return out, nil
}
