package gridsearch

import (
	"container/heap"
	"context"
)

// bestFirst is the shared engine behind A* and Dijkstra. With heuristic
// disabled h stays zero and the frontier orders by g alone.
type bestFirst struct {
	stepper   *Stepper
	heuristic bool
	pool      *relaxPool

	openSet    PriorityQueue
	openSetMap map[int]*PriorityQueueItem
	closedSet  []bool
	sequence   int
}

func newBestFirst(s *Stepper, heuristic bool, workers int) *bestFirst {
	graph := s.graph
	b := &bestFirst{
		stepper:    s,
		heuristic:  heuristic,
		pool:       newRelaxPool(graph, graph.nodes[s.goal].Pos, heuristic, workers),
		openSet:    make(PriorityQueue, 0),
		openSetMap: make(map[int]*PriorityQueueItem),
		closedSet:  make([]bool, graph.Len()),
	}
	heap.Init(&b.openSet)

	start := &graph.nodes[s.start]
	start.G = 0
	start.H = 0
	start.F = 0
	b.push(s.start)
	return b
}

func (b *bestFirst) frontierLen() int { return b.openSet.Len() }

func (b *bestFirst) priority(i int) (float64, float64) {
	n := &b.stepper.graph.nodes[i]
	if b.heuristic {
		return n.F, n.H
	}
	return n.G, 0
}

func (b *bestFirst) push(i int) {
	primary, secondary := b.priority(i)
	item := &PriorityQueueItem{Node: i, Primary: primary, Secondary: secondary, Sequence: b.sequence}
	b.sequence++
	heap.Push(&b.openSet, item)
	b.openSetMap[i] = item
}

func (b *bestFirst) fix(item *PriorityQueueItem) {
	item.Primary, item.Secondary = b.priority(item.Node)
	heap.Fix(&b.openSet, item.IndexInQueue)
}

// advance selects the best frontier node, closes it and relaxes its
// walkable, unclosed neighbors.
func (b *bestFirst) advance(ctx context.Context) (bool, error) {
	s := b.stepper
	graph := s.graph
	if b.openSet.Len() == 0 {
		return true, nil
	}

	currentItem := heap.Pop(&b.openSet).(*PriorityQueueItem)
	current := currentItem.Node
	delete(b.openSetMap, current)
	b.closedSet[current] = true
	s.expand(current)

	if current == s.goal {
		s.complete(true)
		return true, nil
	}

	candidates := make([]int, 0, len(graph.nodes[current].Neighbors))
	for _, neighbor := range graph.nodes[current].Neighbors {
		if graph.nodes[neighbor].Walkable && !b.closedSet[neighbor] {
			candidates = append(candidates, neighbor)
		}
	}
	proposals, err := b.pool.evaluate(ctx, current, graph.nodes[current].G, candidates)
	if err != nil {
		return false, err
	}

	for _, proposal := range proposals {
		neighbor := &graph.nodes[proposal.ToNode]
		item, inSearch := b.openSetMap[proposal.ToNode]
		if inSearch && proposal.GScore >= neighbor.G {
			continue
		}
		neighbor.G = proposal.GScore
		neighbor.Connection = current
		if inSearch {
			neighbor.F = neighbor.G + neighbor.H
			b.fix(item)
			continue
		}
		neighbor.H = proposal.HScore
		neighbor.F = neighbor.G + neighbor.H
		b.push(proposal.ToNode)
		s.open(proposal.ToNode)
	}
	return false, nil
}
