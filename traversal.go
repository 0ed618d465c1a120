package gridsearch

import "context"

// traversal is the shared engine behind DFS and BFS. Unlike bestFirst it
// suspends once per pushed neighbor, so a node's scan can span several
// steps; cursor remembers where the scan of current stopped.
type traversal struct {
	stepper *Stepper
	lifo    bool

	pending []int
	visited []bool
	current int
	cursor  int
}

func newTraversal(s *Stepper, lifo bool) *traversal {
	t := &traversal{
		stepper: s,
		lifo:    lifo,
		pending: []int{s.start},
		visited: make([]bool, s.graph.Len()),
		current: NoConnection,
	}
	t.visited[s.start] = true
	return t
}

func (t *traversal) frontierLen() int { return len(t.pending) }

func (t *traversal) pop() int {
	var next int
	if t.lifo {
		next = t.pending[len(t.pending)-1]
		t.pending = t.pending[:len(t.pending)-1]
	} else {
		next = t.pending[0]
		t.pending = t.pending[1:]
	}
	return next
}

// advance pops nodes until one neighbor gets pushed, the goal is popped or
// the container runs dry.
func (t *traversal) advance(context.Context) (bool, error) {
	s := t.stepper
	graph := s.graph
	for {
		if t.current == NoConnection {
			if len(t.pending) == 0 {
				return true, nil
			}
			next := t.pop()
			s.expand(next)
			if next == s.goal {
				s.complete(true)
				return true, nil
			}
			t.current, t.cursor = next, 0
		}
		s.current = t.current

		neighbors := graph.nodes[t.current].Neighbors
		for t.cursor < len(neighbors) {
			neighbor := neighbors[t.cursor]
			t.cursor++
			if !graph.nodes[neighbor].Walkable || t.visited[neighbor] {
				continue
			}
			t.pending = append(t.pending, neighbor)
			t.visited[neighbor] = true
			graph.nodes[neighbor].Connection = t.current
			s.open(neighbor)
			return false, nil
		}
		t.current = NoConnection
	}
}
