package gridsearch

import (
	"fmt"
	"math"
	"slices"
)

// Pos is a grid coordinate. It is the identity key of a Node.
type Pos struct {
	X int
	Y int
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// VisualState is the observable phase of a node during a search.
// The engine writes it for renderers and never reads it back.
type VisualState uint8

const (
	Unvisited VisualState = iota
	Open
	Closed
	Path
)

func (s VisualState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("VisualState(%d)", uint8(s))
	}
}

// NoConnection marks a node without a predecessor.
const NoConnection = -1

// Node is one grid cell and its search state.
// Neighbors and Connection hold arena indices into the owning Graph.
type Node struct {
	Pos        Pos
	Walkable   bool
	Neighbors  []int
	G          float64
	H          float64
	F          float64
	Connection int
	State      VisualState
}

func (n *Node) reset() {
	n.G = math.Inf(1)
	n.H = 0
	n.F = math.Inf(1)
	n.Connection = NoConnection
	n.State = Unvisited
}

// Provider supplies the static grid a Graph is built from.
// Distance must be symmetric, non-negative and satisfy the triangle
// inequality for A* and Dijkstra to return optimal paths.
type Provider interface {
	Positions() []Pos
	Walkable(p Pos) bool
	Neighbors(p Pos) []Pos
	Distance(a, b Pos) float64
}

// Graph is an arena of Nodes with neighbor lists resolved once at
// construction. Topology is read-only afterwards; search fields are owned
// by at most one Stepper at a time.
type Graph struct {
	nodes    []Node
	index    map[Pos]int
	distance func(a, b Pos) float64
	sink     Sink

	// dirty is set when a search starts and cleared by Reset.
	dirty  bool
	active *Stepper
}

// NewGraph builds a Graph from a provider, caching every node's neighbors
// in the order the provider returns them.
func NewGraph(provider Provider) (*Graph, error) {
	positions := provider.Positions()
	g := &Graph{
		nodes:    make([]Node, len(positions)),
		index:    make(map[Pos]int, len(positions)),
		distance: provider.Distance,
	}
	for i, p := range positions {
		if _, dup := g.index[p]; dup {
			return nil, fmt.Errorf("duplicate position %v", p)
		}
		g.index[p] = i
		g.nodes[i] = Node{Pos: p, Walkable: provider.Walkable(p)}
		g.nodes[i].reset()
	}
	for i := range g.nodes {
		adjacent := provider.Neighbors(g.nodes[i].Pos)
		g.nodes[i].Neighbors = make([]int, 0, len(adjacent))
		for _, p := range adjacent {
			j, ok := g.index[p]
			if !ok {
				return nil, fmt.Errorf("neighbor %v of %v is not a grid position", p, g.nodes[i].Pos)
			}
			g.nodes[i].Neighbors = append(g.nodes[i].Neighbors, j)
		}
	}
	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Contains reports whether p is a node of the graph.
func (g *Graph) Contains(p Pos) bool {
	_, ok := g.index[p]
	return ok
}

// Node returns a copy of the node at p.
func (g *Graph) Node(p Pos) (Node, bool) {
	i, ok := g.index[p]
	if !ok {
		return Node{}, false
	}
	return g.copyNode(i), true
}

// Nodes returns a copy of every node in arena order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.copyNode(i)
	}
	return out
}

// NeighborsOf returns the positions adjacent to p, walkable or not.
func (g *Graph) NeighborsOf(p Pos) []Pos {
	i, ok := g.index[p]
	if !ok {
		return nil
	}
	out := make([]Pos, len(g.nodes[i].Neighbors))
	for k, j := range g.nodes[i].Neighbors {
		out[k] = g.nodes[j].Pos
	}
	return out
}

// Distance returns the edge cost between a and b.
func (g *Graph) Distance(a, b Pos) float64 { return g.distance(a, b) }

// Observe attaches a sink that receives every visual state transition.
// Passing nil detaches it.
func (g *Graph) Observe(sink Sink) { g.sink = sink }

// Reset cancels the search that owns the graph, if any, and restores every
// node's search fields to their defaults.
func (g *Graph) Reset() {
	if g.active != nil {
		g.active.Cancel()
	}
	for i := range g.nodes {
		if g.nodes[i].State != Unvisited {
			g.setState(i, Unvisited)
		}
		g.nodes[i].reset()
	}
	g.dirty = false
}

func (g *Graph) copyNode(i int) Node {
	n := g.nodes[i]
	n.Neighbors = slices.Clone(n.Neighbors)
	return n
}

func (g *Graph) setState(i int, state VisualState) {
	n := &g.nodes[i]
	previous := n.State
	if previous == state {
		return
	}
	n.State = state
	if g.sink != nil {
		g.sink.Transition(n.Pos, previous, state)
	}
}

// claim validates the endpoints and binds the graph to s. Nothing is
// mutated when an error is returned.
func (g *Graph) claim(s *Stepper, start, goal Pos) (int, int, error) {
	startIndex, err := g.endpoint("start", start)
	if err != nil {
		return 0, 0, err
	}
	goalIndex, err := g.endpoint("goal", goal)
	if err != nil {
		return 0, 0, err
	}
	if g.dirty {
		return 0, 0, ErrSearchAlreadyActive
	}
	g.dirty = true
	g.active = s
	return startIndex, goalIndex, nil
}

func (g *Graph) release(s *Stepper) {
	if g.active == s {
		g.active = nil
	}
}

func (g *Graph) endpoint(role string, p Pos) (int, error) {
	i, ok := g.index[p]
	if !ok {
		return 0, fmt.Errorf("%w: %s %v is not in the graph", ErrInvalidEndpoint, role, p)
	}
	if !g.nodes[i].Walkable {
		return 0, fmt.Errorf("%w: %s %v is not walkable", ErrInvalidEndpoint, role, p)
	}
	return i, nil
}
