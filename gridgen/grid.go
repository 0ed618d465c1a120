// Package gridgen builds rectangular grids for gridsearch: plain grids,
// ASCII layouts and obstacle fields generated from simplex noise.
package gridgen

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// Connectivity is the number of cells adjacent to an interior cell.
type Connectivity int

const (
	Four  Connectivity = 4
	Eight Connectivity = 8
)

// directions lists neighbor offsets in the order Neighbors returns them:
// up, left, down, right, then the diagonals.
var directions = []gridsearch.Pos{
	{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 1},
}

// Grid is a width by height rectangle of cells, some of them blocked.
// It implements gridsearch.Provider.
type Grid struct {
	width        int
	height       int
	blocked      []bool
	connectivity Connectivity
	metric       Metric
}

// Option configures a Grid.
type Option func(*Grid)

// WithConnectivity selects four- or eight-way adjacency.
func WithConnectivity(c Connectivity) Option {
	return func(g *Grid) { g.connectivity = c }
}

// WithMetric sets the edge cost and heuristic function.
func WithMetric(m Metric) Option {
	return func(g *Grid) { g.metric = m }
}

// New returns an open grid. The default is four-way adjacency with the
// Manhattan metric.
func New(width, height int, options ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %dx%d", width, height)
	}
	g := &Grid{
		width:        width,
		height:       height,
		blocked:      make([]bool, width*height),
		connectivity: Four,
		metric:       Manhattan,
	}
	for _, o := range options {
		o(g)
	}
	if g.connectivity != Four && g.connectivity != Eight {
		return nil, fmt.Errorf("connectivity must be 4 or 8, got %d", g.connectivity)
	}
	if g.metric == nil {
		return nil, fmt.Errorf("metric is required")
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// In reports whether p lies inside the grid.
func (g *Grid) In(p gridsearch.Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) offset(p gridsearch.Pos) int { return p.Y*g.width + p.X }

// Block marks p as an obstacle. Cells outside the grid are ignored.
func (g *Grid) Block(p gridsearch.Pos) {
	if g.In(p) {
		g.blocked[g.offset(p)] = true
	}
}

// Unblock clears an obstacle.
func (g *Grid) Unblock(p gridsearch.Pos) {
	if g.In(p) {
		g.blocked[g.offset(p)] = false
	}
}

// Blocked reports whether p is an obstacle.
func (g *Grid) Blocked(p gridsearch.Pos) bool {
	return g.In(p) && g.blocked[g.offset(p)]
}

// Positions returns every cell in row-major order.
func (g *Grid) Positions() []gridsearch.Pos {
	out := make([]gridsearch.Pos, 0, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			out = append(out, gridsearch.Pos{X: x, Y: y})
		}
	}
	return out
}

func (g *Grid) Walkable(p gridsearch.Pos) bool { return g.In(p) && !g.Blocked(p) }

// Neighbors returns the in-bounds cells adjacent to p, blocked or not.
func (g *Grid) Neighbors(p gridsearch.Pos) []gridsearch.Pos {
	out := make([]gridsearch.Pos, 0, g.connectivity)
	for _, d := range directions[:g.connectivity] {
		n := gridsearch.Pos{X: p.X + d.X, Y: p.Y + d.Y}
		if g.In(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) Distance(a, b gridsearch.Pos) float64 { return g.metric(a, b) }

// Graph builds a search graph over the grid.
func (g *Grid) Graph() (*gridsearch.Graph, error) {
	return gridsearch.NewGraph(g)
}

// String draws the grid with '#' for obstacles and '.' for open cells.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.blocked[y*g.width+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
