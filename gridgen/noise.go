package gridgen

import (
	"slices"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/pdrpinto/gridsearch"
)

// Scatter blocks every cell whose simplex noise value at (x*scale, y*scale)
// exceeds threshold. Noise values lie in [-1, 1], so a threshold of 1 blocks
// nothing and lower thresholds produce denser, clustered obstacles. Cells in
// keep are never blocked. It returns the number of newly blocked cells.
func (g *Grid) Scatter(seed int64, threshold, scale float64, keep ...gridsearch.Pos) int {
	noiseGenerator := opensimplex.New(seed)
	blocked := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := gridsearch.Pos{X: x, Y: y}
			if g.Blocked(p) || slices.Contains(keep, p) {
				continue
			}
			if noiseGenerator.Eval2(float64(x)*scale, float64(y)*scale) > threshold {
				g.Block(p)
				blocked++
			}
		}
	}
	return blocked
}

// FirstWalkable returns the first open cell in row-major order.
func (g *Grid) FirstWalkable() (gridsearch.Pos, bool) {
	for i, b := range g.blocked {
		if !b {
			return gridsearch.Pos{X: i % g.width, Y: i / g.width}, true
		}
	}
	return gridsearch.Pos{}, false
}

// LastWalkable returns the last open cell in row-major order.
func (g *Grid) LastWalkable() (gridsearch.Pos, bool) {
	for i := len(g.blocked) - 1; i >= 0; i-- {
		if !g.blocked[i] {
			return gridsearch.Pos{X: i % g.width, Y: i / g.width}, true
		}
	}
	return gridsearch.Pos{}, false
}
