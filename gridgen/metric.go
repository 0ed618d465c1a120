package gridgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// Metric is an edge cost and heuristic between two cells.
type Metric func(a, b gridsearch.Pos) float64

func deltas(a, b gridsearch.Pos) (float64, float64) {
	return math.Abs(float64(a.X - b.X)), math.Abs(float64(a.Y - b.Y))
}

// Manhattan is the sum of axis deltas. Use it with four-way connectivity.
func Manhattan(a, b gridsearch.Pos) float64 {
	dx, dy := deltas(a, b)
	return dx + dy
}

// Euclidean is the straight-line distance.
func Euclidean(a, b gridsearch.Pos) float64 {
	dx, dy := deltas(a, b)
	return math.Hypot(dx, dy)
}

// Octile charges sqrt(2) per diagonal move and 1 per straight move.
func Octile(a, b gridsearch.Pos) float64 {
	dx, dy := deltas(a, b)
	return math.Sqrt2*min(dx, dy) + math.Abs(dx-dy)
}

// Chebyshev charges 1 for any king move.
func Chebyshev(a, b gridsearch.Pos) float64 {
	dx, dy := deltas(a, b)
	return max(dx, dy)
}

// ParseMetric maps a metric name to its function.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "octile":
		return Octile, nil
	case "chebyshev":
		return Chebyshev, nil
	}
	return nil, fmt.Errorf("unknown metric %q", name)
}
