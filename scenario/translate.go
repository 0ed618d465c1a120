package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func translateScenario(ctx context.Context, block *scenarioBlock) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx).With("scenario", block.Name)

	s := &Scenario{Name: block.Name, Algorithm: gridsearch.AStarSearch}
	if block.Algorithm != nil {
		algorithm, err := gridsearch.ParseAlgorithm(*block.Algorithm)
		if err != nil {
			return nil, err
		}
		s.Algorithm = algorithm
	}
	if block.Pacing != nil {
		pacing, err := time.ParseDuration(*block.Pacing)
		if err != nil {
			return nil, fmt.Errorf("invalid pacing: %w", err)
		}
		if pacing < 0 {
			return nil, fmt.Errorf("pacing must not be negative, got %s", pacing)
		}
		s.Pacing = pacing
	}
	if block.Grid == nil {
		return nil, fmt.Errorf("a grid block is required")
	}

	grid, markers, err := translateGrid(block.Grid)
	if err != nil {
		return nil, err
	}
	s.Grid = grid

	start, err := decodePos(block.Start, "start")
	if err != nil {
		return nil, err
	}
	goal, err := decodePos(block.Goal, "goal")
	if err != nil {
		return nil, err
	}
	if start == nil {
		start = markers.Start
	}
	if goal == nil {
		goal = markers.Goal
	}
	if start == nil || goal == nil {
		return nil, fmt.Errorf("start and goal must be set, either as attributes or as S and G in the layout")
	}
	s.Start, s.Goal = *start, *goal

	if noise := block.Grid.Noise; noise != nil {
		scale := defaultNoiseScale
		if noise.Scale != nil {
			scale = *noise.Scale
		}
		blocked := grid.Scatter(noise.Seed, noise.Threshold, scale, s.Start, s.Goal)
		logger.Debug("Scattered noise obstacles.", "seed", noise.Seed, "threshold", noise.Threshold, "blocked", blocked)
	}

	for _, endpoint := range []gridsearch.Pos{s.Start, s.Goal} {
		if !grid.Walkable(endpoint) {
			return nil, fmt.Errorf("endpoint %v is not an open cell of the grid", endpoint)
		}
	}

	logger.Debug("Scenario translated.",
		"algorithm", s.Algorithm.String(),
		"width", grid.Width(),
		"height", grid.Height(),
		"start", s.Start.String(),
		"goal", s.Goal.String(),
	)
	return s, nil
}

func translateGrid(block *gridBlock) (*gridgen.Grid, gridgen.Markers, error) {
	var options []gridgen.Option
	if block.Connectivity != nil {
		options = append(options, gridgen.WithConnectivity(gridgen.Connectivity(*block.Connectivity)))
	}
	if block.Metric != nil {
		metric, err := gridgen.ParseMetric(*block.Metric)
		if err != nil {
			return nil, gridgen.Markers{}, err
		}
		options = append(options, gridgen.WithMetric(metric))
	}

	var (
		grid    *gridgen.Grid
		markers gridgen.Markers
		err     error
	)
	switch {
	case block.Layout != nil:
		if block.Width != nil || block.Height != nil {
			return nil, gridgen.Markers{}, fmt.Errorf("layout cannot be combined with width or height")
		}
		grid, markers, err = gridgen.Parse(*block.Layout, options...)
	case block.Width != nil && block.Height != nil:
		grid, err = gridgen.New(*block.Width, *block.Height, options...)
	default:
		return nil, gridgen.Markers{}, fmt.Errorf("grid needs either a layout or both width and height")
	}
	if err != nil {
		return nil, gridgen.Markers{}, err
	}

	walls, err := decodeWalls(block.Walls)
	if err != nil {
		return nil, gridgen.Markers{}, err
	}
	for _, p := range walls {
		if !grid.In(p) {
			return nil, gridgen.Markers{}, fmt.Errorf("wall %v is outside the %dx%d grid", p, grid.Width(), grid.Height())
		}
		grid.Block(p)
	}
	return grid, markers, nil
}

// isExprDefined reports whether an optional attribute was written in the
// source. gohcl fills omitted optional expressions with zero-width
// placeholders, so a nil check alone is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

func evaluate(expr hcl.Expression, want cty.Type, attrName string) (cty.Value, bool, error) {
	if !isExprDefined(expr) {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("%s: %w", attrName, diags)
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, false, fmt.Errorf("%s: expected %s: %w", attrName, want.FriendlyName(), err)
	}
	return converted, true, nil
}

func decodePos(expr hcl.Expression, attrName string) (*gridsearch.Pos, error) {
	val, ok, err := evaluate(expr, cty.List(cty.Number), attrName)
	if err != nil || !ok {
		return nil, err
	}
	var xy []int
	if err := gocty.FromCtyValue(val, &xy); err != nil {
		return nil, fmt.Errorf("%s: %w", attrName, err)
	}
	if len(xy) != 2 {
		return nil, fmt.Errorf("%s: expected [x, y], got %d numbers", attrName, len(xy))
	}
	return &gridsearch.Pos{X: xy[0], Y: xy[1]}, nil
}

func decodeWalls(expr hcl.Expression) ([]gridsearch.Pos, error) {
	val, ok, err := evaluate(expr, cty.List(cty.List(cty.Number)), "walls")
	if err != nil || !ok {
		return nil, err
	}
	var cells [][]int
	if err := gocty.FromCtyValue(val, &cells); err != nil {
		return nil, fmt.Errorf("walls: %w", err)
	}
	walls := make([]gridsearch.Pos, 0, len(cells))
	for i, xy := range cells {
		if len(xy) != 2 {
			return nil, fmt.Errorf("walls[%d]: expected [x, y], got %d numbers", i, len(xy))
		}
		walls = append(walls, gridsearch.Pos{X: xy[0], Y: xy[1]})
	}
	return walls, nil
}
