// Package render draws the visual state of a search graph as ASCII frames.
package render

import (
	"strings"

	"github.com/pdrpinto/gridsearch"
)

var glyphs = map[gridsearch.VisualState]byte{
	gridsearch.Unvisited: '.',
	gridsearch.Open:      'o',
	gridsearch.Closed:    'x',
	gridsearch.Path:      '*',
}

// Frame draws a width by height window of graph. Blocked cells are '#',
// the endpoints 'S' and 'G', cells missing from the graph ' '.
func Frame(graph *gridsearch.Graph, width, height int, start, goal gridsearch.Pos) string {
	var b strings.Builder
	b.Grow((width + 1) * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := gridsearch.Pos{X: x, Y: y}
			b.WriteByte(glyph(graph, p, start, goal))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyph(graph *gridsearch.Graph, p, start, goal gridsearch.Pos) byte {
	switch p {
	case start:
		return 'S'
	case goal:
		return 'G'
	}
	node, ok := graph.Node(p)
	switch {
	case !ok:
		return ' '
	case !node.Walkable:
		return '#'
	default:
		return glyphs[node.State]
	}
}
