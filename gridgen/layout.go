package gridgen

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// Markers holds the endpoints found in a layout, if any.
type Markers struct {
	Start *gridsearch.Pos
	Goal  *gridsearch.Pos
}

// Parse reads an ASCII layout: '#' is a wall, '.' an open cell, 'S' the
// start and 'G' the goal. Blank lines and surrounding spaces are ignored;
// the first row is y = 0.
func Parse(layout string, options ...Option) (*Grid, Markers, error) {
	var rows []string
	scanner := bufio.NewScanner(strings.NewReader(layout))
	for scanner.Scan() {
		row := strings.TrimSpace(scanner.Text())
		if row != "" {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Markers{}, err
	}
	if len(rows) == 0 {
		return nil, Markers{}, fmt.Errorf("layout is empty")
	}

	width := len(rows[0])
	g, err := New(width, len(rows), options...)
	if err != nil {
		return nil, Markers{}, err
	}

	var markers Markers
	for y, row := range rows {
		if len(row) != width {
			return nil, Markers{}, fmt.Errorf("layout row %d has %d cells, want %d", y, len(row), width)
		}
		for x, c := range row {
			p := gridsearch.Pos{X: x, Y: y}
			switch c {
			case '.':
			case '#':
				g.Block(p)
			case 'S':
				if markers.Start != nil {
					return nil, Markers{}, fmt.Errorf("layout has more than one start")
				}
				markers.Start = &p
			case 'G':
				if markers.Goal != nil {
					return nil, Markers{}, fmt.Errorf("layout has more than one goal")
				}
				markers.Goal = &p
			default:
				return nil, Markers{}, fmt.Errorf("layout cell %v has unknown symbol %q", p, c)
			}
		}
	}
	return g, markers, nil
}
