package gridgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scattered(t *testing.T, seed int64, threshold float64) *Grid {
	t.Helper()
	g, err := New(30, 20)
	require.NoError(t, err)
	g.Scatter(seed, threshold, 0.15, p(0, 0), p(29, 19))
	return g
}

func TestScatterIsDeterministic(t *testing.T) {
	a := scattered(t, 42, 0.1)
	b := scattered(t, 42, 0.1)
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), scattered(t, 43, 0.1).String())
}

func TestScatterThresholds(t *testing.T) {
	open := scattered(t, 1, 2)
	assert.Equal(t, 0, countBlocked(open))

	full := scattered(t, 1, -2)
	assert.Equal(t, 30*20-2, countBlocked(full))
	assert.False(t, full.Blocked(p(0, 0)))
	assert.False(t, full.Blocked(p(29, 19)))

	first, ok := full.FirstWalkable()
	require.True(t, ok)
	assert.Equal(t, p(0, 0), first)
	last, ok := full.LastWalkable()
	require.True(t, ok)
	assert.Equal(t, p(29, 19), last)
}

func TestScatterCountsOnlyNewWalls(t *testing.T) {
	g, err := New(4, 4)
	require.NoError(t, err)
	g.Block(p(1, 1))
	assert.Equal(t, 15, g.Scatter(9, -2, 0.3))
	assert.Equal(t, 0, g.Scatter(9, -2, 0.3))

	_, ok := g.FirstWalkable()
	assert.False(t, ok)
	_, ok = g.LastWalkable()
	assert.False(t, ok)
}

func countBlocked(g *Grid) int {
	n := 0
	for _, pos := range g.Positions() {
		if g.Blocked(pos) {
			n++
		}
	}
	return n
}
