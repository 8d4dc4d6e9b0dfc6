package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathStraightLine(t *testing.T) {
	g := NewGrid(8, 8)
	path := g.FindPath(0.5, 0.5, 3.5, 0.5)
	require.Len(t, path, 4, "four waypoints for a manhattan distance of three")

	assert.Equal(t, 0, path[0].GX)
	assert.Equal(t, 3, path[len(path)-1].GX)
	assert.InDelta(t, 3, path[len(path)-1].GCost, 1e-9, "path cost equals goal GCost")

	for i := 1; i < len(path); i++ {
		d := abs(path[i].GX-path[i-1].GX) + abs(path[i].GY-path[i-1].GY)
		assert.Equal(t, 1, d, "consecutive waypoints are 4-connected neighbors")
	}
}

func TestFindPathAroundWall(t *testing.T) {
	g := NewGrid(8, 8)
	// Vertical wall at x=2 with a gap at y=6.
	for y := 0; y < 6; y++ {
		g.SetWalkable(2, y, false)
	}
	path := g.FindPath(0.5, 0.5, 5.5, 0.5)
	require.NotNil(t, path)
	assert.InDelta(t, float64(len(path)-1), path[len(path)-1].GCost, 1e-9)
	assert.GreaterOrEqual(t, len(path), 18, "detour through the gap at y=6")
	for _, c := range path {
		assert.True(t, c.Walkable)
	}
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := NewGrid(8, 8)
	g.SetWalkable(3, 0, false)
	assert.Nil(t, g.FindPath(0.5, 0.5, 3.5, 0.5))
}

func TestFindPathOccupiedStart(t *testing.T) {
	g := NewGrid(8, 8)
	require.True(t, g.PlaceFootprint(0, 0, 1, 1))
	assert.Nil(t, g.FindPath(0.5, 0.5, 3.5, 0.5))
}

func TestFindPathOutOfBounds(t *testing.T) {
	g := NewGrid(8, 8)
	assert.Nil(t, g.FindPath(-1, 0.5, 3.5, 0.5))
	assert.Nil(t, g.FindPath(0.5, 0.5, 99, 0.5))
}

func TestFindPathNoRoute(t *testing.T) {
	g := NewGrid(8, 8)
	for y := 0; y < 8; y++ {
		g.SetWalkable(4, y, false)
	}
	assert.Nil(t, g.FindPath(0.5, 0.5, 6.5, 0.5))
}

func TestFindPathSameCell(t *testing.T) {
	g := NewGrid(8, 8)
	path := g.FindPath(2.5, 2.5, 2.9, 2.1)
	require.Len(t, path, 1)
	assert.Equal(t, 2, path[0].GX)
}

func TestFindPathScratchResetBetweenSearches(t *testing.T) {
	g := NewGrid(8, 8)
	first := g.FindPath(0.5, 0.5, 7.5, 7.5)
	require.NotNil(t, first)

	// A second, shorter search must not inherit costs from the first.
	second := g.FindPath(0.5, 0.5, 2.5, 0.5)
	require.Len(t, second, 3)
	assert.InDelta(t, 2, second[len(second)-1].GCost, 1e-9)
}
