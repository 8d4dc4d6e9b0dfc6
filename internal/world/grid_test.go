package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceFootprintAtomic(t *testing.T) {
	g := NewGrid(10, 10)
	require.True(t, g.PlaceFootprint(2, 2, 3, 2))
	assert.False(t, g.IsOpen(2, 2))
	assert.False(t, g.IsOpen(4, 3))
	assert.True(t, g.IsOpen(5, 2))

	// Overlapping placement fails and leaves nothing marked.
	assert.False(t, g.PlaceFootprint(4, 3, 2, 2))
	assert.True(t, g.IsOpen(5, 3))
	assert.True(t, g.IsOpen(5, 4))

	g.ClearFootprint(2, 2, 3, 2)
	assert.True(t, g.IsOpen(2, 2))
}

func TestPlaceFootprintOutOfBounds(t *testing.T) {
	g := NewGrid(4, 4)
	assert.False(t, g.PlaceFootprint(3, 3, 2, 2))
	assert.True(t, g.IsOpen(3, 3))
}

func TestNearestOpenSpiral(t *testing.T) {
	g := NewGrid(10, 10)
	c := g.NearestOpen(5, 5, 3)
	require.NotNil(t, c)
	assert.Equal(t, 5, c.GX)

	require.True(t, g.PlaceFootprint(4, 4, 3, 3))
	c = g.NearestOpen(5, 5, 3)
	require.NotNil(t, c)
	ring := max(abs(c.GX-5), abs(c.GY-5))
	assert.Equal(t, 2, ring, "first open cell sits on the ring just outside the footprint")
}

func TestNearestOpenNoneWithinRadius(t *testing.T) {
	g := NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.SetWalkable(x, y, false)
		}
	}
	assert.Nil(t, g.NearestOpen(1, 1, 2))
}

func TestGenerateClearsCenter(t *testing.T) {
	g := Generate(SmallTestConfig())
	assert.True(t, g.IsOpen(g.Width/2, g.Height/2), "spawn area stays walkable")
}

func TestCellWorldCenters(t *testing.T) {
	g := NewGrid(4, 4)
	c := g.Cell(2, 3)
	assert.InDelta(t, 2.5, c.WorldX(), 1e-9)
	assert.InDelta(t, 3.5, c.WorldY(), 1e-9)
	assert.Same(t, c, g.CellAtWorld(c.WorldX(), c.WorldY()))
}
