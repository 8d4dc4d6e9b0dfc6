// Package world provides the settlement's uniform navigation grid, the
// A* pathfinder over it, terrain generation, and the unreachable-target
// cooldown bookkeeping.
package world

// CellSize is the width of one grid cell in world units.
const CellSize = 1.0

// Cell is one square of the navigation grid. The search scratch fields
// (GCost, parent, generation stamps) belong to the most recent FindPath
// call and are reset lazily by generation counter.
type Cell struct {
	GX, GY   int
	Walkable bool
	Occupied bool

	// Pathfinding scratch.
	GCost   float64
	HCost   float64
	parent  *Cell
	stamp   uint64 // search generation that initialized the scratch
	closed  bool
	heapIdx int
}

// FCost is the A* priority of the cell.
func (c *Cell) FCost() float64 { return c.GCost + c.HCost }

// WorldX returns the world-space X of the cell center.
func (c *Cell) WorldX() float64 { return (float64(c.GX) + 0.5) * CellSize }

// WorldY returns the world-space Y of the cell center.
func (c *Cell) WorldY() float64 { return (float64(c.GY) + 0.5) * CellSize }

// Grid is the process-wide walkability map, created once at startup.
// Occupancy changes only when a structure is placed or removed.
type Grid struct {
	Width  int
	Height int
	cells  []Cell

	generation uint64
}

// NewGrid creates an all-walkable, unoccupied grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[y*width+x]
			c.GX, c.GY = x, y
			c.Walkable = true
		}
	}
	return g
}

// Cell returns the cell at grid coordinates, or nil when out of bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	return &g.cells[y*g.Width+x]
}

// CellAtWorld returns the cell containing a world position.
func (g *Grid) CellAtWorld(x, y float64) *Cell {
	return g.Cell(int(x/CellSize), int(y/CellSize))
}

// IsOpen reports whether the cell exists, is walkable and unoccupied.
func (g *Grid) IsOpen(x, y int) bool {
	c := g.Cell(x, y)
	return c != nil && c.Walkable && !c.Occupied
}

// SetWalkable marks terrain walkability (ignored out of bounds).
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if c := g.Cell(x, y); c != nil {
		c.Walkable = walkable
	}
}

// PlaceFootprint marks a w×h rectangle occupied. Returns false without
// mutating anything when any covered cell is missing or already occupied.
func (g *Grid) PlaceFootprint(x, y, w, h int) bool {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c := g.Cell(x+dx, y+dy)
			if c == nil || c.Occupied || !c.Walkable {
				return false
			}
		}
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.Cell(x+dx, y+dy).Occupied = true
		}
	}
	return true
}

// ClearFootprint releases a previously placed rectangle.
func (g *Grid) ClearFootprint(x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if c := g.Cell(x+dx, y+dy); c != nil {
				c.Occupied = false
			}
		}
	}
}

// NearestOpen spiral-searches outward from (x, y) for an open cell,
// returning nil when none exists within the given radius.
func (g *Grid) NearestOpen(x, y, radius int) *Cell {
	if g.IsOpen(x, y) {
		return g.Cell(x, y)
	}
	for r := 1; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				if g.IsOpen(x+dx, y+dy) {
					return g.Cell(x+dx, y+dy)
				}
			}
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
