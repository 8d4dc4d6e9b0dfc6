package world

import (
	"container/heap"
)

// cellHeap is the A* open set, ordered by FCost.
type cellHeap []*Cell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].FCost() < h[j].FCost() }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].heapIdx = i; h[j].heapIdx = j }
func (h *cellHeap) Push(x any)         { c := x.(*Cell); c.heapIdx = len(*h); *h = append(*h, c) }
func (h *cellHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.heapIdx = -1
	*h = old[:n-1]
	return c
}

// manhattan is the admissible heuristic for 4-connected unit-cost moves.
func manhattan(a, b *Cell) float64 {
	return float64(abs(a.GX-b.GX) + abs(a.GY-b.GY))
}

// prepare lazily resets a cell's search scratch for the current search.
func (g *Grid) prepare(c *Cell) {
	if c.stamp != g.generation {
		c.stamp = g.generation
		c.GCost = 0
		c.HCost = 0
		c.parent = nil
		c.closed = false
		c.heapIdx = -1
	}
}

// FindPath runs A* between two world positions over 4-connected open
// cells with unit step cost. The returned waypoints are cell centers
// ordered start→goal, including both endpoints. Returns nil when either
// endpoint is invalid or blocked, or when no path exists.
func (g *Grid) FindPath(startX, startY, endX, endY float64) []*Cell {
	start := g.CellAtWorld(startX, startY)
	goal := g.CellAtWorld(endX, endY)
	if start == nil || goal == nil {
		return nil
	}
	if !start.Walkable || start.Occupied || !goal.Walkable || goal.Occupied {
		return nil
	}
	if start == goal {
		return []*Cell{start}
	}

	g.generation++
	g.prepare(start)
	start.HCost = manhattan(start, goal)

	open := cellHeap{}
	heap.Push(&open, start)

	for open.Len() > 0 {
		current := heap.Pop(&open).(*Cell)
		if current == goal {
			return reconstruct(start, goal)
		}
		current.closed = true

		neighbors := [4][2]int{
			{current.GX - 1, current.GY},
			{current.GX + 1, current.GY},
			{current.GX, current.GY - 1},
			{current.GX, current.GY + 1},
		}
		for _, nb := range neighbors {
			next := g.Cell(nb[0], nb[1])
			if next == nil || !next.Walkable || next.Occupied {
				continue
			}
			g.prepare(next)
			if next.closed {
				continue
			}

			tentative := current.GCost + 1
			inOpen := next.heapIdx >= 0
			if inOpen && tentative >= next.GCost {
				continue
			}

			next.parent = current
			next.GCost = tentative
			next.HCost = manhattan(next, goal)
			if inOpen {
				heap.Fix(&open, next.heapIdx)
			} else {
				heap.Push(&open, next)
			}
		}
	}

	return nil
}

// reconstruct follows parent pointers goal→start, then reverses.
func reconstruct(start, goal *Cell) []*Cell {
	var path []*Cell
	for c := goal; c != nil; c = c.parent {
		path = append(path, c)
		if c == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
