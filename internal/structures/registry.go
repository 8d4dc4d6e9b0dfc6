package structures

import (
	"fmt"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/world"
)

// Registry owns every placed structure. It is constructed per simulation
// and passed into the components that need lookups; nothing here is
// process-global.
type Registry struct {
	grid   *world.Grid
	nextID ID

	all  []*Structure
	byID map[ID]*Structure
}

// NewRegistry creates an empty registry over the settlement grid.
func NewRegistry(grid *world.Grid) *Registry {
	return &Registry{grid: grid, nextID: 1, byID: make(map[ID]*Structure)}
}

// Place builds a structure of the given definition at grid coordinates,
// marking its footprint occupied. Fails when the footprint does not fit.
func (r *Registry) Place(def config.BuildingDefinition, gx, gy int) (*Structure, error) {
	w, h := def.Width, def.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if !r.grid.PlaceFootprint(gx, gy, w, h) {
		return nil, fmt.Errorf("place %s at (%d,%d): footprint blocked", def.Name, gx, gy)
	}

	b := &Structure{ID: r.nextID, Kind: KindBuilding, Def: def, GX: gx, GY: gy}
	r.nextID++
	for _, in := range def.Interiors {
		fixture := &Structure{ID: r.nextID, Kind: KindInterior, Fixture: in, Parent: b}
		r.nextID++
		b.Interiors = append(b.Interiors, fixture)
		r.byID[fixture.ID] = fixture
	}
	r.all = append(r.all, b)
	r.byID[b.ID] = b
	return b, nil
}

// Remove releases a building's footprint and forgets it and its interiors.
func (r *Registry) Remove(id ID) {
	s, ok := r.byID[id]
	if !ok || s.Kind != KindBuilding {
		return
	}
	w, h := s.Def.Width, s.Def.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	r.grid.ClearFootprint(s.GX, s.GY, w, h)
	delete(r.byID, id)
	for _, in := range s.Interiors {
		delete(r.byID, in.ID)
	}
	for i, b := range r.all {
		if b == s {
			r.all = append(r.all[:i], r.all[i+1:]...)
			break
		}
	}
}

// Get returns a structure by handle.
func (r *Registry) Get(id ID) *Structure {
	return r.byID[id]
}

// All returns the placed buildings in placement order.
func (r *Registry) All() []*Structure {
	return r.all
}

// Production returns every production building in placement order.
func (r *Registry) Production() []*Structure {
	var out []*Structure
	for _, b := range r.all {
		if b.Def.IsProduction() {
			out = append(out, b)
		}
	}
	return out
}

// FindForNeed returns the first usable building satisfying the named
// need, skipping buildings on cooldown. Placement order makes the search
// deterministic.
func (r *Registry) FindForNeed(need string, cooldowns *world.CooldownMap) *Structure {
	for _, b := range r.all {
		if b.Def.SatisfiesNeed != need {
			continue
		}
		if cooldowns != nil && cooldowns.Active(int(b.ID)) {
			continue
		}
		if !b.CanUse() && b.FreeInterior() == nil {
			continue
		}
		return b
	}
	return nil
}

// Entrance returns a walkable world position adjacent to the building's
// footprint, where arriving members stand. Falls back to the footprint
// origin when the building is fully enclosed.
func (r *Registry) Entrance(s *Structure) (float64, float64) {
	b := s.Building()
	w, h := b.Def.Width, b.Def.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	// Walk the perimeter ring looking for an open cell.
	for dy := -1; dy <= h; dy++ {
		for dx := -1; dx <= w; dx++ {
			onRing := dx == -1 || dx == w || dy == -1 || dy == h
			if !onRing {
				continue
			}
			if c := r.grid.Cell(b.GX+dx, b.GY+dy); c != nil && c.Walkable && !c.Occupied {
				return c.WorldX(), c.WorldY()
			}
		}
	}
	return (float64(b.GX) + 0.5) * world.CellSize, (float64(b.GY) + 0.5) * world.CellSize
}
