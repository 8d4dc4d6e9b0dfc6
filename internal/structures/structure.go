// Package structures implements the settlement's placeable, capacity-
// limited entities: buildings, their interior fixtures, usage sessions,
// worker assignment and time-integrated production.
package structures

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Kieren92/ColonySim/internal/config"
)

// ID is a stable integer handle for a structure. Cooldown maps and event
// records key on it rather than on object references.
type ID int

// Kind discriminates the structure data variants.
type Kind uint8

const (
	KindBuilding Kind = iota
	KindInterior
)

// Structure is a building or an interior fixture, discriminated by Kind.
// A building owns its interiors; an interior holds a non-owning parent
// reference.
type Structure struct {
	ID   ID
	Kind Kind

	// Building-kind fields.
	Def       config.BuildingDefinition
	GX, GY    int
	Interiors []*Structure

	// Interior-kind fields.
	Fixture config.InteriorDefinition
	Parent  *Structure

	users   map[uuid.UUID]struct{}
	workers map[uuid.UUID]struct{}

	// Production state.
	Progress    float64
	LastQuality float64
}

// Name returns the display name for the structure.
func (s *Structure) Name() string {
	if s.Kind == KindInterior {
		return s.Fixture.Name
	}
	return s.Def.Name
}

// Building resolves the owning building: itself for buildings, the parent
// for interiors.
func (s *Structure) Building() *Structure {
	if s.Kind == KindInterior {
		return s.Parent
	}
	return s
}

// Capacity returns the total usable capacity: the sum of interior
// capacities when fixtures exist, otherwise the building's own field.
func (s *Structure) Capacity() int {
	if s.Kind == KindInterior {
		return s.Fixture.Capacity
	}
	if len(s.Interiors) > 0 {
		total := 0
		for _, in := range s.Interiors {
			total += in.Fixture.Capacity
		}
		return total
	}
	return s.Def.Capacity
}

// CurrentUsers returns how many members use the structure right now. For
// buildings with interiors this counts the fixtures' occupants.
func (s *Structure) CurrentUsers() int {
	if s.Kind == KindBuilding && len(s.Interiors) > 0 {
		total := 0
		for _, in := range s.Interiors {
			total += len(in.users)
		}
		return total
	}
	return len(s.users)
}

// CanUse reports whether another member fits.
func (s *Structure) CanUse() bool {
	return s.CurrentUsers() < s.Capacity()
}

// StartUsing adds the member to the current-user set. The capacity check
// and the mutation happen in one step, so same-tick arrivals serialize by
// call order. Adding an existing user is a successful no-op.
func (s *Structure) StartUsing(member uuid.UUID) bool {
	if s.Kind == KindBuilding && len(s.Interiors) > 0 {
		return false // occupy a specific fixture instead
	}
	if s.users == nil {
		s.users = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.users[member]; ok {
		return true
	}
	if len(s.users) >= s.Capacity() {
		return false
	}
	s.users[member] = struct{}{}
	return true
}

// StopUsing removes the member from the user set; unknown members are a
// no-op.
func (s *Structure) StopUsing(member uuid.UUID) {
	delete(s.users, member)
}

// IsUsing reports current-user membership.
func (s *Structure) IsUsing(member uuid.UUID) bool {
	_, ok := s.users[member]
	return ok
}

// FreeInterior returns an interior fixture with spare capacity, or nil.
func (s *Structure) FreeInterior() *Structure {
	for _, in := range s.Interiors {
		if len(in.users) < in.Fixture.Capacity {
			return in
		}
	}
	return nil
}

// AssignWorker adds the member to the worker set, bounded by the worker
// capacity. Workers are independent of current users; a worker only
// counts toward production while simultaneously a user.
func (s *Structure) AssignWorker(member uuid.UUID) bool {
	if s.Def.WorkerCapacity <= 0 {
		return false
	}
	if s.workers == nil {
		s.workers = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.workers[member]; ok {
		return true
	}
	if len(s.workers) >= s.Def.WorkerCapacity {
		return false
	}
	s.workers[member] = struct{}{}
	return true
}

// UnassignWorker removes a worker; unknown members are a no-op.
func (s *Structure) UnassignWorker(member uuid.UUID) {
	delete(s.workers, member)
}

// WorkerCount returns the assigned worker count.
func (s *Structure) WorkerCount() int { return len(s.workers) }

// IsWorker reports worker-set membership.
func (s *Structure) IsWorker(member uuid.UUID) bool {
	_, ok := s.workers[member]
	return ok
}

// ActiveWorkers returns the assigned workers that are also current users
// of the building or one of its interiors, in unspecified order.
func (s *Structure) ActiveWorkers() []uuid.UUID {
	var active []uuid.UUID
	for w := range s.workers {
		if s.hosts(w) {
			active = append(active, w)
		}
	}
	return active
}

// hosts reports whether the member occupies this structure directly or
// through one of its interior fixtures.
func (s *Structure) hosts(member uuid.UUID) bool {
	if _, ok := s.users[member]; ok {
		return true
	}
	for _, in := range s.Interiors {
		if _, ok := in.users[member]; ok {
			return true
		}
	}
	return false
}

// Understaffed reports whether a production structure has spare worker
// slots.
func (s *Structure) Understaffed() bool {
	return s.Def.IsProduction() && len(s.workers) < s.Def.WorkerCapacity
}

func (s *Structure) String() string {
	return fmt.Sprintf("%s#%d", s.Name(), s.ID)
}
