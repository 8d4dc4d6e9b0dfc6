// Simulation ties the settlement systems together and advances them in a
// fixed order each tick: needs decay, decisions, production, then the
// periodic enforcement and scheduling passes.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/Kieren92/ColonySim/internal/agents"
	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/items"
	"github.com/Kieren92/ColonySim/internal/skills"
	"github.com/Kieren92/ColonySim/internal/structures"
	"github.com/Kieren92/ColonySim/internal/world"
)

// Simulation holds the complete settlement state and wires the systems
// together. All collaborators are constructed explicitly so independent
// simulations can coexist in one process.
type Simulation struct {
	Cfg       *config.Config
	Grid      *world.Grid
	Registry  *structures.Registry
	Cooldowns *world.CooldownMap
	Bus       *events.Bus
	Commune   *items.Inventory
	Members   []*agents.Member
	Decider   *agents.Decider
	Orders    *OrderBook
	LastTick  uint64

	rng              *rand.Rand
	enforcementClock float64
	schedulerClock   float64
}

// NewSimulation assembles a simulation over a generated grid.
func NewSimulation(cfg *config.Config, grid *world.Grid, bus *events.Bus, seed int64) *Simulation {
	registry := structures.NewRegistry(grid)
	cooldowns := world.NewCooldownMap()
	commune := items.NewInventory(0)

	sim := &Simulation{
		Cfg:       cfg,
		Grid:      grid,
		Registry:  registry,
		Cooldowns: cooldowns,
		Bus:       bus,
		Commune:   commune,
		Orders:    NewOrderBook(bus),
		rng:       rand.New(rand.NewSource(seed)),
		Decider: &agents.Decider{
			Cfg:       cfg,
			Registry:  registry,
			Grid:      grid,
			Cooldowns: cooldowns,
			Commune:   commune,
			Bus:       bus,
		},
	}
	return sim
}

// Join adds a member to the settlement.
func (s *Simulation) Join(m *agents.Member) {
	s.Members = append(s.Members, m)
}

// Leave removes a member, releasing any reservations it holds.
func (s *Simulation) Leave(m *agents.Member) {
	s.Decider.ClearTargetBuilding(m)
	if m.Work != nil {
		m.Work.UnassignWorker(m.ID)
		m.Work = nil
	}
	for i, mm := range s.Members {
		if mm == m {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			break
		}
	}
	s.Bus.Publish(events.MemberLeft, m.ID.String(), m.Name)
}

// Advance moves the settlement forward by dt sim-seconds. Members are
// processed in join order every tick, so capacity races resolve
// deterministically.
func (s *Simulation) Advance(tick uint64, dt float64) {
	s.LastTick = tick
	s.Bus.SetTick(tick)

	s.Cooldowns.Tick(dt)

	// Needs decay strictly precedes decision logic.
	for _, m := range s.Members {
		m.Needs.DecayAll(dt, m.IsWorking(), m.IsResting(), s.Bus, m.ID.String())
		m.Inventory.UpdateItems(dt)
	}

	for _, m := range s.Members {
		s.Decider.Update(m, dt)
	}

	s.produce(dt)
	s.Commune.UpdateItems(dt)
	s.Orders.Expire(tick)

	s.enforcementClock += dt
	if interval := s.Cfg.Ownership.EnforcementInterval; interval > 0 && s.enforcementClock >= interval {
		s.enforcementClock = 0
		s.enforceOwnership()
	}

	s.schedulerClock += dt
	if interval := s.Cfg.Tuning.SchedulerInterval; interval > 0 && s.schedulerClock >= interval {
		s.schedulerClock = 0
		s.ScheduleWork()
	}
}

// produce integrates every production building and deposits output into
// the commune stores.
func (s *Simulation) produce(dt float64) {
	for _, b := range s.Registry.Production() {
		workers := s.activeWorkers(b)
		if len(workers) == 0 {
			continue
		}
		action, ok := s.Cfg.Action(b.Def.WorkAction)
		var avgSpeed, avgQuality float64
		if ok {
			for _, m := range workers {
				avgSpeed += m.Skills.Combine(action, skills.Speed)
				avgQuality += m.Skills.Combine(action, skills.Quality)
			}
			avgSpeed /= float64(len(workers))
			avgQuality /= float64(len(workers))
		} else {
			avgSpeed, avgQuality = 1, 1
		}

		units := b.Produce(dt, len(workers), avgSpeed, avgQuality, s.rng)
		if units == 0 {
			continue
		}
		def, ok := s.Cfg.Item(b.Def.OutputItem)
		if !ok {
			continue
		}
		s.Commune.Add(def, units)
		s.Orders.AddProgress(b.Def.WorkAction, units)
		s.Bus.Publish(events.ItemProduced, "",
			fmt.Sprintf("%s produced %d %s (quality %.2f)", b.Def.Name, units, def.Name, b.LastQuality))
	}
}

// activeWorkers resolves a building's active worker IDs to members in
// join order, keeping iteration deterministic.
func (s *Simulation) activeWorkers(b *structures.Structure) []*agents.Member {
	var out []*agents.Member
	for _, m := range s.Members {
		if b.IsWorker(m.ID) && m.Using != nil && m.Using.Building() == b && m.Using.IsUsing(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

// enforceOwnership scans every member's personal inventory and
// confiscates disallowed items into the commune stores, docking ideology
// alignment per seizure.
func (s *Simulation) enforceOwnership() {
	for _, m := range s.Members {
		seized := items.Enforce(s.Cfg.Ownership, m.Inventory, s.Commune)
		for _, c := range seized {
			m.AdjustAlignment(-s.Cfg.Ownership.AlignmentPenalty)
			s.Bus.Publish(events.ItemConfiscated, m.ID.String(),
				fmt.Sprintf("%dx %s", c.Quantity, c.Item))
			s.Bus.Publish(events.BeliefChanged, m.ID.String(),
				fmt.Sprintf("alignment %.0f", m.Alignment))
		}
	}
}
