package agents

import (
	"fmt"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/items"
	"github.com/Kieren92/ColonySim/internal/structures"
	"github.com/Kieren92/ColonySim/internal/world"
)

// Decider runs every member's state machine. It is constructed once per
// simulation and given its collaborators explicitly; nothing here reaches
// for globals.
type Decider struct {
	Cfg       *config.Config
	Registry  *structures.Registry
	Grid      *world.Grid
	Cooldowns *world.CooldownMap
	Commune   *items.Inventory
	Bus       *events.Bus
}

// Update advances one member by dt seconds: movement while en route,
// usage while in a session, and a decision pass on the fixed cadence when
// neither is pending.
func (d *Decider) Update(m *Member, dt float64) {
	for need, left := range m.notifySuppress {
		left -= dt
		if left <= 0 {
			delete(m.notifySuppress, need)
		} else {
			m.notifySuppress[need] = left
		}
	}

	if m.HasMovementTarget() {
		d.advanceMovement(m, dt)
		return
	}

	if m.Using != nil {
		d.updateUsage(m, dt)
		return
	}

	m.decisionTimer -= dt
	if m.decisionTimer > 0 {
		return
	}
	m.decisionTimer = d.Cfg.Tuning.DecisionInterval
	d.decide(m)
}

// decide runs one pass of the priority rules.
func (d *Decider) decide(m *Member) {
	urgent := m.Needs.MostUrgent(d.Cfg.Tuning.NeedUrgencyCeiling)
	if urgent != nil && (urgent.IsCritical() || m.Work == nil) {
		d.resolveNeed(m, urgent.Def)
		return
	}

	if m.Work != nil {
		if energy := m.Needs.Get("energy"); energy != nil && energy.Value < d.Cfg.Tuning.WorkEnergyThreshold {
			d.setState(m, StateTakingBreak)
			return
		}
		if d.route(m, m.Work) {
			m.commuting = true
			d.setState(m, GoingToWork(m.Work.Name()))
			return
		}
		d.blacklist(m, m.Work)
		d.setState(m, StateIdle)
		return
	}

	d.setState(m, StateIdle)
}

// resolveNeed finds a reachable structure satisfying the need and routes
// to it, or falls back to the need's idle-ish state with a rate-limited
// notification.
func (d *Decider) resolveNeed(m *Member, def config.NeedDefinition) {
	b := d.Registry.FindForNeed(def.Name, d.Cooldowns)
	if b != nil && d.route(m, b) {
		m.commuting = false
		d.setState(m, GoingTo(b.Name()))
		return
	}
	if b != nil {
		// Found but unreachable from here; exclude it and retry later.
		d.blacklist(m, b)
	}

	if _, suppressed := m.notifySuppress[def.Name]; !suppressed {
		m.notifySuppress[def.Name] = d.Cfg.Tuning.NotifyCooldown
		d.Bus.Publish(events.NoStructureAvailable, m.ID.String(),
			fmt.Sprintf("nothing satisfies %s", def.Name))
	}
	d.setState(m, FallbackState(def.FallbackState))
}

// route computes a path to the structure entrance and arms the movement
// target. Returns false when no path exists.
func (d *Decider) route(m *Member, b *structures.Structure) bool {
	ex, ey := d.Registry.Entrance(b)
	path := d.Grid.FindPath(m.X, m.Y, ex, ey)
	if path == nil {
		return false
	}
	m.Target = b
	m.path = path
	m.pathIndex = 0
	m.stuckTimer = 0
	m.lastX, m.lastY = m.X, m.Y
	return true
}

// OnArrivedAtBuilding is the movement collaborator's arrival callback:
// claim a usage slot on the target, or give up and go back to Idle on a
// capacity race.
func (d *Decider) OnArrivedAtBuilding(m *Member) {
	b := m.Target
	if b == nil {
		d.setState(m, StateIdle)
		return
	}
	m.path = nil
	m.pathIndex = 0

	session := b
	if len(b.Interiors) > 0 {
		session = b.FreeInterior()
		if session == nil {
			d.ClearTargetBuilding(m)
			d.setState(m, StateIdle)
			return
		}
	}

	if !session.StartUsing(m.ID) {
		d.ClearTargetBuilding(m)
		d.setState(m, StateIdle)
		return
	}

	m.Using = session
	m.usageTimer = 0
	m.workTime = 0
	m.consumed = false
	d.setState(m, UsingState(b.Name()))
}

// ClearTargetBuilding cancels any pending movement or usage reservation.
// Safe to call at any time; the stuck detector and capacity failures both
// use it.
func (d *Decider) ClearTargetBuilding(m *Member) {
	if m.Using != nil {
		m.Using.StopUsing(m.ID)
		m.Using = nil
	}
	m.Target = nil
	m.path = nil
	m.pathIndex = 0
	m.commuting = false
}

// blacklist puts the structure (the parent building for interiors) on the
// unreachable cooldown and clears the member's pursuit of it.
func (d *Decider) blacklist(m *Member, s *structures.Structure) {
	b := s.Building()
	d.Cooldowns.Add(int(b.ID), d.Cfg.Tuning.TargetCooldown)
	d.Bus.Publish(events.StructureBlacklisted, m.ID.String(), b.String())
	if m.Target == s || m.Target == b {
		d.ClearTargetBuilding(m)
	}
}

// setState records a transition and announces it once per change.
func (d *Decider) setState(m *Member, next State) {
	if m.State == next {
		return
	}
	m.State = next
	d.Bus.Publish(events.StateChanged, m.ID.String(), string(next))
}
