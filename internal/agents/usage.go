package agents

import (
	"fmt"

	"github.com/Kieren92/ColonySim/internal/events"
)

// workXPPerSecond is the base experience granted per second of work,
// scaled by each contributing skill's weight.
const workXPPerSecond = 0.5

// updateUsage advances an active usage session by dt seconds.
func (d *Decider) updateUsage(m *Member, dt float64) {
	session := m.Using
	b := session.Building()
	m.usageTimer += dt

	// Work session: only entered via a work commute. A worker visiting
	// their own workplace to eat or drink falls through to the need
	// branches instead of being captured into a shift.
	if m.commuting && b.Def.IsProduction() && b.IsWorker(m.ID) {
		// Emergency-level needs abort the shift on the spot; critical
		// ones wait for the scheduled break.
		for _, n := range m.Needs.All {
			if n.IsEmergency() {
				d.endSession(m, StateIdle)
				return
			}
		}
		m.workTime += dt
		if action, ok := d.Cfg.Action(b.Def.WorkAction); ok {
			for _, c := range action.Skills {
				if inst := m.Skills.Get(c.Skill); inst != nil {
					inst.GainExperience(workXPPerSecond*c.Weight*dt, d.Bus, m.ID.String())
				}
			}
		}
		if b.Def.WorkSession > 0 && m.workTime >= b.Def.WorkSession {
			d.endSession(m, StateTakingBreak)
		}
		return
	}

	// Consumable need (hunger/thirst): eat/drink once, personal inventory
	// first, commune stores second. Nothing to consume ends the session
	// early with a warning-level outcome.
	if b.Def.Consumable {
		if !m.consumed {
			if !d.consumeFor(m, b.Def.SatisfiesNeed) {
				d.Bus.Publish(events.SessionEndedUnfulfill, m.ID.String(),
					fmt.Sprintf("no item satisfies %s at %s", b.Def.SatisfiesNeed, b.Def.Name))
				d.endSession(m, StateIdle)
				return
			}
			m.consumed = true
		}
		if m.usageTimer >= b.Def.UseDuration {
			d.endSession(m, StateIdle)
		}
		return
	}

	// Gradual restore (sleep/social): linear over the configured duration.
	if b.Def.SatisfiesNeed != "" && b.Def.UseDuration > 0 {
		if need := m.Needs.Get(b.Def.SatisfiesNeed); need != nil {
			need.Satisfy(b.Def.RestoreAmount / b.Def.UseDuration * dt)
		}
		if m.usageTimer >= b.Def.UseDuration {
			d.endSession(m, StateIdle)
		}
		return
	}

	// Nothing to do here (plain structure): leave after the duration, or
	// immediately when none is configured.
	if b.Def.UseDuration <= 0 || m.usageTimer >= b.Def.UseDuration {
		d.endSession(m, StateIdle)
	}
}

// consumeFor removes one item satisfying the need from the member's
// inventory, falling back to the commune stores, and applies its restore.
func (d *Decider) consumeFor(m *Member, needName string) bool {
	need := m.Needs.Get(needName)
	if need == nil {
		return false
	}
	for _, def := range d.Cfg.Items {
		if def.SatisfiesNeed != needName {
			continue
		}
		if m.Inventory.Remove(def.Name, 1) == 1 {
			need.Satisfy(def.RestoreAmount)
			return true
		}
		if d.Commune != nil && d.Commune.Remove(def.Name, 1) == 1 {
			need.Satisfy(def.RestoreAmount)
			return true
		}
	}
	return false
}

// endSession releases the usage slot and transitions out.
func (d *Decider) endSession(m *Member, next State) {
	if m.Using != nil {
		m.Using.StopUsing(m.ID)
		m.Using = nil
	}
	m.Target = nil
	m.usageTimer = 0
	m.workTime = 0
	m.consumed = false
	m.commuting = false
	d.setState(m, next)
}
