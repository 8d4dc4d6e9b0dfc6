package agents

import (
	"math"

	"github.com/Kieren92/ColonySim/internal/world"
)

const waypointTolerance = 0.1 * world.CellSize

// advanceMovement walks the member along its waypoint path and fires the
// arrival callback at the end. A member that stops making meaningful
// progress for the stuck window has its target blacklisted and recovers
// to Idle.
func (d *Decider) advanceMovement(m *Member, dt float64) {
	if len(m.path) == 0 {
		d.OnArrivedAtBuilding(m)
		return
	}

	budget := d.Cfg.Tuning.MoveSpeed * dt
	for budget > 0 && m.pathIndex < len(m.path) {
		wp := m.path[m.pathIndex]
		dx := wp.WorldX() - m.X
		dy := wp.WorldY() - m.Y
		dist := math.Hypot(dx, dy)
		if dist <= waypointTolerance {
			m.pathIndex++
			continue
		}
		step := budget
		if step > dist {
			step = dist
		}
		m.X += dx / dist * step
		m.Y += dy / dist * step
		budget -= step
		if dist-step <= waypointTolerance {
			m.pathIndex++
		}
	}

	if m.pathIndex >= len(m.path) {
		d.OnArrivedAtBuilding(m)
		return
	}

	// Stuck detection: meaningful progress resets the window.
	m.stuckTimer += dt
	if m.stuckTimer >= d.Cfg.Tuning.StuckTimeout {
		moved := math.Hypot(m.X-m.lastX, m.Y-m.lastY)
		if moved < d.Cfg.Tuning.StuckDistance {
			target := m.Target
			d.ClearTargetBuilding(m)
			if target != nil {
				d.blacklist(m, target)
			}
			d.setState(m, StateIdle)
			return
		}
		m.stuckTimer = 0
		m.lastX, m.lastY = m.X, m.Y
	}
}
