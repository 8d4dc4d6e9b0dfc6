// Package needs implements the decaying need scalars that drive member
// behavior. Values live on a 0–100 scale: 100 is fully met, low values
// are urgent.
package needs

import (
	"fmt"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
)

// Instance is one member's copy of a configured need.
type Instance struct {
	Def   config.NeedDefinition
	Value float64 // clamped to [0, 100]

	wasCritical bool
}

// NewInstance creates a fully satisfied need.
func NewInstance(def config.NeedDefinition) *Instance {
	return &Instance{Def: def, Value: 100}
}

// DecayAmount computes how much this need drops over dt seconds. Working
// takes precedence over resting when the need is activity-sensitive.
func (n *Instance) DecayAmount(dt float64, working, resting bool) float64 {
	base := n.Def.DecayRatePerHour * dt / 3600
	if !n.Def.ActivitySensitive {
		return base
	}
	switch {
	case working:
		return base * n.Def.WorkingMultiplier
	case resting:
		return base * n.Def.RestingMultiplier
	default:
		return base
	}
}

// Decay applies time passage and reports the critical edge, if crossed,
// on the bus. The notification fires once per crossing, not per tick.
func (n *Instance) Decay(dt float64, working, resting bool, bus *events.Bus, member string) {
	n.Value -= n.DecayAmount(dt, working, resting)
	if n.Value < 0 {
		n.Value = 0
	}

	critical := n.IsCritical()
	if critical && !n.wasCritical {
		bus.Publish(events.NeedCritical, member,
			fmt.Sprintf("%s dropped to %.0f", n.Def.Name, n.Value))
	}
	n.wasCritical = critical
}

// Satisfy restores the need, clamped to 100.
func (n *Instance) Satisfy(amount float64) {
	n.Value += amount
	if n.Value > 100 {
		n.Value = 100
	}
	if n.Value < 0 {
		n.Value = 0
	}
	n.wasCritical = n.IsCritical()
}

// IsCritical reports whether the need is below its critical threshold.
func (n *Instance) IsCritical() bool {
	return n.Value < n.Def.CriticalThreshold
}

// IsEmergency reports whether the need is below its emergency threshold.
func (n *Instance) IsEmergency() bool {
	return n.Value < n.Def.EmergencyThreshold
}

// Set stores a clamped value without edge bookkeeping side effects beyond
// re-priming the critical latch. Used at spawn and in tests.
func (n *Instance) Set(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	n.Value = v
	n.wasCritical = n.IsCritical()
}

// Set is the tuned collection of one member's needs.
type Set struct {
	All []*Instance
}

// NewSet creates one instance per configured need.
func NewSet(defs []config.NeedDefinition) *Set {
	s := &Set{All: make([]*Instance, 0, len(defs))}
	for _, d := range defs {
		s.All = append(s.All, NewInstance(d))
	}
	return s
}

// Get returns the instance for a named need.
func (s *Set) Get(name string) *Instance {
	for _, n := range s.All {
		if n.Def.Name == name {
			return n
		}
	}
	return nil
}

// MostUrgent returns the lowest-valued need under the given ceiling, or
// nil when every need sits at or above it.
func (s *Set) MostUrgent(ceiling float64) *Instance {
	var worst *Instance
	for _, n := range s.All {
		if n.Value >= ceiling {
			continue
		}
		if worst == nil || n.Value < worst.Value {
			worst = n
		}
	}
	return worst
}

// DecayAll advances every need by dt seconds.
func (s *Set) DecayAll(dt float64, working, resting bool, bus *events.Bus, member string) {
	for _, n := range s.All {
		n.Decay(dt, working, resting, bus, member)
	}
}
