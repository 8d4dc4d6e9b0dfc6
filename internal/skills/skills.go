// Package skills implements experience accumulation, leveling and the
// multi-skill combination math behind every effectiveness calculation.
package skills

import (
	"fmt"
	"math"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
)

// Instance is one member's progress in a configured skill.
type Instance struct {
	Def        config.SkillDefinition
	Level      int
	Experience float64
}

// NewInstance starts a skill at level zero.
func NewInstance(def config.SkillDefinition) *Instance {
	return &Instance{Def: def}
}

// RequiredXP returns the experience needed to reach the given level from
// the one below it.
func (s *Instance) RequiredXP(level int) float64 {
	return 100 * math.Pow(float64(level), s.Def.ExperienceCurve)
}

// GainExperience adds scaled experience and consumes it against level
// thresholds. A single large gain can produce several level-ups; each one
// is announced on the bus.
func (s *Instance) GainExperience(amount float64, bus *events.Bus, member string) int {
	if amount <= 0 {
		return 0
	}
	s.Experience += amount * s.Def.LearningRate

	levels := 0
	for s.Level < s.Def.MaxLevel {
		threshold := s.RequiredXP(s.Level + 1)
		if s.Experience < threshold {
			break
		}
		s.Experience -= threshold
		s.Level++
		levels++
		bus.Publish(events.SkillLeveled, member,
			fmt.Sprintf("%s reached level %d", s.Def.Name, s.Level))
	}
	return levels
}

// SpeedMultiplier returns the level-scaled speed factor.
func (s *Instance) SpeedMultiplier() float64 {
	return 1 + float64(s.Level)*s.Def.SpeedBonusPerLevel
}

// QualityMultiplier returns the level-scaled quality factor.
func (s *Instance) QualityMultiplier() float64 {
	return 1 + float64(s.Level)*s.Def.QualityBonusPerLevel
}

// Set holds one member's skills keyed by definition name.
type Set struct {
	byName map[string]*Instance
}

// NewSet creates a level-zero instance per configured skill.
func NewSet(defs []config.SkillDefinition) *Set {
	s := &Set{byName: make(map[string]*Instance, len(defs))}
	for _, d := range defs {
		s.byName[d.Name] = NewInstance(d)
	}
	return s
}

// Get returns the instance for a named skill, or nil.
func (s *Set) Get(name string) *Instance {
	return s.byName[name]
}

// Aspect selects which multiplier a combination draws from.
type Aspect int

const (
	Speed Aspect = iota
	Quality
)

// Combine folds the action's qualifying skill contributions into a single
// multiplier using the action's combination mode. Contributions are
// skipped when their aspect flag is off or the member has not reached the
// contribution's minimum level.
func (s *Set) Combine(action config.ActionDefinition, aspect Aspect) float64 {
	type part struct {
		mult   float64
		weight float64
	}
	var parts []part
	for _, c := range action.Skills {
		if aspect == Speed && !c.AffectsSpeed {
			continue
		}
		if aspect == Quality && !c.AffectsQuality {
			continue
		}
		inst := s.byName[c.Skill]
		if inst == nil || inst.Level < c.MinimumLevel {
			continue
		}
		m := inst.SpeedMultiplier()
		if aspect == Quality {
			m = inst.QualityMultiplier()
		}
		parts = append(parts, part{mult: m, weight: c.Weight})
	}

	switch action.Mode {
	case config.CombineMultiplicative:
		result := 1.0
		for _, p := range parts {
			result *= math.Pow(p.mult, p.weight)
		}
		return result
	case config.CombineWeightedAvg:
		var sum, total float64
		for _, p := range parts {
			sum += p.mult * p.weight
			total += p.weight
		}
		if total == 0 {
			return 1.0
		}
		return sum / total
	case config.CombineDominant:
		best := 1.0
		for _, p := range parts {
			if v := 1 + (p.mult-1)*p.weight; v > best {
				best = v
			}
		}
		return best
	default: // additive
		result := 1.0
		for _, p := range parts {
			result += (p.mult - 1) * p.weight
		}
		return result
	}
}

// MeetsRequirements reports whether every contribution with a positive
// minimum level is satisfied. Non-positive minimums impose no floor.
func (s *Set) MeetsRequirements(action config.ActionDefinition) bool {
	for _, c := range action.Skills {
		if c.MinimumLevel <= 0 {
			continue
		}
		inst := s.byName[c.Skill]
		if inst == nil || inst.Level < c.MinimumLevel {
			return false
		}
	}
	return true
}
