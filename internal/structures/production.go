package structures

import "math/rand"

// Produce integrates production over dt seconds for a production
// structure with the given active worker count and averaged skill
// multipliers. Fractional progress accumulates across ticks; every whole
// unit is emitted, with a quality-scaled chance of a bonus second unit.
// Returns the number of units produced.
func (s *Structure) Produce(dt float64, activeWorkers int, avgSpeed, avgQuality float64, rng *rand.Rand) int {
	if !s.Def.IsProduction() || activeWorkers <= 0 || dt <= 0 {
		return 0
	}

	baseRate := s.Def.ProductionRate / 3600
	s.Progress += baseRate * float64(activeWorkers) * avgSpeed * dt
	s.LastQuality = avgQuality

	// Bonus chance scales with quality above 1.0; quality 1.0 never rolls.
	bonusChance := avgQuality - 1
	if bonusChance < 0 {
		bonusChance = 0
	}
	if bonusChance > 1 {
		bonusChance = 1
	}

	produced := 0
	for s.Progress >= 1 {
		s.Progress -= 1
		produced++
		if bonusChance > 0 && rng != nil && rng.Float64() < bonusChance {
			produced++
		}
	}
	return produced
}
