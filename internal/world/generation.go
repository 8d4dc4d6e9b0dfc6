// Terrain generation using layered simplex noise. Produces the walkable
// mask for the settlement grid: rocky outcrops and marsh become blocked
// cells, everything else is buildable ground.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Width    int
	Height   int
	Seed     int64   // 0 = random
	RockLvl  float64 // noise threshold above which a cell is rock
	MarshLvl float64 // moisture threshold above which a cell is marsh
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:    64,
		Height:   64,
		Seed:     0,
		RockLvl:  0.78,
		MarshLvl: 0.85,
	}
}

// SmallTestConfig returns a tiny deterministic grid for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{Width: 16, Height: 16, Seed: 42, RockLvl: 0.85, MarshLvl: 0.92}
}

// Generate creates the settlement grid with noise-derived walkability.
// The center of the map is always kept clear so the settlement has
// buildable ground regardless of seed.
func Generate(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	rockNoise := opensimplex.NewNormalized(seed)
	marshNoise := opensimplex.NewNormalized(seed + 1)

	g := NewGrid(cfg.Width, cfg.Height)

	cx, cy := cfg.Width/2, cfg.Height/2
	clearRadius := minInt(cfg.Width, cfg.Height) / 4

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if abs(x-cx) <= clearRadius && abs(y-cy) <= clearRadius {
				continue // settlement core stays open
			}
			rock := octaveNoise(rockNoise, float64(x), float64(y), 4, 0.09, 0.5)
			marsh := octaveNoise(marshNoise, float64(x), float64(y), 3, 0.06, 0.5)
			if rock > cfg.RockLvl || marsh > cfg.MarshLvl {
				g.SetWalkable(x, y, false)
			}
		}
	}

	return g
}

// octaveNoise sums several noise octaves with decreasing amplitude,
// normalized back to [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
