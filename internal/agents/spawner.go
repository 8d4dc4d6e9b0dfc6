// Member spawning — creates the initial population with names, roles and
// starting positions around the settlement center.
package agents

import (
	"fmt"
	"math/rand"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/world"
)

var givenNames = []string{
	"Asha", "Bren", "Cato", "Dara", "Edan", "Fen", "Greta", "Halvar",
	"Ines", "Jorun", "Kell", "Lena", "Mirko", "Nadia", "Oskar", "Petra",
	"Quill", "Rosa", "Sten", "Tova", "Ulla", "Viggo", "Wren", "Yara",
}

// Spawner creates members for the simulation, deterministically from its
// seed.
type Spawner struct {
	rng *rand.Rand
	cfg *config.Config
	n   int
}

// NewSpawner creates a member spawner with the given seed.
func NewSpawner(cfg *config.Config, seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed + 300)), cfg: cfg}
}

// SpawnPopulation creates count members scattered on open cells near the
// grid center, cycling through the configured roles.
func (s *Spawner) SpawnPopulation(count int, grid *world.Grid, bus *events.Bus) []*Member {
	members := make([]*Member, 0, count)
	cx, cy := grid.Width/2, grid.Height/2
	for i := 0; i < count; i++ {
		x := cx + s.rng.Intn(7) - 3
		y := cy + s.rng.Intn(7) - 3
		cell := grid.NearestOpen(x, y, grid.Width)
		if cell == nil {
			continue
		}
		m := NewMember(s.name(), s.cfg, cell.WorldX(), cell.WorldY())
		if len(s.cfg.Roles) > 0 {
			role := s.cfg.Roles[i%len(s.cfg.Roles)]
			m.Role = &role
		}
		members = append(members, m)
		bus.Publish(events.MemberJoined, m.ID.String(), m.Name)
	}
	return members
}

func (s *Spawner) name() string {
	s.n++
	base := givenNames[s.rng.Intn(len(givenNames))]
	return fmt.Sprintf("%s-%02d", base, s.n)
}
