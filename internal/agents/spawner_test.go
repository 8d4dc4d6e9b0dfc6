package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/world"
)

func TestSpawnPopulation(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	grid := world.NewGrid(16, 16)

	bus := events.NewBus()
	joined := 0
	bus.Subscribe(func(ev events.Event) {
		if ev.Type == events.MemberJoined {
			joined++
		}
	})

	members := NewSpawner(cfg, 42).SpawnPopulation(6, grid, bus)
	require.Len(t, members, 6)
	assert.Equal(t, 6, joined)

	names := map[string]bool{}
	for _, m := range members {
		assert.NotEmpty(t, m.Name)
		assert.False(t, names[m.Name], "spawned names are unique")
		names[m.Name] = true
		require.NotNil(t, m.Role, "roles cycle over the configured list")
		assert.Equal(t, StateIdle, m.State)

		cell := grid.CellAtWorld(m.X, m.Y)
		require.NotNil(t, cell)
		assert.True(t, cell.Walkable)
	}
	assert.Equal(t, "farmer", members[0].Role.Name)
	assert.Equal(t, "cook", members[1].Role.Name)
}

func TestSpawnerDeterministicPerSeed(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	a := NewSpawner(cfg, 7).SpawnPopulation(4, world.NewGrid(16, 16), nil)
	b := NewSpawner(cfg, 7).SpawnPopulation(4, world.NewGrid(16, 16), nil)
	require.Len(t, b, 4)
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].X, b[i].X)
		assert.Equal(t, a[i].Y, b[i].Y)
	}
}
