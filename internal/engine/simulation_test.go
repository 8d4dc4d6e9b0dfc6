package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kieren92/ColonySim/internal/agents"
	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/world"
)

type simHarness struct {
	cfg    *config.Config
	sim    *Simulation
	events []events.Event
}

func newSimHarness(t *testing.T) *simHarness {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)

	bus := events.NewBus()
	h := &simHarness{cfg: cfg}
	bus.Subscribe(func(ev events.Event) { h.events = append(h.events, ev) })
	h.sim = NewSimulation(cfg, world.NewGrid(24, 24), bus, 1)
	return h
}

func (h *simHarness) countEvents(typ events.Type) int {
	n := 0
	for _, ev := range h.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// fastFarm is a farm variant producing one unit per worker-second, which
// keeps production tests short.
func fastFarm() config.BuildingDefinition {
	return config.BuildingDefinition{
		Name:           "farm",
		Width:          2,
		Height:         2,
		Capacity:       4,
		WorkerCapacity: 2,
		ProductionRate: 3600,
		OutputItem:     "grain",
		WorkAction:     "farm_work",
	}
}

func (h *simHarness) spawn(t *testing.T, name string, x, y float64) *agents.Member {
	t.Helper()
	m := agents.NewMember(name, h.cfg, x, y)
	h.sim.Join(m)
	return m
}

func TestProductionDepositsIntoCommune(t *testing.T) {
	h := newSimHarness(t)
	farm, err := h.sim.Registry.Place(fastFarm(), 8, 8)
	require.NoError(t, err)

	// Spawned at the farm entrance: the commute resolves on the first
	// movement tick and the shift starts immediately after.
	m := h.spawn(t, "Asha", 7.5, 7.5)
	m.Work = farm
	require.True(t, farm.AssignWorker(m.ID))

	for tick := uint64(1); tick <= 4; tick++ {
		h.sim.Advance(tick, 1.0)
	}

	require.True(t, farm.IsUsing(m.ID))
	assert.Equal(t, 3, h.sim.Commune.Count("grain"), "one unit per worker-second from arrival on")
	assert.Equal(t, 3, h.countEvents(events.ItemProduced))
	farming := m.Skills.Get("farming")
	assert.Greater(t, farming.Experience, 0.0, "working grants experience")
}

func TestIdleFarmProducesNothing(t *testing.T) {
	h := newSimHarness(t)
	farm, err := h.sim.Registry.Place(fastFarm(), 8, 8)
	require.NoError(t, err)

	m := h.spawn(t, "Brin", 7.5, 7.5)
	require.True(t, farm.AssignWorker(m.ID))
	// Assigned but not present: no active workers, no output.
	h.sim.Advance(1, 5.0)
	assert.Equal(t, 0, h.sim.Commune.Count("grain"))
}

func TestScheduleWorkRoleFirstThenQualified(t *testing.T) {
	h := newSimHarness(t)
	farm, err := h.sim.Registry.Place(fastFarm(), 8, 8)
	require.NoError(t, err)

	idler := h.spawn(t, "Cato", 2.5, 2.5)
	farmer := h.spawn(t, "Dara", 2.5, 3.5)
	farmer.Role = &h.cfg.Roles[0] // farmer → farm

	h.sim.ScheduleWork()

	assert.Same(t, farm, farmer.Work, "role match wins a slot first")
	assert.Same(t, farm, idler.Work, "remaining slot goes to the first qualified idler")
	assert.Equal(t, 2, farm.WorkerCount())
}

func TestScheduleWorkRespectsSkillMinimums(t *testing.T) {
	h := newSimHarness(t)
	workshop, err := h.sim.Registry.Place(config.BuildingDefinition{
		Name:           "workshop",
		Width:          2,
		Height:         2,
		Capacity:       2,
		WorkerCapacity: 2,
		ProductionRate: 4,
		OutputItem:     "furniture",
		WorkAction:     "build_furniture", // needs carpentry level 1
	}, 8, 8)
	require.NoError(t, err)

	novice := h.spawn(t, "Edda", 2.5, 2.5)
	h.sim.ScheduleWork()
	assert.Nil(t, novice.Work)
	assert.True(t, workshop.Understaffed())

	novice.Skills.Get("carpentry").Level = 1
	h.sim.ScheduleWork()
	assert.Same(t, workshop, novice.Work)
}

func TestSameTickArrivalSerializesByJoinOrder(t *testing.T) {
	h := newSimHarness(t)
	well, err := h.sim.Registry.Place(config.BuildingDefinition{
		Name:          "well",
		Width:         1,
		Height:        1,
		Capacity:      1,
		SatisfiesNeed: "thirst",
		Consumable:    true,
		UseDuration:   30,
	}, 8, 8)
	require.NoError(t, err)
	waterDef, ok := h.cfg.Item("water")
	require.True(t, ok)
	h.sim.Commune.Add(waterDef, 5)

	first := h.spawn(t, "Faye", 2.5, 2.5)
	second := h.spawn(t, "Garr", 2.5, 2.5)
	for _, m := range []*agents.Member{first, second} {
		m.Needs.Get("thirst").Set(25)
	}

	var tick uint64
	for tick = 1; tick <= 40; tick++ {
		h.sim.Advance(tick, 0.5)
		if first.Using != nil {
			break
		}
	}

	require.NotNil(t, first.Using, "join-order winner claims the only slot")
	assert.True(t, well.IsUsing(first.ID))
	assert.Equal(t, 1, well.CurrentUsers())
	assert.Nil(t, second.Using, "identical route, same arrival tick, loser backs off")
}

func TestOwnershipEnforcementSweep(t *testing.T) {
	h := newSimHarness(t)
	h.cfg.Ownership.EnforcementInterval = 10

	m := h.spawn(t, "Hale", 2.5, 2.5)
	grainDef, _ := h.cfg.Item("grain")
	liquorDef, _ := h.cfg.Item("liquor")
	m.Inventory.Add(grainDef, 4)
	m.Inventory.Add(liquorDef, 1)
	require.InDelta(t, 75, m.Alignment, 1e-9)

	h.sim.Advance(1, 10.0)

	assert.Equal(t, 0, m.Inventory.Count("grain"))
	assert.Equal(t, 0, m.Inventory.Count("liquor"))
	assert.Equal(t, 4, h.sim.Commune.Count("grain"))
	assert.Equal(t, 1, h.sim.Commune.Count("liquor"))
	assert.InDelta(t, 65, m.Alignment, 1e-9, "five points docked per seizure")
	assert.Equal(t, 2, h.countEvents(events.ItemConfiscated))
	assert.Equal(t, 2, h.countEvents(events.BeliefChanged))
}

func TestLeaveReleasesReservations(t *testing.T) {
	h := newSimHarness(t)
	farm, err := h.sim.Registry.Place(fastFarm(), 8, 8)
	require.NoError(t, err)

	m := h.spawn(t, "Iver", 2.5, 2.5)
	m.Work = farm
	require.True(t, farm.AssignWorker(m.ID))
	require.True(t, farm.StartUsing(m.ID))
	m.Using = farm

	h.sim.Leave(m)

	assert.Empty(t, h.sim.Members)
	assert.Equal(t, 0, farm.WorkerCount())
	assert.Equal(t, 0, farm.CurrentUsers())
	assert.Equal(t, 1, h.countEvents(events.MemberLeft))
}
