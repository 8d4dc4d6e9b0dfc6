package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kieren92/ColonySim/internal/agents"
	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/engine"
	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/world"
)

func sampleSim(t *testing.T) *engine.Simulation {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	sim := engine.NewSimulation(cfg, world.NewGrid(8, 8), events.NewBus(), 1)

	a := agents.NewMember("Asha", cfg, 1.5, 1.5)
	b := agents.NewMember("Brin", cfg, 2.5, 2.5)
	a.Needs.Get("hunger").Set(40)
	b.AdjustAlignment(-25) // 50
	sim.Join(a)
	sim.Join(b)
	return sim
}

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector()
	c.HandleEvent(events.Event{Type: events.ItemProduced})
	c.HandleEvent(events.Event{Type: events.ItemProduced})
	c.HandleEvent(events.Event{Type: events.ItemConfiscated})
	c.HandleEvent(events.Event{Type: events.NeedCritical})
	c.HandleEvent(events.Event{Type: events.StructureBlacklisted})
	c.HandleEvent(events.Event{Type: events.StateChanged}) // not counted

	day := c.Sample(sampleSim(t), 86400)
	assert.Equal(t, 2, day.Produced)
	assert.Equal(t, 1, day.Confiscations)
	assert.Equal(t, 1, day.CriticalNeeds)
	assert.Equal(t, 1, day.Blacklists)
}

func TestSampleResetsWindow(t *testing.T) {
	c := NewCollector()
	sim := sampleSim(t)
	c.HandleEvent(events.Event{Type: events.ItemProduced})

	first := c.Sample(sim, 86400)
	assert.Equal(t, 1, first.Produced)

	second := c.Sample(sim, 172800)
	assert.Equal(t, 0, second.Produced, "counters reset between samples")
	assert.Len(t, c.Days(), 2)
}

func TestSampleNeedStatistics(t *testing.T) {
	c := NewCollector()
	sim := sampleSim(t)

	day := c.Sample(sim, 86400)
	assert.Equal(t, 2, day.Population)
	assert.Equal(t, "Day 2 00:00:00", day.SimTime)
	assert.InDelta(t, 40, day.NeedMin, 1e-9, "the hungry member's worst need")
	assert.Greater(t, day.NeedMean, 40.0)
	assert.Greater(t, day.NeedStdDev, 0.0)
	assert.InDelta(t, 62.5, day.AlignmentMean, 1e-9)
}

func TestSampleEmptySettlement(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	sim := engine.NewSimulation(cfg, world.NewGrid(8, 8), events.NewBus(), 1)

	day := NewCollector().Sample(sim, 0)
	assert.Equal(t, 0, day.Population)
	assert.Equal(t, 0.0, day.NeedMean)
	assert.Equal(t, 0.0, day.NeedMin)
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	c := NewCollector()
	sim := sampleSim(t)
	require.NoError(t, om.WriteDay(c.Sample(sim, 86400)))
	require.NoError(t, om.WriteDay(c.Sample(sim, 172800)))
	require.NoError(t, om.Close())

	f, err := os.Open(filepath.Join(dir, "days.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two data rows")
	assert.Equal(t, "tick", rows[0][0])
	assert.Equal(t, "86400", rows[1][0])
	assert.Equal(t, "172800", rows[2][0])
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om)
	assert.NoError(t, om.WriteDay(DayStats{}), "nil manager is a no-op")
	assert.NoError(t, om.Close())
}
