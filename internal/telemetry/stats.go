// Package telemetry aggregates daily settlement statistics and writes
// them out as CSV for offline analysis.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Kieren92/ColonySim/internal/engine"
	"github.com/Kieren92/ColonySim/internal/events"
)

// DayStats holds aggregated statistics for one sim-day.
type DayStats struct {
	Tick       uint64  `csv:"tick"`
	SimTime    string  `csv:"sim_time"`
	Population int     `csv:"population"`

	// Need distribution across members at sample time.
	NeedMean   float64 `csv:"need_mean"`
	NeedStdDev float64 `csv:"need_stddev"`
	NeedMin    float64 `csv:"need_min"`

	AlignmentMean float64 `csv:"alignment_mean"`

	// Event counts during the day.
	Produced      int `csv:"produced"`
	Confiscations int `csv:"confiscations"`
	CriticalNeeds int `csv:"critical_needs"`
	Blacklists    int `csv:"blacklists"`
}

// Collector accumulates event counts between samples. Subscribe it to the
// simulation's bus and call Sample once per day.
type Collector struct {
	days []DayStats

	produced      int
	confiscations int
	criticalNeeds int
	blacklists    int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// HandleEvent is the bus subscription hook.
func (c *Collector) HandleEvent(ev events.Event) {
	switch ev.Type {
	case events.ItemProduced:
		c.produced++
	case events.ItemConfiscated:
		c.confiscations++
	case events.NeedCritical:
		c.criticalNeeds++
	case events.StructureBlacklisted:
		c.blacklists++
	}
}

// Sample snapshots the settlement and resets the window counters.
func (c *Collector) Sample(sim *engine.Simulation, tick uint64) DayStats {
	var needVals, alignVals []float64
	needMin := 100.0
	for _, m := range sim.Members {
		for _, n := range m.Needs.All {
			needVals = append(needVals, n.Value)
			if n.Value < needMin {
				needMin = n.Value
			}
		}
		alignVals = append(alignVals, m.Alignment)
	}

	day := DayStats{
		Tick:          tick,
		SimTime:       engine.SimTime(tick),
		Population:    len(sim.Members),
		NeedMin:       needMin,
		Produced:      c.produced,
		Confiscations: c.confiscations,
		CriticalNeeds: c.criticalNeeds,
		Blacklists:    c.blacklists,
	}
	if len(needVals) > 0 {
		day.NeedMean, day.NeedStdDev = stat.MeanStdDev(needVals, nil)
	} else {
		day.NeedMin = 0
	}
	if len(alignVals) > 0 {
		day.AlignmentMean = stat.Mean(alignVals, nil)
	}

	c.produced = 0
	c.confiscations = 0
	c.criticalNeeds = 0
	c.blacklists = 0

	c.days = append(c.days, day)
	return day
}

// Days returns every sampled day in order.
func (c *Collector) Days() []DayStats {
	return c.days
}
