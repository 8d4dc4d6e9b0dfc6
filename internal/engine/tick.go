// Package engine provides the tick-based simulation loop and the
// settlement-level systems that run on it: the per-tick member update,
// the work scheduler, ownership enforcement and work orders.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// One tick advances the simulation by one sim-second before speed scaling.
const (
	TicksPerSimMinute = 60
	TicksPerSimHour   = 3600
	TicksPerSimDay    = 86400
)

// Engine drives the simulation forward in real time.
type Engine struct {
	Tick     uint64        // current tick counter (monotonic)
	Speed    float64       // sim-seconds per real second; 0 = paused
	Interval time.Duration // base tick interval
	Running  bool

	// Callbacks for each tick layer, populated during setup.
	OnTick func(tick uint64, dt float64)
	OnHour func(tick uint64)
	OnDay  func(tick uint64)

	acc float64 // accumulated sim-seconds, source of the tick counter
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{Speed: 1.0, Interval: 50 * time.Millisecond}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.Step(e.Interval.Seconds() * e.Speed)

		if elapsed := time.Since(start); elapsed < e.Interval {
			time.Sleep(e.Interval - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current step.
func (e *Engine) Stop() {
	e.Running = false
}

// Step advances the simulation by dt sim-seconds, firing layer callbacks
// whenever their boundary is crossed. The tick counter tracks whole
// sim-seconds; fractional steps accumulate.
func (e *Engine) Step(dt float64) {
	prev := e.Tick
	e.acc += dt
	e.Tick = uint64(e.acc)

	if e.OnTick != nil {
		e.OnTick(e.Tick, dt)
	}
	if e.OnHour != nil && crossed(prev, e.Tick, TicksPerSimHour) {
		e.OnHour(e.Tick)
	}
	if e.OnDay != nil && crossed(prev, e.Tick, TicksPerSimDay) {
		e.OnDay(e.Tick)
	}
}

func crossed(prev, now, boundary uint64) bool {
	return prev/boundary != now/boundary
}

// SimTime renders a tick counter as a readable sim timestamp.
func SimTime(tick uint64) string {
	secs := tick % 60
	mins := tick / 60 % 60
	hours := tick / 3600 % 24
	days := tick/86400 + 1
	return fmt.Sprintf("Day %d %02d:%02d:%02d", days, hours, mins, secs)
}
