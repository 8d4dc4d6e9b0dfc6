package world

// CooldownMap tracks temporarily excluded targets by integer handle
// (structure IDs — stable across the run, unlike object references).
// Entries expire as simulated time advances.
type CooldownMap struct {
	remaining map[int]float64 // handle → seconds left
}

// NewCooldownMap returns an empty map.
func NewCooldownMap() *CooldownMap {
	return &CooldownMap{remaining: make(map[int]float64)}
}

// Add places a handle on cooldown for the given duration, extending any
// existing entry to at least that duration.
func (m *CooldownMap) Add(handle int, seconds float64) {
	if seconds <= 0 {
		return
	}
	if cur, ok := m.remaining[handle]; !ok || cur < seconds {
		m.remaining[handle] = seconds
	}
}

// Active reports whether the handle is currently excluded.
func (m *CooldownMap) Active(handle int) bool {
	_, ok := m.remaining[handle]
	return ok
}

// Tick advances all timers by dt seconds, dropping expired entries.
func (m *CooldownMap) Tick(dt float64) {
	for handle, left := range m.remaining {
		left -= dt
		if left <= 0 {
			delete(m.remaining, handle)
		} else {
			m.remaining[handle] = left
		}
	}
}

// Len returns the number of live entries.
func (m *CooldownMap) Len() int { return len(m.remaining) }
