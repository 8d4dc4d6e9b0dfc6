// Package agents provides the member data model and the priority-driven
// decision state machine that routes members between needs, work and
// structure usage.
package agents

import (
	"github.com/google/uuid"

	"github.com/Kieren92/ColonySim/internal/config"
	"github.com/Kieren92/ColonySim/internal/items"
	"github.com/Kieren92/ColonySim/internal/needs"
	"github.com/Kieren92/ColonySim/internal/skills"
	"github.com/Kieren92/ColonySim/internal/structures"
	"github.com/Kieren92/ColonySim/internal/world"
)

// State is a member's discrete behavior label. Movement and usage states
// embed the structure name rather than spawning per-structure types.
type State string

const (
	StateIdle        State = "Idle"
	StateTakingBreak State = "TakingBreak"
	StateSeekingFood State = "SeekingFood"
	StateResting     State = "Resting"
	StateSocializing State = "Socializing"
)

// GoingTo labels movement toward a need-satisfying structure.
func GoingTo(structure string) State { return State("GoingTo_" + structure) }

// GoingToWork labels the commute toward an assigned work structure.
func GoingToWork(structure string) State { return State("GoingToWork_" + structure) }

// UsingState labels an active usage session.
func UsingState(structure string) State { return State("Using_" + structure) }

// FallbackState maps a configured fallback name to a state label.
func FallbackState(name string) State {
	switch name {
	case "seeking_food":
		return StateSeekingFood
	case "resting":
		return StateResting
	case "socializing":
		return StateSocializing
	default:
		return StateIdle
	}
}

// Member is a commune member: a person (needs, skills, inventory) plus
// ideology alignment and optional role/work assignment.
type Member struct {
	ID   uuid.UUID
	Name string

	X, Y  float64
	State State

	Needs     *needs.Set
	Skills    *skills.Set
	Inventory *items.Inventory

	// Commune fields.
	Alignment float64 // ideology conformity, 0–100
	Role      *config.RoleDefinition
	Work      *structures.Structure // assigned workplace

	// Movement/usage lifecycle. Target is the single in-flight structure
	// reference; Using is the session host (an interior fixture when the
	// target building has them).
	Target *structures.Structure
	Using  *structures.Structure

	path      []*world.Cell
	pathIndex int

	decisionTimer float64
	usageTimer    float64
	workTime      float64
	commuting     bool
	consumed      bool // consumable session already ate/drank

	// Stuck detection window.
	stuckTimer float64
	lastX      float64
	lastY      float64

	// Per-need suppression of "no structure available" notifications.
	notifySuppress map[string]float64
}

// NewMember creates a member with full needs, zeroed skills and an empty
// personal inventory.
func NewMember(name string, cfg *config.Config, x, y float64) *Member {
	return &Member{
		ID:             uuid.New(),
		Name:           name,
		X:              x,
		Y:              y,
		State:          StateIdle,
		Needs:          needs.NewSet(cfg.Needs),
		Skills:         skills.NewSet(cfg.Skills),
		Inventory:      items.NewInventory(8),
		Alignment:      75,
		notifySuppress: make(map[string]float64),
	}
}

// HasMovementTarget reports whether the member is mid-route.
func (m *Member) HasMovementTarget() bool {
	return m.Target != nil && m.Using == nil
}

// IsWorking reports an active work session: using a structure where the
// member is an assigned worker.
func (m *Member) IsWorking() bool {
	if m.Using == nil {
		return false
	}
	b := m.Using.Building()
	return b.Def.IsProduction() && b.IsWorker(m.ID)
}

// IsResting reports a restful state for activity-sensitive need decay.
func (m *Member) IsResting() bool {
	if m.State == StateResting || m.State == StateTakingBreak {
		return true
	}
	if m.Using != nil && m.Using.Building().Def.SatisfiesNeed == "energy" {
		return true
	}
	return false
}

// AdjustAlignment shifts ideology alignment, clamped to [0, 100].
func (m *Member) AdjustAlignment(delta float64) {
	m.Alignment += delta
	if m.Alignment < 0 {
		m.Alignment = 0
	}
	if m.Alignment > 100 {
		m.Alignment = 100
	}
}
