// Package events provides the simulation's owned notification channel:
// an explicit observer list constructed per simulation run and handed to
// the components that emit. Dispatch is synchronous and in tick order.
package events

import "log/slog"

// Type labels a simulation event.
type Type string

const (
	NeedCritical          Type = "need_critical"
	StateChanged          Type = "state_changed"
	SkillLeveled          Type = "skill_leveled"
	MemberJoined          Type = "member_joined"
	MemberLeft            Type = "member_left"
	BeliefChanged         Type = "belief_changed"
	ItemConfiscated       Type = "item_confiscated"
	ItemProduced          Type = "item_produced"
	OrderCompleted        Type = "order_completed"
	StructureBlacklisted  Type = "structure_blacklisted"
	NoStructureAvailable  Type = "no_structure_available"
	SessionEndedUnfulfill Type = "session_ended_unfulfilled"
)

// Event is one notable occurrence in the colony.
type Event struct {
	Tick   uint64
	Type   Type
	Member string // member ID, if any
	Detail string
}

// Handler receives events. Handlers must not retain the event's address.
type Handler func(Event)

// Bus fans events out to its subscribers. Not safe for concurrent use;
// the single simulation goroutine owns it.
type Bus struct {
	tick     uint64
	handlers []Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe appends a handler. Order of subscription is dispatch order.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// SetTick stamps subsequent events with the current tick.
func (b *Bus) SetTick(tick uint64) {
	if b == nil {
		return
	}
	b.tick = tick
}

// Publish dispatches an event to every subscriber. A panicking listener is
// logged and skipped; core state is never affected. Publishing on a nil
// bus is a no-op so leaf components can run without notifications.
func (b *Bus) Publish(t Type, member, detail string) {
	if b == nil {
		return
	}
	ev := Event{Tick: b.tick, Type: t, Member: member, Detail: detail}
	for _, h := range b.handlers {
		b.dispatch(h, ev)
	}
}

func (b *Bus) dispatch(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event listener panicked", "type", string(ev.Type), "panic", r)
		}
	}()
	h(ev)
}
