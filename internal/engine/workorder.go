package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/Kieren92/ColonySim/internal/events"
)

// WorkOrder is a higher-level production task: reach a target quantity of
// an action's output. Completion releases every assignment.
type WorkOrder struct {
	ID       int
	Action   string // ActionDefinition name
	Target   int
	Progress int
	Priority int
	Deadline uint64 // tick; 0 = none

	Assignees map[uuid.UUID]struct{}
	Completed bool
	Expired   bool
}

// OrderBook owns the settlement's open work orders.
type OrderBook struct {
	bus    *events.Bus
	nextID int
	orders []*WorkOrder
}

// NewOrderBook returns an empty book.
func NewOrderBook(bus *events.Bus) *OrderBook {
	return &OrderBook{bus: bus, nextID: 1}
}

// Create opens an order and returns it.
func (ob *OrderBook) Create(action string, target, priority int, deadline uint64) *WorkOrder {
	o := &WorkOrder{
		ID:        ob.nextID,
		Action:    action,
		Target:    target,
		Priority:  priority,
		Deadline:  deadline,
		Assignees: make(map[uuid.UUID]struct{}),
	}
	ob.nextID++
	ob.orders = append(ob.orders, o)
	// Highest priority first; stable on ID for determinism.
	sort.SliceStable(ob.orders, func(i, j int) bool {
		if ob.orders[i].Priority != ob.orders[j].Priority {
			return ob.orders[i].Priority > ob.orders[j].Priority
		}
		return ob.orders[i].ID < ob.orders[j].ID
	})
	return o
}

// Open returns the live orders, highest priority first.
func (ob *OrderBook) Open() []*WorkOrder {
	var out []*WorkOrder
	for _, o := range ob.orders {
		if !o.Completed && !o.Expired {
			out = append(out, o)
		}
	}
	return out
}

// Assign attaches a member to an order.
func (ob *OrderBook) Assign(o *WorkOrder, member uuid.UUID) {
	if o.Completed || o.Expired {
		return
	}
	o.Assignees[member] = struct{}{}
}

// AddProgress credits produced units against the highest-priority open
// order for the action. Overflow rolls into the next matching order.
func (ob *OrderBook) AddProgress(action string, units int) {
	for _, o := range ob.Open() {
		if o.Action != action || units <= 0 {
			continue
		}
		o.Progress += units
		units = 0
		if o.Progress >= o.Target {
			units = o.Progress - o.Target
			o.Progress = o.Target
			ob.complete(o)
		}
	}
}

// Expire releases orders whose deadline has passed.
func (ob *OrderBook) Expire(tick uint64) {
	for _, o := range ob.orders {
		if o.Completed || o.Expired || o.Deadline == 0 || tick < o.Deadline {
			continue
		}
		o.Expired = true
		o.Assignees = make(map[uuid.UUID]struct{})
	}
}

func (ob *OrderBook) complete(o *WorkOrder) {
	o.Completed = true
	o.Assignees = make(map[uuid.UUID]struct{})
	ob.bus.Publish(events.OrderCompleted, "",
		fmt.Sprintf("order %d: %d %s", o.ID, o.Target, o.Action))
}
