// Package items implements stackable item storage, loss-free transfer,
// condition decay and the commune's ownership rules.
package items

import (
	"github.com/Kieren92/ColonySim/internal/config"
)

// Stack is a quantity of one item type with a shared condition.
type Stack struct {
	Def       config.ItemDefinition
	Quantity  int
	Condition float64 // 0–100
}

// Inventory is an ordered collection of stacks with optional slot capacity.
// A zero SlotCapacity means unbounded.
type Inventory struct {
	Stacks       []*Stack
	SlotCapacity int
}

// NewInventory creates an inventory with the given slot capacity
// (0 = unlimited).
func NewInventory(slots int) *Inventory {
	return &Inventory{SlotCapacity: slots}
}

// Count returns the total quantity held of a named item.
func (inv *Inventory) Count(name string) int {
	total := 0
	for _, s := range inv.Stacks {
		if s.Def.Name == name {
			total += s.Quantity
		}
	}
	return total
}

// Add stores up to qty units, filling existing compatible stacks first and
// then opening new stacks while slot capacity allows. Returns the quantity
// actually added.
func (inv *Inventory) Add(def config.ItemDefinition, qty int) int {
	if qty <= 0 {
		return 0
	}
	remaining := qty

	if def.Stackable {
		for _, s := range inv.Stacks {
			if remaining == 0 {
				break
			}
			if s.Def.Name != def.Name {
				continue
			}
			space := def.MaxStackSize - s.Quantity
			if space <= 0 {
				continue
			}
			take := min(space, remaining)
			s.Quantity += take
			remaining -= take
		}
	}

	for remaining > 0 {
		if inv.SlotCapacity > 0 && len(inv.Stacks) >= inv.SlotCapacity {
			break
		}
		size := remaining
		if def.Stackable && def.MaxStackSize > 0 && size > def.MaxStackSize {
			size = def.MaxStackSize
		}
		if !def.Stackable {
			size = 1
		}
		inv.Stacks = append(inv.Stacks, &Stack{Def: def, Quantity: size, Condition: 100})
		remaining -= size
	}

	return qty - remaining
}

// Remove takes up to qty units of a named item, draining stacks in
// reverse insertion order and deleting emptied stacks. Returns the
// quantity actually removed; removing more than present is not an error.
func (inv *Inventory) Remove(name string, qty int) int {
	if qty <= 0 {
		return 0
	}
	remaining := qty
	for i := len(inv.Stacks) - 1; i >= 0 && remaining > 0; i-- {
		s := inv.Stacks[i]
		if s.Def.Name != name {
			continue
		}
		take := min(s.Quantity, remaining)
		s.Quantity -= take
		remaining -= take
		if s.Quantity == 0 {
			inv.Stacks = append(inv.Stacks[:i], inv.Stacks[i+1:]...)
		}
	}
	return qty - remaining
}

// TransferTo moves up to qty units into target. Whatever the target cannot
// accept is restored to the source, so no items are ever lost. Returns the
// quantity that ended up in the target.
func (inv *Inventory) TransferTo(target *Inventory, def config.ItemDefinition, qty int) int {
	removed := inv.Remove(def.Name, qty)
	if removed == 0 {
		return 0
	}
	accepted := target.Add(def, removed)
	if leftover := removed - accepted; leftover > 0 {
		inv.Add(def, leftover)
	}
	return accepted
}

// UpdateItems applies proportional condition decay over dt seconds and
// purges stacks whose condition reaches zero.
func (inv *Inventory) UpdateItems(dt float64) {
	for i := len(inv.Stacks) - 1; i >= 0; i-- {
		s := inv.Stacks[i]
		if s.Def.DecayRatePerHour <= 0 {
			continue
		}
		s.Condition -= s.Def.DecayRatePerHour * dt / 3600
		if s.Condition <= 0 {
			inv.Stacks = append(inv.Stacks[:i], inv.Stacks[i+1:]...)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
