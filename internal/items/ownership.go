package items

import (
	"github.com/Kieren92/ColonySim/internal/config"
)

// CanMemberOwn applies the commune's ownership policy to an item type.
// Communal resources are personally forbidden while sharing is enforced;
// personal items are always allowed; tools need the explicit allow-flag;
// contraband is forbidden while contraband enforcement is active.
func CanMemberOwn(policy config.OwnershipPolicy, def config.ItemDefinition) bool {
	switch def.Category {
	case config.CategoryCommunal:
		return !policy.EnforceSharing
	case config.CategoryPersonal:
		return true
	case config.CategoryTool:
		return policy.AllowPersonalTools
	case config.CategoryContraband:
		return !policy.EnforceContraband
	default:
		return true
	}
}

// Confiscation records one enforcement seizure.
type Confiscation struct {
	Item     string
	Quantity int
}

// Enforce scans a personal inventory and moves every disallowed stack to
// the commune inventory. Returns what was seized; the caller applies the
// ideology penalty per seizure.
func Enforce(policy config.OwnershipPolicy, personal, commune *Inventory) []Confiscation {
	// Snapshot offending names in stack order: transfers mutate the stack
	// slice underfoot, and seizure order must be reproducible run to run.
	seen := map[string]bool{}
	var defs []config.ItemDefinition
	for _, s := range personal.Stacks {
		if !CanMemberOwn(policy, s.Def) && !seen[s.Def.Name] {
			seen[s.Def.Name] = true
			defs = append(defs, s.Def)
		}
	}

	var seized []Confiscation
	for _, def := range defs {
		qty := personal.Count(def.Name)
		moved := personal.TransferTo(commune, def, qty)
		if moved > 0 {
			seized = append(seized, Confiscation{Item: def.Name, Quantity: moved})
		}
	}
	return seized
}
