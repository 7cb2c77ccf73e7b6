package crafting

import (
	"github.com/summonerscompass/compass-go/internal/domain/inventory"
)

// Combination is the fully-decided outcome of a combine call: the crafted
// item plus the exact inventory changes that realize it. Changes always
// net out to one crafted unit for two consumed units.
type Combination struct {
	ResultItemID string
	Changes      []inventory.Change
}

// PlanCombination decides the outcome of combining two held items against
// a snapshot of the live inventory. It is pure: callers apply the returned
// changes atomically through the inventory repository, which re-checks the
// debit guards so a stale snapshot can only lose the race, never corrupt
// counts.
//
// Preconditions: both items held with count >= 1; if itemA == itemB the
// single stack must hold at least 2.
func PlanCombination(inv inventory.Inventory, book *RecipeBook, itemA, itemB string) (*Combination, error) {
	if itemA == itemB {
		if have := inv.Count(itemA); have < 2 {
			return nil, NewInsufficientQuantityError(itemA, 2, have)
		}
	} else {
		if have := inv.Count(itemA); have < 1 {
			return nil, NewInsufficientQuantityError(itemA, 1, have)
		}
		if have := inv.Count(itemB); have < 1 {
			return nil, NewInsufficientQuantityError(itemB, 1, have)
		}
	}

	result, ok := book.Result(itemA, itemB)
	if !ok {
		return nil, NewNoSuchRecipeError(itemA, itemB)
	}

	// Deltas per item id; merging handles self-combination and recipes
	// whose result is one of the inputs.
	deltas := map[string]int{}
	deltas[itemA]--
	deltas[itemB]--
	deltas[result]++

	changes := make([]inventory.Change, 0, 3)
	for _, id := range []string{itemA, itemB, result} {
		delta, pending := deltas[id]
		if !pending {
			continue
		}
		delete(deltas, id)
		if delta == 0 {
			continue
		}
		changes = append(changes, inventory.Change{ItemID: id, Delta: delta})
	}

	return &Combination{ResultItemID: result, Changes: changes}, nil
}
