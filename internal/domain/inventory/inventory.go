package inventory

import (
	"sort"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// ItemStack is one held item with its count. A stack present in an
// inventory always has Count >= 1; stacks are removed, never zeroed.
type ItemStack struct {
	ItemID string
	Count  int
}

// NewItemStack creates an item stack with validation
func NewItemStack(itemID string, count int) (ItemStack, error) {
	if itemID == "" {
		return ItemStack{}, shared.NewValidationError("item_id", "cannot be empty")
	}
	if count < 1 {
		return ItemStack{}, shared.NewValidationError("count", "must be at least 1")
	}
	return ItemStack{ItemID: itemID, Count: count}, nil
}

// Inventory is a point-in-time snapshot of one player's holdings,
// keyed by item id. It is a read model; mutations go through the
// repository so they stay atomic relative to concurrent operations.
type Inventory map[string]int

// Count returns the held count for an item (0 if absent)
func (inv Inventory) Count(itemID string) int {
	return inv[itemID]
}

// Has checks whether at least min units of an item are held
func (inv Inventory) Has(itemID string, min int) bool {
	return inv[itemID] >= min
}

// Stacks returns the holdings as a deterministic, sorted slice
func (inv Inventory) Stacks() []ItemStack {
	stacks := make([]ItemStack, 0, len(inv))
	for id, count := range inv {
		stacks = append(stacks, ItemStack{ItemID: id, Count: count})
	}
	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].ItemID < stacks[j].ItemID
	})
	return stacks
}

// TotalUnits returns the total number of units across all stacks
func (inv Inventory) TotalUnits() int {
	total := 0
	for _, count := range inv {
		total += count
	}
	return total
}

// Change is one adjustment to a single item stack. Negative deltas are
// debits and are guarded against the live count when applied; a stack
// reaching zero is removed from the store.
type Change struct {
	ItemID string
	Delta  int
}
