package crafting

import "fmt"

// NoSuchRecipeError signals that no recipe exists for the given pair.
// The inventory is guaranteed untouched when this is returned.
type NoSuchRecipeError struct {
	ItemA string
	ItemB string
}

func (e *NoSuchRecipeError) Error() string {
	return fmt.Sprintf("no recipe for items %s and %s", e.ItemA, e.ItemB)
}

func NewNoSuchRecipeError(itemA, itemB string) *NoSuchRecipeError {
	return &NoSuchRecipeError{ItemA: itemA, ItemB: itemB}
}

// InsufficientQuantityError signals the player does not hold enough of an
// item for the requested combination
type InsufficientQuantityError struct {
	ItemID    string
	Required  int
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity of %s: need %d, have %d",
		e.ItemID, e.Required, e.Available)
}

func NewInsufficientQuantityError(itemID string, required, available int) *InsufficientQuantityError {
	return &InsufficientQuantityError{
		ItemID:    itemID,
		Required:  required,
		Available: available,
	}
}
