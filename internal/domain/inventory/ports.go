package inventory

import (
	"context"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Repository defines inventory persistence operations.
//
// Apply is the atomic multi-key update the crafting and trading state
// machines rely on: either every change lands or none does, and debits
// are re-checked against the live counts inside the same transaction so
// no concurrent operation can observe (or cause) a partially-applied
// batch.
type Repository interface {
	// Get returns a snapshot of the player's holdings
	Get(ctx context.Context, playerID shared.PlayerID) (Inventory, error)

	// Add credits qty units of an item, creating the stack if absent
	Add(ctx context.Context, playerID shared.PlayerID, itemID string, qty int) error

	// Apply atomically applies all changes to one inventory. A debit that
	// would drive a count negative aborts the whole batch with an
	// InsufficientQuantityError; transient store failures surface as
	// shared.TransientError.
	Apply(ctx context.Context, playerID shared.PlayerID, changes []Change) error
}
