package crafting

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/inventory"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// CombineItemsCommand merges two held items into their crafted result.
//
// Business rules enforced:
//   - Both items must be held with count >= 1 in the live inventory
//     (count >= 2 when combining an item with itself)
//   - A missing recipe fails with NoSuchRecipeError and leaves the
//     inventory untouched
//   - The two debits and one credit land as a single atomic update
type CombineItemsCommand struct {
	PlayerID string
	ItemA    string
	ItemB    string
}

// CombineItemsResponse contains the crafted item id
type CombineItemsResponse struct {
	ResultItemID string
}

// CombineItemsHandler orchestrates the combination engine
type CombineItemsHandler struct {
	inventoryRepo inventory.Repository
	book          *crafting.RecipeBook
}

// NewCombineItemsHandler creates a new combine items handler
func NewCombineItemsHandler(inventoryRepo inventory.Repository, book *crafting.RecipeBook) *CombineItemsHandler {
	return &CombineItemsHandler{inventoryRepo: inventoryRepo, book: book}
}

// Handle executes the combine items command
func (h *CombineItemsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CombineItemsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	if cmd.ItemA == "" || cmd.ItemB == "" {
		return nil, shared.NewValidationError("item_id", "cannot be empty")
	}

	// Preconditions are checked against the live inventory, not
	// caller-supplied counts.
	inv, err := h.inventoryRepo.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	plan, err := crafting.PlanCombination(inv, h.book, cmd.ItemA, cmd.ItemB)
	if err != nil {
		return nil, err
	}

	// The repository re-checks the debit guards inside one transaction,
	// so a concurrent combine/trade on the same inventory can make this
	// lose the race but never leave a partial result.
	if err := h.inventoryRepo.Apply(ctx, playerID, plan.Changes); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "items combined", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"item_a":    cmd.ItemA,
		"item_b":    cmd.ItemB,
		"result":    plan.ResultItemID,
	})

	return &CombineItemsResponse{ResultItemID: plan.ResultItemID}, nil
}
