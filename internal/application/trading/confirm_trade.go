package trading

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// ConfirmTradeCommand completes an accepted trade by removing both
// participants' mirrors together.
//
// By default confirm only clears the negotiation bookkeeping — the item
// exchange is settled physically at the meeting point. With SwapItems
// enabled the two items are also moved between the inventories inside the
// same transaction, with holdings re-validated at that moment.
type ConfirmTradeCommand struct {
	PlayerID string
	OtherID  string
}

// ConfirmTradeResponse is empty; success means both mirrors are gone
type ConfirmTradeResponse struct{}

// ConfirmTradeHandler drives the Accepted -> Completed transition
type ConfirmTradeHandler struct {
	tradeRepo trading.Repository
	swapItems bool
}

// NewConfirmTradeHandler creates a new confirm trade handler.
// swapItems selects the stricter settlement policy (see config
// trading.swap_on_confirm).
func NewConfirmTradeHandler(tradeRepo trading.Repository, swapItems bool) *ConfirmTradeHandler {
	return &ConfirmTradeHandler{tradeRepo: tradeRepo, swapItems: swapItems}
}

// Handle executes the confirm trade command
func (h *ConfirmTradeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ConfirmTradeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	otherID, err := shared.NewPlayerID(cmd.OtherID)
	if err != nil {
		return nil, err
	}

	if err := h.tradeRepo.Confirm(ctx, playerID, otherID, h.swapItems); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "trade confirmed", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"other_id":  cmd.OtherID,
		"swapped":   h.swapItems,
	})

	return &ConfirmTradeResponse{}, nil
}
