package trading

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// RejectTradeCommand discards a pending offer. No inventory effect.
type RejectTradeCommand struct {
	CounterpartyID string
	ProposerID     string
}

// RejectTradeResponse is empty; success means the offer is gone
type RejectTradeResponse struct{}

// RejectTradeHandler drives the Proposed -> Rejected transition
type RejectTradeHandler struct {
	tradeRepo trading.Repository
}

// NewRejectTradeHandler creates a new reject trade handler
func NewRejectTradeHandler(tradeRepo trading.Repository) *RejectTradeHandler {
	return &RejectTradeHandler{tradeRepo: tradeRepo}
}

// Handle executes the reject trade command
func (h *RejectTradeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RejectTradeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	counterpartyID, err := shared.NewPlayerID(cmd.CounterpartyID)
	if err != nil {
		return nil, err
	}
	proposerID, err := shared.NewPlayerID(cmd.ProposerID)
	if err != nil {
		return nil, err
	}

	if err := h.tradeRepo.Reject(ctx, counterpartyID, proposerID); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "trade rejected", map[string]interface{}{
		"counterparty_id": cmd.CounterpartyID,
		"proposer_id":     cmd.ProposerID,
	})

	return &RejectTradeResponse{}, nil
}
