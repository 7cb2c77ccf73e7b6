package trading

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// AcceptTradeCommand transitions a pending offer to an active trade.
// The offer deletion and both mirror writes land as one atomic update;
// of two concurrent accept/reject calls exactly one succeeds and the
// loser observes OfferNotFoundError.
type AcceptTradeCommand struct {
	CounterpartyID string
	ProposerID     string
}

// AcceptTradeResponse echoes the accepted exchange
type AcceptTradeResponse struct {
	OfferedItemID   string
	RequestedItemID string
}

// AcceptTradeHandler drives the Proposed -> Accepted transition
type AcceptTradeHandler struct {
	tradeRepo trading.Repository
}

// NewAcceptTradeHandler creates a new accept trade handler
func NewAcceptTradeHandler(tradeRepo trading.Repository) *AcceptTradeHandler {
	return &AcceptTradeHandler{tradeRepo: tradeRepo}
}

// Handle executes the accept trade command
func (h *AcceptTradeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AcceptTradeCommand)
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

	offer, err := h.tradeRepo.Accept(ctx, counterpartyID, proposerID)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "trade accepted", map[string]interface{}{
		"counterparty_id": cmd.CounterpartyID,
		"proposer_id":     cmd.ProposerID,
	})

	return &AcceptTradeResponse{
		OfferedItemID:   offer.OfferedItemID,
		RequestedItemID: offer.RequestedItemID,
	}, nil
}
