package trading

import (
	"context"
	"fmt"
	"strings"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/social"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// ProposeTradeCommand opens (or supersedes) a trade offer towards a
// counterparty resolved by email. Inventories are not touched and
// ownership of the offered item is not validated here; validation happens
// at accept time against the proposer's live inventory.
type ProposeTradeCommand struct {
	ProposerID        string
	CounterpartyEmail string
	OfferedItemID     string
	RequestedItemID   string
	Lat               float64
	Lng               float64
	Date              string
	Time              string
}

// ProposeTradeResponse identifies the counterparty the offer now awaits
type ProposeTradeResponse struct {
	CounterpartyID string
}

// ProposeTradeHandler resolves the counterparty and writes the offer
type ProposeTradeHandler struct {
	tradeRepo trading.Repository
	directory social.Directory
}

// NewProposeTradeHandler creates a new propose trade handler
func NewProposeTradeHandler(tradeRepo trading.Repository, directory social.Directory) *ProposeTradeHandler {
	return &ProposeTradeHandler{tradeRepo: tradeRepo, directory: directory}
}

// Handle executes the propose trade command
func (h *ProposeTradeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProposeTradeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	proposerID, err := shared.NewPlayerID(cmd.ProposerID)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(cmd.CounterpartyEmail)
	if email == "" {
		return nil, shared.NewValidationError("counterparty_email", "cannot be empty")
	}

	counterpartyID, err := h.directory.FindIDByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, trading.NewUnknownCounterpartyError(email)
		}
		return nil, fmt.Errorf("failed to resolve counterparty: %w", err)
	}

	location, err := shared.NewCoordinate(cmd.Lat, cmd.Lng)
	if err != nil {
		return nil, err
	}

	offer, err := trading.NewTradeOffer(proposerID, counterpartyID,
		cmd.OfferedItemID, cmd.RequestedItemID,
		trading.MeetingPoint{Location: location, Date: cmd.Date, Time: cmd.Time})
	if err != nil {
		return nil, err
	}

	// Overwrite semantics: a re-proposal for the same pair replaces the
	// prior pending offer.
	if err := h.tradeRepo.PutOffer(ctx, offer); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "trade proposed", map[string]interface{}{
		"proposer_id":     cmd.ProposerID,
		"counterparty_id": counterpartyID.Value(),
		"offered_item":    cmd.OfferedItemID,
		"requested_item":  cmd.RequestedItemID,
	})

	return &ProposeTradeResponse{CounterpartyID: counterpartyID.Value()}, nil
}
