package trading

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/catalog"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// ListTradeRequestsQuery returns the pending offers addressed to a player,
// enriched for display. Enrichment is a read-side concern: a record whose
// catalog entry or counterparty lookup fails is skipped and logged, never
// aborts the whole listing.
type ListTradeRequestsQuery struct {
	PlayerID string
}

// ListActiveTradesQuery returns the player's accepted, unconfirmed trades,
// enriched the same way
type ListActiveTradesQuery struct {
	PlayerID string
}

// TradeView is one enriched trade row: the items by id and name plus the
// counterparty identity and the agreed meeting point
type TradeView struct {
	OtherID      string
	OtherName    string
	OtherEmail   string
	SendItemID   string
	SendItemName string
	GetItemID    string
	GetItemName  string
	Lat          float64
	Lng          float64
	Date         string
	Time         string
}

// ListTradesResponse contains enriched trade rows
type ListTradesResponse struct {
	Trades []TradeView
}

// ListTradesHandler serves both trade listing queries
type ListTradesHandler struct {
	tradeRepo     trading.Repository
	playerRepo    player.Repository
	catalogClient catalog.Client
}

// NewListTradesHandler creates a new list trades handler
func NewListTradesHandler(tradeRepo trading.Repository, playerRepo player.Repository, catalogClient catalog.Client) *ListTradesHandler {
	return &ListTradesHandler{
		tradeRepo:     tradeRepo,
		playerRepo:    playerRepo,
		catalogClient: catalogClient,
	}
}

// Handle executes a trade listing query
func (h *ListTradesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	switch query := request.(type) {
	case *ListTradeRequestsQuery:
		return h.listRequests(ctx, query.PlayerID)
	case *ListActiveTradesQuery:
		return h.listActive(ctx, query.PlayerID)
	default:
		return nil, fmt.Errorf("invalid request type")
	}
}

func (h *ListTradesHandler) listRequests(ctx context.Context, rawID string) (common.Response, error) {
	playerID, err := shared.NewPlayerID(rawID)
	if err != nil {
		return nil, err
	}

	offers, err := h.tradeRepo.ListOffersFor(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	items, err := h.catalogClient.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	views := make([]TradeView, 0, len(offers))
	for _, offer := range offers {
		// From the counterparty's perspective a pending offer reads
		// inverted: they would send the requested item and get the
		// offered one.
		view, ok := h.enrich(ctx, logger, items, offer.ProposerID,
			offer.RequestedItemID, offer.OfferedItemID, offer.Meeting)
		if !ok {
			continue
		}
		views = append(views, view)
	}

	return &ListTradesResponse{Trades: views}, nil
}

func (h *ListTradesHandler) listActive(ctx context.Context, rawID string) (common.Response, error) {
	playerID, err := shared.NewPlayerID(rawID)
	if err != nil {
		return nil, err
	}

	trades, err := h.tradeRepo.ListActiveTrades(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active trades: %w", err)
	}

	items, err := h.catalogClient.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	views := make([]TradeView, 0, len(trades))
	for _, trade := range trades {
		view, ok := h.enrich(ctx, logger, items, trade.OtherID,
			trade.SendItemID, trade.GetItemID, trade.Meeting)
		if !ok {
			continue
		}
		views = append(views, view)
	}

	return &ListTradesResponse{Trades: views}, nil
}

func (h *ListTradesHandler) enrich(
	ctx context.Context,
	logger common.Logger,
	items map[string]catalog.ItemDescriptor,
	otherID shared.PlayerID,
	sendItemID, getItemID string,
	meeting trading.MeetingPoint,
) (TradeView, bool) {
	other, err := h.playerRepo.FindByID(ctx, otherID)
	if err != nil {
		logger.Log("warn", "trade counterparty lookup failed, skipping", map[string]interface{}{
			"other_id": otherID.Value(),
		})
		return TradeView{}, false
	}

	sendItem, sendOK := items[sendItemID]
	getItem, getOK := items[getItemID]
	if !sendOK || !getOK {
		logger.Log("warn", "trade item missing from catalog, skipping", map[string]interface{}{
			"send_item": sendItemID,
			"get_item":  getItemID,
		})
		return TradeView{}, false
	}

	return TradeView{
		OtherID:      otherID.Value(),
		OtherName:    other.Name,
		OtherEmail:   other.Email,
		SendItemID:   sendItemID,
		SendItemName: sendItem.Name,
		GetItemID:    getItemID,
		GetItemName:  getItem.Name,
		Lat:          meeting.Location.Lat,
		Lng:          meeting.Location.Lng,
		Date:         meeting.Date,
		Time:         meeting.Time,
	}, true
}
