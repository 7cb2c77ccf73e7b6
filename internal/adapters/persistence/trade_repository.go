package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
)

// GormTradeRepository implements trading.Repository using GORM.
//
// Accept, Reject and Confirm run as transactions whose first step is a
// conditional delete of the offer (or mirror) rows. Two concurrent
// resolutions of the same offer therefore race on RowsAffected: exactly
// one sees 1 and proceeds, the other sees 0 and gets OfferNotFoundError.
type GormTradeRepository struct {
	db *gorm.DB
}

// NewGormTradeRepository creates a new GORM trade repository
func NewGormTradeRepository(db *gorm.DB) *GormTradeRepository {
	return &GormTradeRepository{db: db}
}

// PutOffer writes a pending offer, overwriting any prior one for the pair
func (r *GormTradeRepository) PutOffer(ctx context.Context, offer *trading.TradeOffer) error {
	model := offerToModel(offer)
	err := r.db.WithContext(ctx).Save(&model).Error
	if err != nil {
		return shared.NewTransientError("failed to store trade offer", err)
	}
	return nil
}

// GetOffer returns the pending offer for the pair
func (r *GormTradeRepository) GetOffer(ctx context.Context, counterpartyID, proposerID shared.PlayerID) (*trading.TradeOffer, error) {
	var model TradeOfferModel
	err := r.db.WithContext(ctx).
		Where("counterparty_id = ? AND proposer_id = ?", counterpartyID.Value(), proposerID.Value()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trading.NewOfferNotFoundError(counterpartyID, proposerID)
		}
		return nil, shared.NewTransientError("failed to read trade offer", err)
	}
	return modelToOffer(&model), nil
}

// ListOffersFor returns all pending offers addressed to the player
func (r *GormTradeRepository) ListOffersFor(ctx context.Context, counterpartyID shared.PlayerID) ([]*trading.TradeOffer, error) {
	var models []TradeOfferModel
	err := r.db.WithContext(ctx).
		Where("counterparty_id = ?", counterpartyID.Value()).
		Find(&models).Error
	if err != nil {
		return nil, shared.NewTransientError("failed to list trade offers", err)
	}

	offers := make([]*trading.TradeOffer, 0, len(models))
	for i := range models {
		offers = append(offers, modelToOffer(&models[i]))
	}
	return offers, nil
}

// Accept atomically resolves the pending offer into both active-trade
// mirrors, re-validating the proposer's holdings inside the transaction
func (r *GormTradeRepository) Accept(ctx context.Context, counterpartyID, proposerID shared.PlayerID) (*trading.TradeOffer, error) {
	var accepted *trading.TradeOffer
	var domainErr error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model TradeOfferModel
		err := tx.Where("counterparty_id = ? AND proposer_id = ?", counterpartyID.Value(), proposerID.Value()).
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				domainErr = trading.NewOfferNotFoundError(counterpartyID, proposerID)
				return domainErr
			}
			return err
		}

		// Conditional delete decides the accept/reject race.
		result := tx.Where("counterparty_id = ? AND proposer_id = ?", counterpartyID.Value(), proposerID.Value()).
			Delete(&TradeOfferModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			domainErr = trading.NewOfferNotFoundError(counterpartyID, proposerID)
			return domainErr
		}

		// The offer may have gone stale since it was proposed: the
		// proposer must still hold the item they promised.
		var stack InventoryItemModel
		err = tx.Where("player_id = ? AND item_id = ? AND count >= 1", proposerID.Value(), model.OfferedItemID).
			First(&stack).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				domainErr = shared.NewConflictError("proposer no longer holds the offered item")
				return domainErr
			}
			return err
		}

		offer := modelToOffer(&model)
		proposerView, counterpartyView := offer.Mirrors()
		if err := tx.Create(tradeToModel(proposerView)).Error; err != nil {
			return err
		}
		if err := tx.Create(tradeToModel(counterpartyView)).Error; err != nil {
			return err
		}

		accepted = offer
		return nil
	})
	if err != nil {
		if domainErr != nil {
			return nil, domainErr
		}
		return nil, shared.NewTransientError("failed to accept trade offer", err)
	}
	return accepted, nil
}

// Reject atomically deletes the pending offer
func (r *GormTradeRepository) Reject(ctx context.Context, counterpartyID, proposerID shared.PlayerID) error {
	result := r.db.WithContext(ctx).
		Where("counterparty_id = ? AND proposer_id = ?", counterpartyID.Value(), proposerID.Value()).
		Delete(&TradeOfferModel{})
	if result.Error != nil {
		return shared.NewTransientError("failed to reject trade offer", result.Error)
	}
	if result.RowsAffected == 0 {
		return trading.NewOfferNotFoundError(counterpartyID, proposerID)
	}
	return nil
}

// Confirm atomically deletes both mirrors of the active trade, optionally
// swapping the two items between the inventories in the same transaction
func (r *GormTradeRepository) Confirm(ctx context.Context, playerID, otherID shared.PlayerID, swapItems bool) error {
	var domainErr error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mine ActiveTradeModel
		err := tx.Where("owner_id = ? AND other_id = ?", playerID.Value(), otherID.Value()).
			First(&mine).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				domainErr = trading.NewTradeNotFoundError(playerID, otherID)
				return domainErr
			}
			return err
		}

		// Delete both mirrors; two concurrent confirms race here the
		// same way accept/reject race on the offer row.
		result := tx.Where("owner_id = ? AND other_id = ?", playerID.Value(), otherID.Value()).
			Delete(&ActiveTradeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			domainErr = trading.NewTradeNotFoundError(playerID, otherID)
			return domainErr
		}

		result = tx.Where("owner_id = ? AND other_id = ?", otherID.Value(), playerID.Value()).
			Delete(&ActiveTradeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			domainErr = trading.NewTradeNotFoundError(otherID, playerID)
			return domainErr
		}

		if !swapItems {
			return nil
		}

		// Move the two items with guarded debits; a lost guard rolls
		// the whole confirmation back.
		if err := debitItem(tx, playerID.Value(), mine.SendItemID, 1); err != nil {
			domainErr = err
			return err
		}
		if err := debitItem(tx, otherID.Value(), mine.GetItemID, 1); err != nil {
			domainErr = err
			return err
		}
		if err := creditItem(tx, otherID.Value(), mine.SendItemID, 1); err != nil {
			return err
		}
		return creditItem(tx, playerID.Value(), mine.GetItemID, 1)
	})
	if err != nil {
		if domainErr != nil {
			return domainErr
		}
		return shared.NewTransientError("failed to confirm trade", err)
	}
	return nil
}

// ListActiveTrades returns the player's views of accepted trades
func (r *GormTradeRepository) ListActiveTrades(ctx context.Context, playerID shared.PlayerID) ([]*trading.ActiveTrade, error) {
	var models []ActiveTradeModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", playerID.Value()).
		Find(&models).Error
	if err != nil {
		return nil, shared.NewTransientError("failed to list active trades", err)
	}

	trades := make([]*trading.ActiveTrade, 0, len(models))
	for i := range models {
		trades = append(trades, modelToTrade(&models[i]))
	}
	return trades, nil
}

func offerToModel(offer *trading.TradeOffer) TradeOfferModel {
	return TradeOfferModel{
		CounterpartyID:  offer.CounterpartyID.Value(),
		ProposerID:      offer.ProposerID.Value(),
		OfferedItemID:   offer.OfferedItemID,
		RequestedItemID: offer.RequestedItemID,
		Lat:             offer.Meeting.Location.Lat,
		Lng:             offer.Meeting.Location.Lng,
		MeetingDate:     offer.Meeting.Date,
		MeetingTime:     offer.Meeting.Time,
	}
}

func modelToOffer(model *TradeOfferModel) *trading.TradeOffer {
	return &trading.TradeOffer{
		ProposerID:      shared.MustNewPlayerID(model.ProposerID),
		CounterpartyID:  shared.MustNewPlayerID(model.CounterpartyID),
		OfferedItemID:   model.OfferedItemID,
		RequestedItemID: model.RequestedItemID,
		Meeting: trading.MeetingPoint{
			Location: shared.Coordinate{Lat: model.Lat, Lng: model.Lng},
			Date:     model.MeetingDate,
			Time:     model.MeetingTime,
		},
	}
}

func tradeToModel(trade trading.ActiveTrade) *ActiveTradeModel {
	return &ActiveTradeModel{
		OwnerID:     trade.OwnerID.Value(),
		OtherID:     trade.OtherID.Value(),
		SendItemID:  trade.SendItemID,
		GetItemID:   trade.GetItemID,
		Lat:         trade.Meeting.Location.Lat,
		Lng:         trade.Meeting.Location.Lng,
		MeetingDate: trade.Meeting.Date,
		MeetingTime: trade.Meeting.Time,
	}
}

func modelToTrade(model *ActiveTradeModel) *trading.ActiveTrade {
	return &trading.ActiveTrade{
		OwnerID:    shared.MustNewPlayerID(model.OwnerID),
		OtherID:    shared.MustNewPlayerID(model.OtherID),
		SendItemID: model.SendItemID,
		GetItemID:  model.GetItemID,
		Meeting: trading.MeetingPoint{
			Location: shared.Coordinate{Lat: model.Lat, Lng: model.Lng},
			Date:     model.MeetingDate,
			Time:     model.MeetingTime,
		},
	}
}

var _ trading.Repository = (*GormTradeRepository)(nil)
