package trading

import (
	"context"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Repository defines trade negotiation persistence.
//
// Accept and Confirm are the two multi-key transitions of the state
// machine; implementations must apply each as a single atomic update so
// that concurrent callers race on the conditional delete of the
// underlying record and exactly one wins.
type Repository interface {
	// PutOffer writes a pending offer, overwriting any prior offer for
	// the same (counterparty, proposer) pair
	PutOffer(ctx context.Context, offer *TradeOffer) error

	// GetOffer returns the pending offer for the pair, or
	// OfferNotFoundError
	GetOffer(ctx context.Context, counterpartyID, proposerID shared.PlayerID) (*TradeOffer, error)

	// ListOffersFor returns all pending offers addressed to the player
	ListOffersFor(ctx context.Context, counterpartyID shared.PlayerID) ([]*TradeOffer, error)

	// Accept atomically deletes the pending offer, re-validates that the
	// proposer still holds the offered item, and writes both ActiveTrade
	// mirrors. Returns OfferNotFoundError if a concurrent accept/reject
	// already resolved the offer, and shared.ConflictError if the
	// proposer's holdings no longer cover the offer.
	Accept(ctx context.Context, counterpartyID, proposerID shared.PlayerID) (*TradeOffer, error)

	// Reject atomically deletes the pending offer. Returns
	// OfferNotFoundError if it was already resolved.
	Reject(ctx context.Context, counterpartyID, proposerID shared.PlayerID) error

	// Confirm atomically deletes both mirrors of the active trade between
	// playerID and otherID. When swapItems is set it also moves the two
	// items between the inventories inside the same transaction, with the
	// debits guarded against the live counts. Returns TradeNotFoundError
	// if either mirror is missing.
	Confirm(ctx context.Context, playerID, otherID shared.PlayerID, swapItems bool) error

	// ListActiveTrades returns the player's views of all accepted,
	// not-yet-confirmed trades
	ListActiveTrades(ctx context.Context, playerID shared.PlayerID) ([]*ActiveTrade, error)
}
