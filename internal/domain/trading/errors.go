package trading

import (
	"fmt"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// OfferNotFoundError signals the pending offer no longer exists: it was
// already accepted, rejected or superseded. Safe to treat as "already
// handled" and retry-friendly.
type OfferNotFoundError struct {
	CounterpartyID shared.PlayerID
	ProposerID     shared.PlayerID
}

func (e *OfferNotFoundError) Error() string {
	return fmt.Sprintf("no pending offer from %s to %s", e.ProposerID, e.CounterpartyID)
}

func NewOfferNotFoundError(counterpartyID, proposerID shared.PlayerID) *OfferNotFoundError {
	return &OfferNotFoundError{CounterpartyID: counterpartyID, ProposerID: proposerID}
}

// TradeNotFoundError signals no active trade exists between the two players
type TradeNotFoundError struct {
	PlayerID shared.PlayerID
	OtherID  shared.PlayerID
}

func (e *TradeNotFoundError) Error() string {
	return fmt.Sprintf("no active trade between %s and %s", e.PlayerID, e.OtherID)
}

func NewTradeNotFoundError(playerID, otherID shared.PlayerID) *TradeNotFoundError {
	return &TradeNotFoundError{PlayerID: playerID, OtherID: otherID}
}

// UnknownCounterpartyError signals the counterparty email resolved to no
// registered player
type UnknownCounterpartyError struct {
	Email string
}

func (e *UnknownCounterpartyError) Error() string {
	return fmt.Sprintf("unknown counterparty: %s", e.Email)
}

func NewUnknownCounterpartyError(email string) *UnknownCounterpartyError {
	return &UnknownCounterpartyError{Email: email}
}
