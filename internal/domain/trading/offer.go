package trading

import (
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// OfferState tracks where a single offer instance sits in its lifecycle:
// None -> Proposed -> {Accepted -> Completed} | Rejected. Rejected and
// Completed are absorbing for that instance; a later re-proposal is a new
// instance.
type OfferState string

const (
	StateNone      OfferState = "NONE"
	StateProposed  OfferState = "PROPOSED"
	StateAccepted  OfferState = "ACCEPTED"
	StateRejected  OfferState = "REJECTED"
	StateCompleted OfferState = "COMPLETED"
)

// MeetingPoint is where and when the two players agreed to meet to settle
// the exchange physically.
type MeetingPoint struct {
	Location shared.Coordinate
	Date     string
	Time     string
}

// TradeOffer is a proposed exchange awaiting the counterparty's decision.
// It is keyed by (counterparty, proposer); re-proposing for the same pair
// overwrites the prior offer (last write wins).
type TradeOffer struct {
	ProposerID      shared.PlayerID
	CounterpartyID  shared.PlayerID
	OfferedItemID   string // item the proposer will hand over
	RequestedItemID string // item the proposer wants back
	Meeting         MeetingPoint
}

// NewTradeOffer creates a trade offer with validation
func NewTradeOffer(proposerID, counterpartyID shared.PlayerID, offeredItemID, requestedItemID string, meeting MeetingPoint) (*TradeOffer, error) {
	if proposerID.IsZero() {
		return nil, shared.NewValidationError("proposer_id", "cannot be empty")
	}
	if counterpartyID.IsZero() {
		return nil, shared.NewValidationError("counterparty_id", "cannot be empty")
	}
	if proposerID.Equals(counterpartyID) {
		return nil, shared.NewValidationError("counterparty_id", "cannot trade with yourself")
	}
	if offeredItemID == "" {
		return nil, shared.NewValidationError("offered_item_id", "cannot be empty")
	}
	if requestedItemID == "" {
		return nil, shared.NewValidationError("requested_item_id", "cannot be empty")
	}
	return &TradeOffer{
		ProposerID:      proposerID,
		CounterpartyID:  counterpartyID,
		OfferedItemID:   offeredItemID,
		RequestedItemID: requestedItemID,
		Meeting:         meeting,
	}, nil
}

// ActiveTrade is one participant's view of a mutually accepted,
// not-yet-confirmed exchange. The two views of a trade are inverses:
// one side's Send is the other side's Get.
type ActiveTrade struct {
	OwnerID    shared.PlayerID
	OtherID    shared.PlayerID
	SendItemID string
	GetItemID  string
	Meeting    MeetingPoint
}

// Mirrors materializes the two ActiveTrade views of an accepted offer.
// The proposer sends what they offered; the counterparty sends what the
// proposer requested.
func (o *TradeOffer) Mirrors() (proposerView, counterpartyView ActiveTrade) {
	proposerView = ActiveTrade{
		OwnerID:    o.ProposerID,
		OtherID:    o.CounterpartyID,
		SendItemID: o.OfferedItemID,
		GetItemID:  o.RequestedItemID,
		Meeting:    o.Meeting,
	}
	counterpartyView = ActiveTrade{
		OwnerID:    o.CounterpartyID,
		OtherID:    o.ProposerID,
		SendItemID: o.RequestedItemID,
		GetItemID:  o.OfferedItemID,
		Meeting:    o.Meeting,
	}
	return proposerView, counterpartyView
}

// IsInverseOf checks whether two views describe the same trade from
// opposite sides
func (t ActiveTrade) IsInverseOf(other ActiveTrade) bool {
	return t.OwnerID.Equals(other.OtherID) &&
		t.OtherID.Equals(other.OwnerID) &&
		t.SendItemID == other.GetItemID &&
		t.GetItemID == other.SendItemID
}
