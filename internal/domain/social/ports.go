package social

import (
	"context"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Directory resolves player identities and maintains the friends/requests
// relation. The trade manager consumes it to resolve counterparties by
// email.
type Directory interface {
	// FindIDByEmail resolves an email to a player id, or
	// shared.NotFoundError
	FindIDByEmail(ctx context.Context, email string) (shared.PlayerID, error)

	// FriendsOf returns the player's friend ids
	FriendsOf(ctx context.Context, id shared.PlayerID) ([]shared.PlayerID, error)

	// PendingRequestsOf returns the sender ids of friend requests
	// addressed to the player
	PendingRequestsOf(ctx context.Context, id shared.PlayerID) ([]shared.PlayerID, error)

	// SendFriendRequest records a request from sender to the player with
	// the given email. Sending to an existing friend is a no-op.
	SendFriendRequest(ctx context.Context, senderID shared.PlayerID, recipientEmail string) error

	// AcceptFriendRequest atomically deletes the pending request and
	// writes the friendship edge on both sides
	AcceptFriendRequest(ctx context.Context, recipientID, senderID shared.PlayerID) error

	// RejectFriendRequest deletes the pending request without creating a
	// friendship
	RejectFriendRequest(ctx context.Context, recipientID, senderID shared.PlayerID) error

	// RemoveFriend atomically deletes the friendship edge on both sides
	RemoveFriend(ctx context.Context, playerID, friendID shared.PlayerID) error
}
