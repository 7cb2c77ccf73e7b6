package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/social"
)

// SendFriendRequestCommand records a friend request towards the player
// with the given email. Requesting an existing friend is a no-op.
type SendFriendRequestCommand struct {
	SenderID       string
	RecipientEmail string
}

// AcceptFriendRequestCommand accepts a pending request: the request row
// disappears and the friendship edge appears on both sides together
type AcceptFriendRequestCommand struct {
	RecipientID string
	SenderEmail string
}

// RejectFriendRequestCommand discards a pending request
type RejectFriendRequestCommand struct {
	RecipientID string
	SenderEmail string
}

// RemoveFriendCommand deletes the friendship edge on both sides
type RemoveFriendCommand struct {
	PlayerID    string
	FriendEmail string
}

// ListFriendsQuery returns the player's friends and pending requests,
// enriched with name/email/power for display
type ListFriendsQuery struct {
	PlayerID string
}

// FriendView is one enriched directory row
type FriendView struct {
	PlayerID string
	Name     string
	Email    string
	Power    int
}

// ListFriendsResponse contains the enriched relations
type ListFriendsResponse struct {
	Friends  []FriendView
	Requests []FriendView
}

// FriendsHandler serves the friend lifecycle commands and queries
type FriendsHandler struct {
	directory  social.Directory
	playerRepo player.Repository
}

// NewFriendsHandler creates a new friends handler
func NewFriendsHandler(directory social.Directory, playerRepo player.Repository) *FriendsHandler {
	return &FriendsHandler{directory: directory, playerRepo: playerRepo}
}

// Handle dispatches the friend lifecycle requests
func (h *FriendsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	switch cmd := request.(type) {
	case *SendFriendRequestCommand:
		return h.send(ctx, cmd)
	case *AcceptFriendRequestCommand:
		return h.accept(ctx, cmd)
	case *RejectFriendRequestCommand:
		return h.reject(ctx, cmd)
	case *RemoveFriendCommand:
		return h.remove(ctx, cmd)
	case *ListFriendsQuery:
		return h.list(ctx, cmd)
	default:
		return nil, fmt.Errorf("invalid request type")
	}
}

func (h *FriendsHandler) send(ctx context.Context, cmd *SendFriendRequestCommand) (common.Response, error) {
	senderID, err := shared.NewPlayerID(cmd.SenderID)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(cmd.RecipientEmail)
	if email == "" {
		return nil, shared.NewValidationError("recipient_email", "cannot be empty")
	}
	if err := h.directory.SendFriendRequest(ctx, senderID, email); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (h *FriendsHandler) accept(ctx context.Context, cmd *AcceptFriendRequestCommand) (common.Response, error) {
	recipientID, err := shared.NewPlayerID(cmd.RecipientID)
	if err != nil {
		return nil, err
	}
	senderID, err := h.directory.FindIDByEmail(ctx, cmd.SenderEmail)
	if err != nil {
		return nil, err
	}
	if err := h.directory.AcceptFriendRequest(ctx, recipientID, senderID); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (h *FriendsHandler) reject(ctx context.Context, cmd *RejectFriendRequestCommand) (common.Response, error) {
	recipientID, err := shared.NewPlayerID(cmd.RecipientID)
	if err != nil {
		return nil, err
	}
	senderID, err := h.directory.FindIDByEmail(ctx, cmd.SenderEmail)
	if err != nil {
		return nil, err
	}
	if err := h.directory.RejectFriendRequest(ctx, recipientID, senderID); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (h *FriendsHandler) remove(ctx context.Context, cmd *RemoveFriendCommand) (common.Response, error) {
	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	friendID, err := h.directory.FindIDByEmail(ctx, cmd.FriendEmail)
	if err != nil {
		return nil, err
	}
	if err := h.directory.RemoveFriend(ctx, playerID, friendID); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (h *FriendsHandler) list(ctx context.Context, query *ListFriendsQuery) (common.Response, error) {
	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, err
	}

	friendIDs, err := h.directory.FriendsOf(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	requestIDs, err := h.directory.PendingRequestsOf(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	return &ListFriendsResponse{
		Friends:  h.enrich(ctx, logger, friendIDs),
		Requests: h.enrich(ctx, logger, requestIDs),
	}, nil
}

// enrich resolves ids to profiles, skipping records that fail to load
func (h *FriendsHandler) enrich(ctx context.Context, logger common.Logger, ids []shared.PlayerID) []FriendView {
	views := make([]FriendView, 0, len(ids))
	for _, id := range ids {
		p, err := h.playerRepo.FindByID(ctx, id)
		if err != nil {
			logger.Log("warn", "player lookup failed, skipping", map[string]interface{}{
				"player_id": id.Value(),
			})
			continue
		}
		views = append(views, FriendView{
			PlayerID: p.ID.Value(),
			Name:     p.Name,
			Email:    p.Email,
			Power:    p.Power,
		})
	}
	return views
}
