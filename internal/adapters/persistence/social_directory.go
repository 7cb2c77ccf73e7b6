package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/social"
)

// GormSocialDirectory implements social.Directory using GORM. Friendship
// edges are stored twice, once per direction, and always written or
// removed in pairs inside a transaction.
type GormSocialDirectory struct {
	db *gorm.DB
}

// NewGormSocialDirectory creates a new GORM social directory
func NewGormSocialDirectory(db *gorm.DB) *GormSocialDirectory {
	return &GormSocialDirectory{db: db}
}

// FindIDByEmail resolves an email to a player id
func (d *GormSocialDirectory) FindIDByEmail(ctx context.Context, email string) (shared.PlayerID, error) {
	var model PlayerModel
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.PlayerID{}, shared.NewNotFoundError("player", email)
		}
		return shared.PlayerID{}, shared.NewTransientError("failed to resolve email", err)
	}
	return shared.MustNewPlayerID(model.ID), nil
}

// FriendsOf returns the player's friend ids
func (d *GormSocialDirectory) FriendsOf(ctx context.Context, id shared.PlayerID) ([]shared.PlayerID, error) {
	var models []FriendModel
	err := d.db.WithContext(ctx).Where("player_id = ?", id.Value()).Find(&models).Error
	if err != nil {
		return nil, shared.NewTransientError("failed to list friends", err)
	}

	ids := make([]shared.PlayerID, 0, len(models))
	for _, model := range models {
		ids = append(ids, shared.MustNewPlayerID(model.FriendID))
	}
	return ids, nil
}

// PendingRequestsOf returns the sender ids of requests addressed to the player
func (d *GormSocialDirectory) PendingRequestsOf(ctx context.Context, id shared.PlayerID) ([]shared.PlayerID, error) {
	var models []FriendRequestModel
	err := d.db.WithContext(ctx).Where("recipient_id = ?", id.Value()).Find(&models).Error
	if err != nil {
		return nil, shared.NewTransientError("failed to list friend requests", err)
	}

	ids := make([]shared.PlayerID, 0, len(models))
	for _, model := range models {
		ids = append(ids, shared.MustNewPlayerID(model.SenderID))
	}
	return ids, nil
}

// SendFriendRequest records a request towards the player with the given
// email. Sending to an existing friend or re-sending is a no-op.
func (d *GormSocialDirectory) SendFriendRequest(ctx context.Context, senderID shared.PlayerID, recipientEmail string) error {
	recipientID, err := d.FindIDByEmail(ctx, recipientEmail)
	if err != nil {
		return err
	}
	if recipientID.Equals(senderID) {
		return shared.NewValidationError("recipient_email", "cannot befriend yourself")
	}

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge FriendModel
		err := tx.Where("player_id = ? AND friend_id = ?", senderID.Value(), recipientID.Value()).
			First(&edge).Error
		if err == nil {
			// Already friends.
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		request := FriendRequestModel{
			RecipientID: recipientID.Value(),
			SenderID:    senderID.Value(),
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return shared.NewTransientError("failed to send friend request", err)
	}
	return nil
}

// AcceptFriendRequest atomically deletes the request and writes the
// friendship edge on both sides
func (d *GormSocialDirectory) AcceptFriendRequest(ctx context.Context, recipientID, senderID shared.PlayerID) error {
	var domainErr error

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("recipient_id = ? AND sender_id = ?", recipientID.Value(), senderID.Value()).
			Delete(&FriendRequestModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			domainErr = shared.NewNotFoundError("friend request", senderID.Value())
			return domainErr
		}

		if err := tx.Save(&FriendModel{PlayerID: recipientID.Value(), FriendID: senderID.Value()}).Error; err != nil {
			return err
		}
		return tx.Save(&FriendModel{PlayerID: senderID.Value(), FriendID: recipientID.Value()}).Error
	})
	if err != nil {
		if domainErr != nil {
			return domainErr
		}
		return shared.NewTransientError("failed to accept friend request", err)
	}
	return nil
}

// RejectFriendRequest deletes the pending request
func (d *GormSocialDirectory) RejectFriendRequest(ctx context.Context, recipientID, senderID shared.PlayerID) error {
	result := d.db.WithContext(ctx).
		Where("recipient_id = ? AND sender_id = ?", recipientID.Value(), senderID.Value()).
		Delete(&FriendRequestModel{})
	if result.Error != nil {
		return shared.NewTransientError("failed to reject friend request", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("friend request", senderID.Value())
	}
	return nil
}

// RemoveFriend atomically deletes the friendship edge on both sides
func (d *GormSocialDirectory) RemoveFriend(ctx context.Context, playerID, friendID shared.PlayerID) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ? AND friend_id = ?", playerID.Value(), friendID.Value()).
			Delete(&FriendModel{}).Error; err != nil {
			return err
		}
		return tx.Where("player_id = ? AND friend_id = ?", friendID.Value(), playerID.Value()).
			Delete(&FriendModel{}).Error
	})
	if err != nil {
		return shared.NewTransientError("failed to remove friend", err)
	}
	return nil
}

var _ social.Directory = (*GormSocialDirectory)(nil)
