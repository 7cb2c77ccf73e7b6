package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/test/helpers"
)

func newDirectoryWithPlayers(t *testing.T) *persistence.GormSocialDirectory {
	t.Helper()
	db := helpers.NewTestDB(t)
	playerRepo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, playerRepo, "alice", "Alice", "alice@example.com")
	registerPlayer(t, playerRepo, "bob", "Bob", "bob@example.com")
	return persistence.NewGormSocialDirectory(db)
}

func TestSocialDirectory_FindIDByEmail(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)

	// Act
	id, err := directory.FindIDByEmail(context.Background(), "bob@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Value())

	_, err = directory.FindIDByEmail(context.Background(), "nobody@example.com")
	assert.True(t, shared.IsNotFound(err))
}

func TestSocialDirectory_RequestAndAccept(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)
	aliceID := shared.MustNewPlayerID("alice")
	bobID := shared.MustNewPlayerID("bob")

	// Act - alice requests, bob sees it pending, bob accepts
	err := directory.SendFriendRequest(context.Background(), aliceID, "bob@example.com")
	require.NoError(t, err)

	pending, err := directory.PendingRequestsOf(context.Background(), bobID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].Value())

	err = directory.AcceptFriendRequest(context.Background(), bobID, aliceID)
	require.NoError(t, err)

	// Assert - the request is gone and the edge exists on both sides
	pending, err = directory.PendingRequestsOf(context.Background(), bobID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	bobFriends, err := directory.FriendsOf(context.Background(), bobID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "alice", bobFriends[0].Value())

	aliceFriends, err := directory.FriendsOf(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].Value())
}

func TestSocialDirectory_AcceptWithoutRequest(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)

	// Act
	err := directory.AcceptFriendRequest(context.Background(),
		shared.MustNewPlayerID("bob"), shared.MustNewPlayerID("alice"))

	// Assert
	assert.True(t, shared.IsNotFound(err))
}

func TestSocialDirectory_Reject(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)
	aliceID := shared.MustNewPlayerID("alice")
	bobID := shared.MustNewPlayerID("bob")
	require.NoError(t, directory.SendFriendRequest(context.Background(), aliceID, "bob@example.com"))

	// Act
	err := directory.RejectFriendRequest(context.Background(), bobID, aliceID)

	// Assert - the request is gone and no friendship was formed
	require.NoError(t, err)
	pending, err := directory.PendingRequestsOf(context.Background(), bobID)
	require.NoError(t, err)
	assert.Empty(t, pending)
	friends, err := directory.FriendsOf(context.Background(), bobID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestSocialDirectory_SelfRequestRejected(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)

	// Act
	err := directory.SendFriendRequest(context.Background(),
		shared.MustNewPlayerID("alice"), "alice@example.com")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot befriend yourself")
}

func TestSocialDirectory_RequestToExistingFriendIsNoop(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)
	aliceID := shared.MustNewPlayerID("alice")
	bobID := shared.MustNewPlayerID("bob")
	require.NoError(t, directory.SendFriendRequest(context.Background(), aliceID, "bob@example.com"))
	require.NoError(t, directory.AcceptFriendRequest(context.Background(), bobID, aliceID))

	// Act
	err := directory.SendFriendRequest(context.Background(), aliceID, "bob@example.com")

	// Assert - no new pending request appears
	require.NoError(t, err)
	pending, err := directory.PendingRequestsOf(context.Background(), bobID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSocialDirectory_RemoveFriendDeletesBothEdges(t *testing.T) {
	// Arrange
	directory := newDirectoryWithPlayers(t)
	aliceID := shared.MustNewPlayerID("alice")
	bobID := shared.MustNewPlayerID("bob")
	require.NoError(t, directory.SendFriendRequest(context.Background(), aliceID, "bob@example.com"))
	require.NoError(t, directory.AcceptFriendRequest(context.Background(), bobID, aliceID))

	// Act
	err := directory.RemoveFriend(context.Background(), aliceID, bobID)

	// Assert
	require.NoError(t, err)
	aliceFriends, err := directory.FriendsOf(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
	bobFriends, err := directory.FriendsOf(context.Background(), bobID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)
}
