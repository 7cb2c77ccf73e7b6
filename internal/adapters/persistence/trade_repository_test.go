package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/domain/trading"
	"github.com/summonerscompass/compass-go/test/helpers"
)

var (
	alice = shared.MustNewPlayerID("alice")
	bob   = shared.MustNewPlayerID("bob")
)

func putOffer(t *testing.T, repo *persistence.GormTradeRepository, offered, requested string) *trading.TradeOffer {
	t.Helper()
	offer, err := trading.NewTradeOffer(alice, bob, offered, requested, trading.MeetingPoint{
		Location: shared.Coordinate{Lat: 40.4168, Lng: -3.7038},
		Date:     "2026-09-01",
		Time:     "18:30",
	})
	require.NoError(t, err)
	require.NoError(t, repo.PutOffer(context.Background(), offer))
	return offer
}

func giveItem(t *testing.T, db *gorm.DB, playerID shared.PlayerID, itemID string, count int) {
	t.Helper()
	repo := persistence.NewGormInventoryRepository(db)
	require.NoError(t, repo.Add(context.Background(), playerID, itemID, count))
}

func TestTradeRepository_PutAndGetOffer(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	putOffer(t, repo, "1038", "1058")

	// Act
	found, err := repo.GetOffer(context.Background(), bob, alice)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1038", found.OfferedItemID)
	assert.Equal(t, "1058", found.RequestedItemID)
	assert.Equal(t, "2026-09-01", found.Meeting.Date)
	assert.InDelta(t, 40.4168, found.Meeting.Location.Lat, 1e-9)
}

func TestTradeRepository_ReproposalOverwrites(t *testing.T) {
	// Arrange - at most one pending offer per (counterparty, proposer);
	// last write wins
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	putOffer(t, repo, "1038", "1058")
	putOffer(t, repo, "1011", "1058")

	// Act
	found, err := repo.GetOffer(context.Background(), bob, alice)
	offers, listErr := repo.ListOffersFor(context.Background(), bob)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1011", found.OfferedItemID)
	require.NoError(t, listErr)
	assert.Len(t, offers, 1)
}

func TestTradeRepository_GetOfferNotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)

	// Act
	_, err := repo.GetOffer(context.Background(), bob, alice)

	// Assert
	var notFound *trading.OfferNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTradeRepository_AcceptCreatesBothMirrors(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	giveItem(t, db, alice, "1038", 1)
	putOffer(t, repo, "1038", "1058")

	// Act
	offer, err := repo.Accept(context.Background(), bob, alice)

	// Assert - the offer row is gone and both views exist
	require.NoError(t, err)
	assert.Equal(t, "1038", offer.OfferedItemID)

	_, err = repo.GetOffer(context.Background(), bob, alice)
	var notFound *trading.OfferNotFoundError
	assert.ErrorAs(t, err, &notFound)

	aliceTrades, err := repo.ListActiveTrades(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, aliceTrades, 1)
	bobTrades, err := repo.ListActiveTrades(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, bobTrades, 1)

	assert.Equal(t, "1038", aliceTrades[0].SendItemID)
	assert.Equal(t, "1058", aliceTrades[0].GetItemID)
	assert.True(t, aliceTrades[0].IsInverseOf(*bobTrades[0]))
}

func TestTradeRepository_AcceptResolvedOfferLoses(t *testing.T) {
	// Arrange - a second resolution of the same offer finds nothing
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	giveItem(t, db, alice, "1038", 1)
	putOffer(t, repo, "1038", "1058")
	_, err := repo.Accept(context.Background(), bob, alice)
	require.NoError(t, err)

	// Act
	_, err = repo.Accept(context.Background(), bob, alice)

	// Assert
	var notFound *trading.OfferNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTradeRepository_AcceptStaleOfferConflicts(t *testing.T) {
	// Arrange - the proposer consumed the offered item after proposing
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	putOffer(t, repo, "1038", "1058")

	// Act
	_, err := repo.Accept(context.Background(), bob, alice)

	// Assert - accept fails and the offer survives untouched (the tx
	// rolled back), so the counterparty can still reject it
	assert.True(t, shared.IsConflict(err))
	_, getErr := repo.GetOffer(context.Background(), bob, alice)
	assert.NoError(t, getErr)
	trades, listErr := repo.ListActiveTrades(context.Background(), bob)
	require.NoError(t, listErr)
	assert.Empty(t, trades)
}

func TestTradeRepository_Reject(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	putOffer(t, repo, "1038", "1058")

	// Act
	err := repo.Reject(context.Background(), bob, alice)

	// Assert
	require.NoError(t, err)
	_, err = repo.GetOffer(context.Background(), bob, alice)
	var notFound *trading.OfferNotFoundError
	assert.ErrorAs(t, err, &notFound)

	// A second reject loses the race it already won
	err = repo.Reject(context.Background(), bob, alice)
	assert.ErrorAs(t, err, &notFound)
}

func TestTradeRepository_ConfirmClearsBothMirrors(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	giveItem(t, db, alice, "1038", 1)
	putOffer(t, repo, "1038", "1058")
	_, err := repo.Accept(context.Background(), bob, alice)
	require.NoError(t, err)

	// Act - either side may confirm; here the proposer does
	err = repo.Confirm(context.Background(), alice, bob, false)

	// Assert
	require.NoError(t, err)
	aliceTrades, err := repo.ListActiveTrades(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, aliceTrades)
	bobTrades, err := repo.ListActiveTrades(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, bobTrades)

	// The other side confirming afterwards finds nothing
	err = repo.Confirm(context.Background(), bob, alice, false)
	var notFound *trading.TradeNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTradeRepository_ConfirmWithoutSwapLeavesInventoriesAlone(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	giveItem(t, db, alice, "1038", 1)
	giveItem(t, db, bob, "1058", 1)
	putOffer(t, repo, "1038", "1058")
	_, err := repo.Accept(context.Background(), bob, alice)
	require.NoError(t, err)

	// Act
	err = repo.Confirm(context.Background(), bob, alice, false)

	// Assert - bookkeeping only; the exchange happens in person
	require.NoError(t, err)
	aliceInv, err := inventoryRepo.Get(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, aliceInv.Count("1038"))
	bobInv, err := inventoryRepo.Get(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, 1, bobInv.Count("1058"))
}

func TestTradeRepository_ConfirmWithSwapMovesItems(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	giveItem(t, db, alice, "1038", 1)
	giveItem(t, db, bob, "1058", 1)
	putOffer(t, repo, "1038", "1058")
	_, err := repo.Accept(context.Background(), bob, alice)
	require.NoError(t, err)

	// Act
	err = repo.Confirm(context.Background(), alice, bob, true)

	// Assert - the two items changed hands
	require.NoError(t, err)
	aliceInv, err := inventoryRepo.Get(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 0, aliceInv.Count("1038"))
	assert.Equal(t, 1, aliceInv.Count("1058"))
	bobInv, err := inventoryRepo.Get(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, 1, bobInv.Count("1038"))
	assert.Equal(t, 0, bobInv.Count("1058"))
}

func TestTradeRepository_ConfirmWithSwapRollsBackOnMissingItem(t *testing.T) {
	// Arrange - bob no longer holds the item he must send
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	giveItem(t, db, alice, "1038", 1)
	putOffer(t, repo, "1038", "1058")
	_, err := repo.Accept(context.Background(), bob, alice)
	require.NoError(t, err)

	// Act
	err = repo.Confirm(context.Background(), alice, bob, true)

	// Assert - the whole confirmation rolled back: mirrors still exist
	// and alice kept her item
	assert.Error(t, err)
	trades, listErr := repo.ListActiveTrades(context.Background(), alice)
	require.NoError(t, listErr)
	assert.Len(t, trades, 1)
	aliceInv, invErr := inventoryRepo.Get(context.Background(), alice)
	require.NoError(t, invErr)
	assert.Equal(t, 1, aliceInv.Count("1038"))
}

func TestTradeRepository_ConfirmWithoutActiveTrade(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTradeRepository(db)

	// Act
	err := repo.Confirm(context.Background(), alice, bob, false)

	// Assert
	var notFound *trading.TradeNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
