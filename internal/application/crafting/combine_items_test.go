package crafting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	appcrafting "github.com/summonerscompass/compass-go/internal/application/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/test/helpers"
)

func newCombineHandler(t *testing.T) (*appcrafting.CombineItemsHandler, *persistence.GormInventoryRepository) {
	t.Helper()
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db)
	return appcrafting.NewCombineItemsHandler(repo, crafting.DefaultRecipeBook()), repo
}

func TestCombineItemsHandler_CraftsResult(t *testing.T) {
	// Arrange
	handler, repo := newCombineHandler(t)
	playerID := shared.MustNewPlayerID("player-1")
	require.NoError(t, repo.Add(context.Background(), playerID, crafting.LargeRod, 1))
	require.NoError(t, repo.Add(context.Background(), playerID, crafting.GiantsBelt, 1))

	// Act
	response, err := handler.Handle(context.Background(), &appcrafting.CombineItemsCommand{
		PlayerID: "player-1",
		ItemA:    crafting.LargeRod,
		ItemB:    crafting.GiantsBelt,
	})

	// Assert
	require.NoError(t, err)
	result := response.(*appcrafting.CombineItemsResponse)
	assert.Equal(t, crafting.RylaisScepter, result.ResultItemID)

	inv, err := repo.Get(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Count(crafting.LargeRod))
	assert.Equal(t, 0, inv.Count(crafting.GiantsBelt))
	assert.Equal(t, 1, inv.Count(crafting.RylaisScepter))
}

func TestCombineItemsHandler_NoRecipeLeavesInventoryUntouched(t *testing.T) {
	// Arrange
	handler, repo := newCombineHandler(t)
	playerID := shared.MustNewPlayerID("player-1")
	require.NoError(t, repo.Add(context.Background(), playerID, crafting.BFSword, 1))
	require.NoError(t, repo.Add(context.Background(), playerID, "9999", 1))

	// Act
	_, err := handler.Handle(context.Background(), &appcrafting.CombineItemsCommand{
		PlayerID: "player-1",
		ItemA:    crafting.BFSword,
		ItemB:    "9999",
	})

	// Assert
	var noRecipeErr *crafting.NoSuchRecipeError
	require.ErrorAs(t, err, &noRecipeErr)

	inv, getErr := repo.Get(context.Background(), playerID)
	require.NoError(t, getErr)
	assert.Equal(t, 1, inv.Count(crafting.BFSword))
	assert.Equal(t, 1, inv.Count("9999"))
}

func TestCombineItemsHandler_InsufficientQuantity(t *testing.T) {
	// Arrange - a self-combination needs two units of the single stack
	handler, repo := newCombineHandler(t)
	playerID := shared.MustNewPlayerID("player-1")
	require.NoError(t, repo.Add(context.Background(), playerID, crafting.BFSword, 1))

	// Act
	_, err := handler.Handle(context.Background(), &appcrafting.CombineItemsCommand{
		PlayerID: "player-1",
		ItemA:    crafting.BFSword,
		ItemB:    crafting.BFSword,
	})

	// Assert
	var insufficientErr *crafting.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 2, insufficientErr.Required)
	assert.Equal(t, 1, insufficientErr.Available)
}

func TestCombineItemsHandler_RejectsEmptyItemIDs(t *testing.T) {
	// Arrange
	handler, _ := newCombineHandler(t)

	// Act
	_, err := handler.Handle(context.Background(), &appcrafting.CombineItemsCommand{
		PlayerID: "player-1",
		ItemA:    "",
		ItemB:    crafting.BFSword,
	})

	// Assert
	assert.Error(t, err)
}
