package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/test/helpers"
)

func registerPlayer(t *testing.T, repo *persistence.GormPlayerRepository, id, name, email string) *player.Player {
	t.Helper()
	p, err := player.NewPlayer(shared.MustNewPlayerID(id), name, email)
	require.NoError(t, err)
	require.NoError(t, repo.Register(context.Background(), p))
	return p
}

func TestPlayerRepository_RegisterAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, repo, "player-1", "Alice", "alice@example.com")

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), shared.MustNewPlayerID("player-1"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, 0, found.Power)

	// Act - FindByEmail
	found, err = repo.FindByEmail(context.Background(), "alice@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "player-1", found.ID.Value())
}

func TestPlayerRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), shared.MustNewPlayerID("nobody"))

	// Assert
	assert.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Contains(t, err.Error(), "player not found")
}

func TestPlayerRepository_RegisterDuplicateEmail(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, repo, "player-1", "Alice", "alice@example.com")

	// Act
	duplicate, err := player.NewPlayer(shared.MustNewPlayerID("player-2"), "Imposter", "alice@example.com")
	require.NoError(t, err)
	err = repo.Register(context.Background(), duplicate)

	// Assert
	assert.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestPlayerRepository_AddPower(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, repo, "player-1", "Alice", "alice@example.com")
	playerID := shared.MustNewPlayerID("player-1")

	// Act
	total, err := repo.AddPower(context.Background(), playerID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	total, err = repo.AddPower(context.Background(), playerID, 8)

	// Assert - power accumulates and the stored value matches
	require.NoError(t, err)
	assert.Equal(t, 20, total)
	found, err := repo.FindByID(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, 20, found.Power)
}

func TestPlayerRepository_AddPowerUnknownPlayer(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	// Act
	_, err := repo.AddPower(context.Background(), shared.MustNewPlayerID("nobody"), 5)

	// Assert
	assert.True(t, shared.IsNotFound(err))
}

func TestPlayerRepository_GlossaryIsIdempotentAndSorted(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, repo, "player-1", "Alice", "alice@example.com")
	playerID := shared.MustNewPlayerID("player-1")

	// Act
	added, err := repo.AddGlossaryName(context.Background(), playerID, "Garen")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddGlossaryName(context.Background(), playerID, "Ahri")
	require.NoError(t, err)
	assert.True(t, added)

	// A repeat discovery is silently ignored
	added, err = repo.AddGlossaryName(context.Background(), playerID, "Garen")
	require.NoError(t, err)
	assert.False(t, added)

	names, err := repo.Glossary(context.Background(), playerID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Ahri", "Garen"}, names)
}

func TestPlayerRepository_GlossaryIsPerPlayer(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	registerPlayer(t, repo, "alice", "Alice", "alice@example.com")
	registerPlayer(t, repo, "bob", "Bob", "bob@example.com")

	// Act - the same name is a fresh discovery for each player
	addedAlice, err := repo.AddGlossaryName(context.Background(), shared.MustNewPlayerID("alice"), "Garen")
	require.NoError(t, err)
	addedBob, err := repo.AddGlossaryName(context.Background(), shared.MustNewPlayerID("bob"), "Garen")
	require.NoError(t, err)

	// Assert
	assert.True(t, addedAlice)
	assert.True(t, addedBob)
}
