package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/domain/inventory"
)

func TestNewItemStack_Validation(t *testing.T) {
	// Act
	stack, err := inventory.NewItemStack("1038", 3)
	_, errEmpty := inventory.NewItemStack("", 1)
	_, errZero := inventory.NewItemStack("1038", 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1038", stack.ItemID)
	assert.Equal(t, 3, stack.Count)
	assert.Error(t, errEmpty)
	assert.Error(t, errZero)
}

func TestInventory_CountAndHas(t *testing.T) {
	// Arrange
	inv := inventory.Inventory{"1038": 2}

	// Act & Assert
	assert.Equal(t, 2, inv.Count("1038"))
	assert.Equal(t, 0, inv.Count("1058"))
	assert.True(t, inv.Has("1038", 2))
	assert.False(t, inv.Has("1038", 3))
	assert.False(t, inv.Has("1058", 1))
}

func TestInventory_StacksAreSorted(t *testing.T) {
	// Arrange
	inv := inventory.Inventory{"1058": 1, "1011": 4, "1038": 2}

	// Act
	stacks := inv.Stacks()

	// Assert
	require.Len(t, stacks, 3)
	assert.Equal(t, "1011", stacks[0].ItemID)
	assert.Equal(t, "1038", stacks[1].ItemID)
	assert.Equal(t, "1058", stacks[2].ItemID)
}

func TestInventory_TotalUnits(t *testing.T) {
	// Arrange
	inv := inventory.Inventory{"1038": 2, "1058": 3}

	// Act & Assert
	assert.Equal(t, 5, inv.TotalUnits())
	assert.Equal(t, 0, inventory.Inventory{}.TotalUnits())
}
