package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/inventory"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// GormInventoryRepository implements inventory.Repository using GORM.
//
// Apply realizes the store's atomic multi-key update: every change runs
// inside one transaction and debits are guarded with conditional updates
// (`count >= n`), so concurrent combines/trades on the same inventory
// serialize per row and a lost race rolls the whole batch back.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Get returns a snapshot of the player's holdings
func (r *GormInventoryRepository) Get(ctx context.Context, playerID shared.PlayerID) (inventory.Inventory, error) {
	var models []InventoryItemModel
	result := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).Find(&models)
	if result.Error != nil {
		return nil, shared.NewTransientError("failed to read inventory", result.Error)
	}

	inv := make(inventory.Inventory, len(models))
	for _, model := range models {
		if model.Count < 1 {
			// A zero row would violate the stack invariant; skip it
			// rather than surface a phantom item.
			continue
		}
		inv[model.ItemID] = model.Count
	}
	return inv, nil
}

// Add credits qty units of an item, creating the stack if absent
func (r *GormInventoryRepository) Add(ctx context.Context, playerID shared.PlayerID, itemID string, qty int) error {
	if qty < 1 {
		return shared.NewValidationError("qty", "must be at least 1")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return creditItem(tx, playerID.Value(), itemID, qty)
	})
	if err != nil {
		return shared.NewTransientError("failed to add item", err)
	}
	return nil
}

// Apply atomically applies all changes to one inventory
func (r *GormInventoryRepository) Apply(ctx context.Context, playerID shared.PlayerID, changes []inventory.Change) error {
	if len(changes) == 0 {
		return nil
	}

	var domainErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			switch {
			case change.Delta < 0:
				if err := debitItem(tx, playerID.Value(), change.ItemID, -change.Delta); err != nil {
					domainErr = err
					return err
				}
			case change.Delta > 0:
				if err := creditItem(tx, playerID.Value(), change.ItemID, change.Delta); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if domainErr != nil {
			return domainErr
		}
		return shared.NewTransientError("failed to apply inventory changes", err)
	}
	return nil
}

// creditItem increments a stack, creating it when absent
func creditItem(tx *gorm.DB, playerID, itemID string, qty int) error {
	result := tx.Model(&InventoryItemModel{}).
		Where("player_id = ? AND item_id = ?", playerID, itemID).
		Update("count", gorm.Expr("count + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tx.Create(&InventoryItemModel{
			PlayerID: playerID,
			ItemID:   itemID,
			Count:    qty,
		}).Error
	}
	return nil
}

// debitItem decrements a stack with a live-count guard, removing the row
// when it reaches zero
func debitItem(tx *gorm.DB, playerID, itemID string, qty int) error {
	result := tx.Model(&InventoryItemModel{}).
		Where("player_id = ? AND item_id = ? AND count >= ?", playerID, itemID, qty).
		Update("count", gorm.Expr("count - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Guard failed: report the live count for a precise error.
		var model InventoryItemModel
		available := 0
		err := tx.Where("player_id = ? AND item_id = ?", playerID, itemID).First(&model).Error
		if err == nil {
			available = model.Count
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return crafting.NewInsufficientQuantityError(itemID, qty, available)
	}

	// Stacks are removed, never zeroed.
	return tx.Where("player_id = ? AND item_id = ? AND count <= 0", playerID, itemID).
		Delete(&InventoryItemModel{}).Error
}

var _ inventory.Repository = (*GormInventoryRepository)(nil)
