package helpers

import (
	"fmt"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SharedTestDB is the singleton database instance used across all integration tests
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database
// Called once in TestMain before running any tests
func InitializeSharedTestDB() error {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	// Auto-migrate ALL models used across integration tests
	err = db.AutoMigrate(
		// Player models
		&persistence.PlayerModel{},
		&persistence.GlossaryEntryModel{},

		// Inventory models
		&persistence.InventoryItemModel{},

		// Trading models
		&persistence.TradeOfferModel{},
		&persistence.ActiveTradeModel{},

		// Social models
		&persistence.FriendModel{},
		&persistence.FriendRequestModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data from all tables
// Called before each scenario to ensure test isolation
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	tables := []string{
		"active_trades",
		"trade_offers",
		"friend_requests",
		"friends",
		"glossary_entries",
		"inventory_items",
		"players",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			// Ignore "no such table" errors for optional tables
			continue
		}
	}

	return nil
}

// CloseSharedTestDB closes the shared database connection
// Called in TestMain after all tests complete
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}

	sqlDB, err := SharedTestDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
