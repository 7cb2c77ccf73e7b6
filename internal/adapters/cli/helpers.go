package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/infrastructure/config"
	"github.com/summonerscompass/compass-go/internal/infrastructure/database"
)

// connect loads configuration and opens the database connection shared by
// every subcommand
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return cfg, db, nil
}

// requirePlayerID validates the global --player-id flag
func requirePlayerID() (string, error) {
	if playerID == "" {
		return "", fmt.Errorf("--player-id flag is required")
	}
	return playerID, nil
}
