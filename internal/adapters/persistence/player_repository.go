package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// GormPlayerRepository implements player.Repository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID returns the player or shared.NotFoundError
func (r *GormPlayerRepository) FindByID(ctx context.Context, id shared.PlayerID) (*player.Player, error) {
	var model PlayerModel
	err := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", id.Value())
		}
		return nil, shared.NewTransientError("failed to read player", err)
	}
	return modelToPlayer(&model), nil
}

// FindByEmail returns the player or shared.NotFoundError
func (r *GormPlayerRepository) FindByEmail(ctx context.Context, email string) (*player.Player, error) {
	var model PlayerModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", email)
		}
		return nil, shared.NewTransientError("failed to read player", err)
	}
	return modelToPlayer(&model), nil
}

// Register persists a new player with zero power and empty sets
func (r *GormPlayerRepository) Register(ctx context.Context, p *player.Player) error {
	model := PlayerModel{
		ID:    p.ID.Value(),
		Name:  p.Name,
		Email: p.Email,
		Power: p.Power,
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("email already registered: " + p.Email)
		}
		return shared.NewTransientError("failed to register player", err)
	}
	return nil
}

// AddPower atomically credits delta and returns the new total
func (r *GormPlayerRepository) AddPower(ctx context.Context, id shared.PlayerID, delta int) (int, error) {
	var total int
	var domainErr error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PlayerModel{}).
			Where("id = ?", id.Value()).
			Update("power", gorm.Expr("power + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			domainErr = shared.NewNotFoundError("player", id.Value())
			return domainErr
		}

		var model PlayerModel
		if err := tx.Where("id = ?", id.Value()).First(&model).Error; err != nil {
			return err
		}
		total = model.Power
		return nil
	})
	if err != nil {
		if domainErr != nil {
			return 0, domainErr
		}
		return 0, shared.NewTransientError("failed to add power", err)
	}
	return total, nil
}

// Glossary returns the player's discovered names
func (r *GormPlayerRepository) Glossary(ctx context.Context, id shared.PlayerID) ([]string, error) {
	var models []GlossaryEntryModel
	err := r.db.WithContext(ctx).
		Where("player_id = ?", id.Value()).
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, shared.NewTransientError("failed to read glossary", err)
	}

	names := make([]string, 0, len(models))
	for _, model := range models {
		names = append(names, model.Name)
	}
	return names, nil
}

// AddGlossaryName records a discovery, returning false for duplicates.
// The (player, name) unique index decides races between concurrent
// discoveries of the same name.
func (r *GormPlayerRepository) AddGlossaryName(ctx context.Context, id shared.PlayerID, name string) (bool, error) {
	if name == "" {
		return false, shared.NewValidationError("name", "cannot be empty")
	}

	var existing GlossaryEntryModel
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND name = ?", id.Value(), name).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, shared.NewTransientError("failed to read glossary", err)
	}

	entry := GlossaryEntryModel{
		ID:       uuid.NewString(),
		PlayerID: id.Value(),
		Name:     name,
	}
	err = r.db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, shared.NewTransientError("failed to add glossary entry", err)
	}
	return true, nil
}

func modelToPlayer(model *PlayerModel) *player.Player {
	return &player.Player{
		ID:    shared.MustNewPlayerID(model.ID),
		Name:  model.Name,
		Email: model.Email,
		Power: model.Power,
	}
}

var _ player.Repository = (*GormPlayerRepository)(nil)
