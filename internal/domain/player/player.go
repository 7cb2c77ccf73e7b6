package player

import (
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Player is a registered account's permanent state. Power and the
// glossary only ever grow; the inventory fluctuates through crafting,
// trading and collection.
type Player struct {
	ID    shared.PlayerID
	Name  string
	Email string
	Power int
}

// NewPlayer creates a player with validation
func NewPlayer(id shared.PlayerID, name, email string) (*Player, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if email == "" {
		return nil, shared.NewValidationError("email", "cannot be empty")
	}
	return &Player{ID: id, Name: name, Email: email}, nil
}
