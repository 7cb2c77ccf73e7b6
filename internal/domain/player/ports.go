package player

import (
	"context"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Repository defines player persistence operations
type Repository interface {
	// FindByID returns the player or shared.NotFoundError
	FindByID(ctx context.Context, id shared.PlayerID) (*Player, error)

	// FindByEmail returns the player or shared.NotFoundError
	FindByEmail(ctx context.Context, email string) (*Player, error)

	// Register persists a new player with zero power and empty sets
	Register(ctx context.Context, p *Player) error

	// AddPower atomically credits delta to the player's power counter
	// (read-modify-write on the stored value) and returns the new total
	AddPower(ctx context.Context, id shared.PlayerID, delta int) (int, error)

	// Glossary returns the player's discovered names
	Glossary(ctx context.Context, id shared.PlayerID) ([]string, error)

	// AddGlossaryName records a discovery if the name is not already
	// present. Returns true when the name was newly added; duplicate
	// discoveries are silently ignored.
	AddGlossaryName(ctx context.Context, id shared.PlayerID, name string) (bool, error)
}
