package collectibles

import (
	"github.com/google/uuid"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// Kind discriminates the two collectible flavors
type Kind string

const (
	KindSprite     Kind = "SPRITE"
	KindEnergyPool Kind = "ENERGY_POOL"
)

// Sprite is an ephemeral map-anchored champion apparition. Consuming it
// adds the champion's name to the player's glossary, once ever.
type Sprite struct {
	ID       string
	Position shared.Coordinate
	Name     string
	ImageRef string
}

// NewSprite creates a sprite with a fresh identity
func NewSprite(position shared.Coordinate, name, imageRef string) Sprite {
	return Sprite{
		ID:       uuid.NewString(),
		Position: position,
		Name:     name,
		ImageRef: imageRef,
	}
}

// EnergyPool is an ephemeral map-anchored pool of power. Consuming it
// credits its value to the player's power counter, exactly once.
type EnergyPool struct {
	ID       string
	Position shared.Coordinate
	Power    int
}

// NewEnergyPool creates an energy pool with a fresh identity
func NewEnergyPool(position shared.Coordinate, power int) EnergyPool {
	return EnergyPool{
		ID:       uuid.NewString(),
		Position: position,
		Power:    power,
	}
}
