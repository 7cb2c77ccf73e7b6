package collectibles

import (
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// PositionUpdate is one raw reading from the device
type PositionUpdate struct {
	Position shared.Coordinate
	Bearing  float64
}

// PositionSource produces a stream of raw position readings. The session
// applies its own teleport offset on top of the raw values. Close cancels
// the subscription and closes the channel.
type PositionSource interface {
	Updates() <-chan PositionUpdate
	Close() error
}
