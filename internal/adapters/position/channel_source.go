package position

import (
	"sync"

	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// ChannelSource is a channel-backed PositionSource. Producers push fixes
// with Publish; the consuming session reads them from Updates. Close is
// idempotent and safe to race with Publish.
type ChannelSource struct {
	updates chan collectibles.PositionUpdate

	mu     sync.Mutex
	closed bool
}

// NewChannelSource creates a channel source with a small buffer so a
// slow consumer doesn't immediately block the producer
func NewChannelSource() *ChannelSource {
	return &ChannelSource{
		updates: make(chan collectibles.PositionUpdate, 16),
	}
}

// Publish pushes one position fix. Returns false if the source is closed
// or the buffer is full (the fix is dropped; position streams are lossy
// by nature and a newer fix follows).
func (s *ChannelSource) Publish(coordinate shared.Coordinate, bearing float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.updates <- collectibles.PositionUpdate{Position: coordinate, Bearing: bearing}:
		return true
	default:
		return false
	}
}

// Updates returns the stream of position fixes
func (s *ChannelSource) Updates() <-chan collectibles.PositionUpdate {
	return s.updates
}

// Close tears down the subscription; the Updates channel is closed
func (s *ChannelSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.updates)
	return nil
}

var _ collectibles.PositionSource = (*ChannelSource)(nil)
