package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

func TestNewCoordinate_Valid(t *testing.T) {
	// Act
	c, err := shared.NewCoordinate(40.4168, -3.7038)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 40.4168, c.Lat)
	assert.Equal(t, -3.7038, c.Lng)
}

func TestNewCoordinate_OutOfRange(t *testing.T) {
	// Act
	_, errLat := shared.NewCoordinate(91, 0)
	_, errLng := shared.NewCoordinate(0, -181)

	// Assert
	assert.Error(t, errLat)
	assert.Error(t, errLng)
}

func TestCoordinate_DistanceTo_Haversine(t *testing.T) {
	// Arrange - one degree of longitude at the equator is ~111.19 km
	origin := shared.Coordinate{Lat: 0, Lng: 0}
	oneDegreeEast := shared.Coordinate{Lat: 0, Lng: 1}

	// Act
	distance := origin.DistanceTo(oneDegreeEast)

	// Assert
	assert.InDelta(t, 111195, distance, 50)
}

func TestCoordinate_DistanceTo_SelfIsZero(t *testing.T) {
	// Arrange
	c := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}

	// Act & Assert
	assert.Equal(t, 0.0, c.DistanceTo(c))
}

func TestCoordinate_DistanceTo_Symmetric(t *testing.T) {
	// Arrange
	madrid := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}
	paris := shared.Coordinate{Lat: 48.8566, Lng: 2.3522}

	// Act & Assert
	assert.InDelta(t, madrid.DistanceTo(paris), paris.DistanceTo(madrid), 1e-6)
}

func TestOffset_PinsReadingsToTarget(t *testing.T) {
	// Arrange - teleporting pins the player: the offset between the target
	// and the last real fix is applied to every later raw reading
	lastReal := shared.Coordinate{Lat: 40.0, Lng: -3.0}
	target := shared.Coordinate{Lat: 48.8566, Lng: 2.3522}
	offset := shared.OffsetBetween(target, lastReal)

	// Act
	pinned := offset.Apply(lastReal)
	walked := offset.Apply(shared.Coordinate{Lat: 40.001, Lng: -3.0})

	// Assert - the current position maps onto the target and later
	// readings move relative to it
	assert.InDelta(t, target.Lat, pinned.Lat, 1e-9)
	assert.InDelta(t, target.Lng, pinned.Lng, 1e-9)
	assert.InDelta(t, target.Lat+0.001, walked.Lat, 1e-9)
}

func TestOffset_ZeroIsIdentity(t *testing.T) {
	// Arrange
	var offset shared.Offset
	c := shared.Coordinate{Lat: 1.5, Lng: 2.5}

	// Act & Assert
	assert.True(t, offset.IsZero())
	assert.Equal(t, c, offset.Apply(c))
}
