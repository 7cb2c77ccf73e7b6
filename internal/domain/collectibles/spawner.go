package collectibles

import (
	"math/rand"

	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// SpawnPolicy holds the tunables of the spawn generator. The jitter box
// and power range mirror the game's fixed configuration.
type SpawnPolicy struct {
	CountPerKind int     // collectibles of each kind per spawn wave
	JitterDeg    float64 // uniform +/- degrees of lat/lng around the player
	MinPoolPower int     // inclusive
	MaxPoolPower int     // exclusive
}

// DefaultSpawnPolicy returns the standard spawn tunables
func DefaultSpawnPolicy() SpawnPolicy {
	return SpawnPolicy{
		CountPerKind: 5,
		JitterDeg:    0.01,
		MinPoolPower: 5,
		MaxPoolPower: 20,
	}
}

// ChampionPick is one catalog entry chosen for a sprite
type ChampionPick struct {
	Name     string
	ImageRef string
}

// Spawner generates collectible waves around a position. Each wave fully
// replaces the previous set of its kind; nothing persists across waves.
type Spawner struct {
	policy SpawnPolicy
	rng    *rand.Rand
}

// NewSpawner creates a spawner; rng may be seeded for deterministic tests
func NewSpawner(policy SpawnPolicy, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Spawner{policy: policy, rng: rng}
}

// SpawnEnergyPools generates one wave of energy pools around center
func (s *Spawner) SpawnEnergyPools(center shared.Coordinate) []EnergyPool {
	pools := make([]EnergyPool, 0, s.policy.CountPerKind)
	for i := 0; i < s.policy.CountPerKind; i++ {
		power := s.policy.MinPoolPower + s.rng.Intn(s.policy.MaxPoolPower-s.policy.MinPoolPower)
		pools = append(pools, NewEnergyPool(s.jitter(center), power))
	}
	return pools
}

// SpawnSprites generates one wave of sprites around center, one per
// champion pick
func (s *Spawner) SpawnSprites(center shared.Coordinate, picks []ChampionPick) []Sprite {
	sprites := make([]Sprite, 0, len(picks))
	for _, pick := range picks {
		sprites = append(sprites, NewSprite(s.jitter(center), pick.Name, pick.ImageRef))
	}
	return sprites
}

func (s *Spawner) jitter(center shared.Coordinate) shared.Coordinate {
	d := s.policy.JitterDeg
	return shared.Coordinate{
		Lat: center.Lat + (s.rng.Float64()*2-1)*d,
		Lng: center.Lng + (s.rng.Float64()*2-1)*d,
	}
}
