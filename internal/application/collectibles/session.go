package collectibles

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/catalog"
	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// SessionConfig holds the per-session tunables
type SessionConfig struct {
	SpawnInterval  time.Duration
	ConsumeRadiusM float64
	Policy         collectibles.SpawnPolicy
}

// DefaultSessionConfig returns the standard session tunables: a wave of
// each kind every 5 minutes, consumed within 50 meters.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SpawnInterval:  5 * time.Minute,
		ConsumeRadiusM: 50,
		Policy:         collectibles.DefaultSpawnPolicy(),
	}
}

// Session runs one player's collectible lifecycle: it listens to the
// position source, spawns collectible waves around the player on a fixed
// interval (and at session start), and consumes entities by proximity.
//
// The live sets are in-memory and ephemeral; only consumption writes to
// permanent state. Consumption runs solely on the session goroutine, and
// every entity is removed from its live set before its payload is
// credited, so a burst of position updates inside the radius credits each
// entity at most once. A failed credit puts the entity back (nothing is
// silently lost).
type Session struct {
	playerID      shared.PlayerID
	playerRepo    player.Repository
	catalogClient catalog.Client
	source        collectibles.PositionSource
	spawner       *collectibles.Spawner
	config        SessionConfig
	rng           *rand.Rand

	mu            sync.Mutex
	offset        shared.Offset
	lastKnownReal shared.Coordinate
	position      shared.Coordinate
	bearing       float64
	hasPosition   bool
	liveSprites   map[string]collectibles.Sprite
	livePools     map[string]collectibles.EnergyPool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a collectible session for one player. rng may be
// seeded for deterministic tests; nil uses a random seed.
func NewSession(
	playerID shared.PlayerID,
	playerRepo player.Repository,
	catalogClient catalog.Client,
	source collectibles.PositionSource,
	config SessionConfig,
	rng *rand.Rand,
) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		playerID:      playerID,
		playerRepo:    playerRepo,
		catalogClient: catalogClient,
		source:        source,
		spawner:       collectibles.NewSpawner(config.Policy, rng),
		config:        config,
		rng:           rng,
		liveSprites:   make(map[string]collectibles.Sprite),
		livePools:     make(map[string]collectibles.EnergyPool),
		done:          make(chan struct{}),
	}
}

// Start launches the session loop. It returns immediately; Close stops
// the loop and tears down the position subscription.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

// Close stops the session and waits for the loop to exit
func (s *Session) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
	return s.source.Close()
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.config.SpawnInterval)
	defer ticker.Stop()

	updates := s.source.Updates()
	for {
		select {
		case <-ctx.Done():
			return

		case update, open := <-updates:
			if !open {
				return
			}
			s.observePosition(ctx, update)

		case <-ticker.C:
			s.spawnWaves(ctx)
		}
	}
}

// observePosition applies the teleport offset, refreshes the player's
// effective position, spawns the initial waves once a real fix exists,
// and consumes everything in radius.
func (s *Session) observePosition(ctx context.Context, update collectibles.PositionUpdate) {
	s.mu.Lock()
	if s.offset.IsZero() {
		s.lastKnownReal = update.Position
	}
	position := s.offset.Apply(update.Position)
	s.position = position
	s.bearing = update.Bearing
	firstFix := !s.hasPosition
	s.hasPosition = true
	s.mu.Unlock()

	if firstFix {
		s.spawnWaves(ctx)
	}
	s.consume(ctx, position)
}

// Teleport pins the player to target: the offset between target and the
// last known real position is added to every subsequent raw reading
func (s *Session) Teleport(target shared.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = shared.OffsetBetween(target, s.lastKnownReal)
	s.position = target
}

// ResetTeleport clears the offset; readings pass through untouched again
func (s *Session) ResetTeleport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = shared.Offset{}
	s.position = s.lastKnownReal
}

// Position returns the player's current effective position and bearing
func (s *Session) Position() (shared.Coordinate, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, s.bearing
}

// LiveSprites returns a snapshot of the live sprite set
func (s *Session) LiveSprites() []collectibles.Sprite {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprites := make([]collectibles.Sprite, 0, len(s.liveSprites))
	for _, sprite := range s.liveSprites {
		sprites = append(sprites, sprite)
	}
	return sprites
}

// LivePools returns a snapshot of the live energy pool set
func (s *Session) LivePools() []collectibles.EnergyPool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pools := make([]collectibles.EnergyPool, 0, len(s.livePools))
	for _, pool := range s.livePools {
		pools = append(pools, pool)
	}
	return pools
}

// spawnWaves replaces both live sets with fresh waves around the current
// position. Requires a position fix; no-op before the first reading.
func (s *Session) spawnWaves(ctx context.Context) {
	s.mu.Lock()
	center := s.position
	ready := s.hasPosition
	s.mu.Unlock()
	if !ready {
		return
	}

	logger := common.LoggerFromContext(ctx)

	pools := s.spawner.SpawnEnergyPools(center)

	picks := s.pickChampions(ctx)
	sprites := s.spawner.SpawnSprites(center, picks)

	s.mu.Lock()
	s.livePools = make(map[string]collectibles.EnergyPool, len(pools))
	for _, pool := range pools {
		s.livePools[pool.ID] = pool
	}
	s.liveSprites = make(map[string]collectibles.Sprite, len(sprites))
	for _, sprite := range sprites {
		s.liveSprites[sprite.ID] = sprite
	}
	s.mu.Unlock()

	logger.Log("debug", "collectible waves spawned", map[string]interface{}{
		"player_id": s.playerID.Value(),
		"sprites":   len(sprites),
		"pools":     len(pools),
	})
}

// pickChampions draws random catalog champions for a sprite wave.
// Catalog failure degrades to an empty wave rather than killing the
// session loop.
func (s *Session) pickChampions(ctx context.Context) []collectibles.ChampionPick {
	champions, err := s.catalogClient.GetChampions(ctx)
	if err != nil {
		common.LoggerFromContext(ctx).Log("warn", "champion catalog unavailable, skipping sprite wave", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	picks := make([]collectibles.ChampionPick, 0, len(champions))
	for _, champion := range champions {
		picks = append(picks, collectibles.ChampionPick{
			Name:     champion.Name,
			ImageRef: champion.ImageRef,
		})
	}
	s.rng.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})
	if len(picks) > s.config.Policy.CountPerKind {
		picks = picks[:s.config.Policy.CountPerKind]
	}
	return picks
}

// consume applies proximity consumption for both kinds at the given
// effective position
func (s *Session) consume(ctx context.Context, position shared.Coordinate) {
	logger := common.LoggerFromContext(ctx)

	// Energy pools: unconditional credit, exactly once per entity.
	s.mu.Lock()
	var duePools []collectibles.EnergyPool
	for id, pool := range s.livePools {
		if position.DistanceTo(pool.Position) <= s.config.ConsumeRadiusM {
			duePools = append(duePools, pool)
			delete(s.livePools, id)
		}
	}
	s.mu.Unlock()

	for _, pool := range duePools {
		total, err := s.playerRepo.AddPower(ctx, s.playerID, pool.Power)
		if err != nil {
			// Credit failed: put the pool back so its value is not lost.
			s.mu.Lock()
			s.livePools[pool.ID] = pool
			s.mu.Unlock()
			logger.Log("error", "power credit failed, pool restored", map[string]interface{}{
				"player_id": s.playerID.Value(),
				"pool_id":   pool.ID,
				"error":     err.Error(),
			})
			continue
		}
		logger.Log("info", "energy pool consumed", map[string]interface{}{
			"player_id": s.playerID.Value(),
			"power":     pool.Power,
			"total":     total,
		})
	}

	// Sprites: credited on first discovery only; an already-discovered
	// sprite stays on the map untouched.
	s.mu.Lock()
	var dueSprites []collectibles.Sprite
	for _, sprite := range s.liveSprites {
		if position.DistanceTo(sprite.Position) <= s.config.ConsumeRadiusM {
			dueSprites = append(dueSprites, sprite)
		}
	}
	s.mu.Unlock()

	for _, sprite := range dueSprites {
		added, err := s.playerRepo.AddGlossaryName(ctx, s.playerID, sprite.Name)
		if err != nil {
			logger.Log("error", "glossary write failed, sprite kept", map[string]interface{}{
				"player_id": s.playerID.Value(),
				"sprite_id": sprite.ID,
				"error":     err.Error(),
			})
			continue
		}
		if !added {
			continue
		}
		s.mu.Lock()
		delete(s.liveSprites, sprite.ID)
		s.mu.Unlock()
		logger.Log("info", "sprite discovered", map[string]interface{}{
			"player_id": s.playerID.Value(),
			"name":      sprite.Name,
		})
	}
}
