package collectibles_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/adapters/position"
	appcollectibles "github.com/summonerscompass/compass-go/internal/application/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/catalog"
	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// fakePlayerRepo records power credits and glossary names in memory
type fakePlayerRepo struct {
	mu        sync.Mutex
	power     int
	credits   int
	glossary  map[string]bool
	failPower bool
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{glossary: make(map[string]bool)}
}

func (r *fakePlayerRepo) FindByID(ctx context.Context, id shared.PlayerID) (*player.Player, error) {
	return nil, shared.NewNotFoundError("player", id.Value())
}

func (r *fakePlayerRepo) FindByEmail(ctx context.Context, email string) (*player.Player, error) {
	return nil, shared.NewNotFoundError("player", email)
}

func (r *fakePlayerRepo) Register(ctx context.Context, p *player.Player) error {
	return nil
}

func (r *fakePlayerRepo) AddPower(ctx context.Context, id shared.PlayerID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failPower {
		return 0, errors.New("store unavailable")
	}
	r.power += delta
	r.credits++
	return r.power, nil
}

func (r *fakePlayerRepo) Glossary(ctx context.Context, id shared.PlayerID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.glossary))
	for name := range r.glossary {
		names = append(names, name)
	}
	return names, nil
}

func (r *fakePlayerRepo) AddGlossaryName(ctx context.Context, id shared.PlayerID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.glossary[name] {
		return false, nil
	}
	r.glossary[name] = true
	return true, nil
}

func (r *fakePlayerRepo) totals() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.power, r.credits
}

func (r *fakePlayerRepo) setFailPower(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failPower = fail
}

// fakeCatalog serves a fixed champion roster
type fakeCatalog struct {
	champions map[string]catalog.ChampionDescriptor
}

func (c *fakeCatalog) GetItems(ctx context.Context) (map[string]catalog.ItemDescriptor, error) {
	return nil, nil
}

func (c *fakeCatalog) GetItem(ctx context.Context, id string) (catalog.ItemDescriptor, error) {
	return catalog.ItemDescriptor{}, shared.NewNotFoundError("item", id)
}

func (c *fakeCatalog) GetItemImage(ctx context.Context, ref string) ([]byte, error) {
	return nil, shared.NewNotFoundError("image", ref)
}

func (c *fakeCatalog) GetChampions(ctx context.Context) (map[string]catalog.ChampionDescriptor, error) {
	return c.champions, nil
}

func (c *fakeCatalog) GetChampion(ctx context.Context, id string) (catalog.ChampionDescriptor, error) {
	champion, ok := c.champions[id]
	if !ok {
		return catalog.ChampionDescriptor{}, shared.NewNotFoundError("champion", id)
	}
	return champion, nil
}

func (c *fakeCatalog) GetChampionImage(ctx context.Context, ref string) ([]byte, error) {
	return nil, shared.NewNotFoundError("image", ref)
}

// testSessionConfig spawns everything within pickup range: jitter is a
// fraction of a meter while the radius is 50m, and every pool is worth
// exactly 5 power so totals are deterministic.
func testSessionConfig() appcollectibles.SessionConfig {
	return appcollectibles.SessionConfig{
		SpawnInterval:  time.Hour,
		ConsumeRadiusM: 50,
		Policy: collectibles.SpawnPolicy{
			CountPerKind: 2,
			JitterDeg:    1e-7,
			MinPoolPower: 5,
			MaxPoolPower: 6,
		},
	}
}

func startSession(t *testing.T, repo *fakePlayerRepo, roster map[string]catalog.ChampionDescriptor) (*appcollectibles.Session, *position.ChannelSource) {
	t.Helper()
	source := position.NewChannelSource()
	session := appcollectibles.NewSession(
		shared.MustNewPlayerID("player-1"),
		repo,
		&fakeCatalog{champions: roster},
		source,
		testSessionConfig(),
		rand.New(rand.NewSource(99)),
	)
	session.Start(context.Background())
	t.Cleanup(func() {
		require.NoError(t, session.Close())
	})
	return session, source
}

func TestSession_ConsumesEachPoolExactlyOnce(t *testing.T) {
	// Arrange
	repo := newFakePlayerRepo()
	_, source := startSession(t, repo, nil)
	center := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}

	// Act - the first fix spawns the wave and consumes it in place
	require.True(t, source.Publish(center, 0))

	// Assert - two pools of 5 power each, credited once
	require.Eventually(t, func() bool {
		power, _ := repo.totals()
		return power == 10
	}, 2*time.Second, 10*time.Millisecond)

	// A burst of further fixes inside the radius credits nothing more
	for i := 0; i < 5; i++ {
		source.Publish(center, 0)
	}
	assert.Never(t, func() bool {
		power, credits := repo.totals()
		return power != 10 || credits != 2
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestSession_RestoresPoolWhenCreditFails(t *testing.T) {
	// Arrange
	repo := newFakePlayerRepo()
	repo.setFailPower(true)
	session, source := startSession(t, repo, nil)
	center := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}

	// Act - consumption is attempted but every credit fails
	require.True(t, source.Publish(center, 0))

	// Assert - the pools go back to the live set, nothing lost
	require.Eventually(t, func() bool {
		return len(session.LivePools()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	power, _ := repo.totals()
	assert.Equal(t, 0, power)

	// Once the store recovers, the next fix credits the restored pools
	repo.setFailPower(false)
	source.Publish(center, 0)
	require.Eventually(t, func() bool {
		power, _ := repo.totals()
		return power == 10
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSession_SpriteDiscoveryFillsGlossaryOnce(t *testing.T) {
	// Arrange
	repo := newFakePlayerRepo()
	roster := map[string]catalog.ChampionDescriptor{
		"Ahri":  {ID: "Ahri", Name: "Ahri", ImageRef: "Ahri.png"},
		"Garen": {ID: "Garen", Name: "Garen", ImageRef: "Garen.png"},
	}
	session, source := startSession(t, repo, roster)
	center := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}

	// Act
	require.True(t, source.Publish(center, 0))

	// Assert - both names discovered, discovered sprites leave the map
	require.Eventually(t, func() bool {
		names, _ := repo.Glossary(context.Background(), shared.MustNewPlayerID("player-1"))
		return len(names) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return len(session.LiveSprites()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSession_TeleportPinsPosition(t *testing.T) {
	// Arrange
	repo := newFakePlayerRepo()
	session, source := startSession(t, repo, nil)
	madrid := shared.Coordinate{Lat: 40.4168, Lng: -3.7038}
	paris := shared.Coordinate{Lat: 48.8566, Lng: 2.3522}
	require.True(t, source.Publish(madrid, 0))
	require.Eventually(t, func() bool {
		current, _ := session.Position()
		return current.DistanceTo(madrid) < 1
	}, 2*time.Second, 10*time.Millisecond)

	// Act - teleport to Paris, then keep walking in Madrid
	session.Teleport(paris)
	source.Publish(shared.Coordinate{Lat: madrid.Lat + 0.001, Lng: madrid.Lng}, 0)

	// Assert - readings are shifted by the pinned offset
	require.Eventually(t, func() bool {
		current, _ := session.Position()
		return current.DistanceTo(shared.Coordinate{Lat: paris.Lat + 0.001, Lng: paris.Lng}) < 1
	}, 2*time.Second, 10*time.Millisecond)

	// Act - reset returns to the last real fix
	session.ResetTeleport()
	current, _ := session.Position()

	// Assert
	assert.Less(t, current.DistanceTo(madrid), 1.0)
}
