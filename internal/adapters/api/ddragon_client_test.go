package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/adapters/api"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

const itemPayload = `{
	"data": {
		"1038": {
			"name": "B.F. Sword",
			"plaintext": "Greatly increases Attack Damage",
			"image": {"full": "1038.png"},
			"gold": {"total": 1300},
			"tags": ["Damage"]
		},
		"1058": {
			"name": "Needlessly Large Rod",
			"image": {"full": "1058.png"},
			"gold": {"total": 1250},
			"tags": ["SpellDamage"]
		}
	}
}`

const championPayload = `{
	"data": {
		"Ahri": {
			"id": "Ahri",
			"key": "103",
			"name": "Ahri",
			"title": "the Nine-Tailed Fox",
			"image": {"full": "Ahri.png"},
			"tags": ["Mage"]
		}
	}
}`

func newCatalogClient(serverURL string) *api.DataDragonClient {
	// Tiny backoff and a mock clock keep retry paths instant in tests
	return api.NewDataDragonClientWithConfig(serverURL, 2, time.Millisecond, shared.NewMockClock(time.Now()))
}

func TestDataDragonClient_GetItemsParsesAndCaches(t *testing.T) {
	// Arrange
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/data/en_US/item.json", r.URL.Path)
		w.Write([]byte(itemPayload))
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	items, err := client.GetItems(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 2)
	sword := items["1038"]
	assert.Equal(t, "B.F. Sword", sword.Name)
	assert.Equal(t, "1038.png", sword.ImageRef)
	assert.Equal(t, 1300, sword.GoldTotal)
	assert.Equal(t, []string{"Damage"}, sword.Tags)

	// The catalog is immutable: a second call serves the cache
	_, err = client.GetItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDataDragonClient_GetItemNotFound(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itemPayload))
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	_, err := client.GetItem(context.Background(), "9999")

	// Assert
	assert.True(t, shared.IsNotFound(err))
}

func TestDataDragonClient_GetChampions(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/en_US/champion.json", r.URL.Path)
		w.Write([]byte(championPayload))
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	champion, err := client.GetChampion(context.Background(), "Ahri")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ahri", champion.Name)
	assert.Equal(t, "the Nine-Tailed Fox", champion.Title)
	assert.Equal(t, "Ahri.png", champion.ImageRef)
}

func TestDataDragonClient_RetriesServerErrors(t *testing.T) {
	// Arrange - first attempt fails with a 500, the retry succeeds
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(itemPayload))
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	items, err := client.GetItems(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestDataDragonClient_ExhaustedRetriesAreTransient(t *testing.T) {
	// Arrange - the CDN never recovers
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	_, err := client.GetItems(context.Background())

	// Assert
	assert.True(t, shared.IsTransient(err))
}

func TestDataDragonClient_MissingImageIsNotFound(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	_, err := client.GetItemImage(context.Background(), "nope.png")

	// Assert
	assert.True(t, shared.IsNotFound(err))
}

func TestDataDragonClient_CachesImages(t *testing.T) {
	// Arrange
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/img/champion/Ahri.png", r.URL.Path)
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()
	client := newCatalogClient(server.URL)

	// Act
	first, err := client.GetChampionImage(context.Background(), "Ahri.png")
	require.NoError(t, err)
	second, err := client.GetChampionImage(context.Background(), "Ahri.png")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
