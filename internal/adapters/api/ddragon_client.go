package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/summonerscompass/compass-go/internal/domain/catalog"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

const (
	baseURL            = "https://ddragon.leagueoflegends.com/cdn/14.24.1"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 5
	defaultBackoffBase = time.Second
)

// DataDragonClient implements catalog.Client against the Data Dragon CDN.
// Records are versioned and immutable, so the item and champion catalogs
// are fetched once and cached for the life of the process.
// Rate limit: 2 requests per second with burst of 2
// Retry: max 5 attempts with 1s exponential backoff + jitter
type DataDragonClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock

	mu        sync.Mutex
	items     map[string]catalog.ItemDescriptor
	champions map[string]catalog.ChampionDescriptor
	images    map[string][]byte
}

// NewDataDragonClient creates a new Data Dragon client with default settings
func NewDataDragonClient() *DataDragonClient {
	return NewDataDragonClientWithConfig(
		baseURL,
		defaultMaxRetries,
		defaultBackoffBase,
		nil, // Use RealClock by default
	)
}

// NewDataDragonClientWithConfig creates a new Data Dragon client with custom
// configuration. If clock is nil, uses RealClock for production
func NewDataDragonClientWithConfig(
	baseURL string,
	maxRetries int,
	backoffBase time.Duration,
	clock shared.Clock,
) *DataDragonClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &DataDragonClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2), // 2 req/sec, burst 2
		breaker:     NewCircuitBreaker(5, 30*time.Second, clock),
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
		images:      make(map[string][]byte),
	}
}

// GetItems returns every item descriptor keyed by item id
func (c *DataDragonClient) GetItems(ctx context.Context) (map[string]catalog.ItemDescriptor, error) {
	c.mu.Lock()
	if c.items != nil {
		items := c.items
		c.mu.Unlock()
		return items, nil
	}
	c.mu.Unlock()

	var response struct {
		Data map[string]struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Plaintext   string `json:"plaintext"`
			Image       struct {
				Full string `json:"full"`
			} `json:"image"`
			Gold struct {
				Total int `json:"total"`
			} `json:"gold"`
			Tags []string `json:"tags"`
		} `json:"data"`
	}

	if err := c.requestJSON(ctx, "/data/en_US/item.json", &response); err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	items := make(map[string]catalog.ItemDescriptor, len(response.Data))
	for id, record := range response.Data {
		items[id] = catalog.ItemDescriptor{
			ID:          id,
			Name:        record.Name,
			Description: record.Description,
			Plaintext:   record.Plaintext,
			ImageRef:    record.Image.Full,
			GoldTotal:   record.Gold.Total,
			Tags:        record.Tags,
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return items, nil
}

// GetItem returns one item descriptor
func (c *DataDragonClient) GetItem(ctx context.Context, id string) (catalog.ItemDescriptor, error) {
	items, err := c.GetItems(ctx)
	if err != nil {
		return catalog.ItemDescriptor{}, err
	}
	item, ok := items[id]
	if !ok {
		return catalog.ItemDescriptor{}, shared.NewNotFoundError("item", id)
	}
	return item, nil
}

// GetItemImage fetches an item's square image by ref
func (c *DataDragonClient) GetItemImage(ctx context.Context, ref string) ([]byte, error) {
	return c.image(ctx, "/img/item/"+ref)
}

// GetChampions returns every champion descriptor keyed by champion id
func (c *DataDragonClient) GetChampions(ctx context.Context) (map[string]catalog.ChampionDescriptor, error) {
	c.mu.Lock()
	if c.champions != nil {
		champions := c.champions
		c.mu.Unlock()
		return champions, nil
	}
	c.mu.Unlock()

	var response struct {
		Data map[string]struct {
			ID    string `json:"id"`
			Key   string `json:"key"`
			Name  string `json:"name"`
			Title string `json:"title"`
			Blurb string `json:"blurb"`
			Image struct {
				Full string `json:"full"`
			} `json:"image"`
			Tags []string `json:"tags"`
		} `json:"data"`
	}

	if err := c.requestJSON(ctx, "/data/en_US/champion.json", &response); err != nil {
		return nil, fmt.Errorf("failed to get champions: %w", err)
	}

	champions := make(map[string]catalog.ChampionDescriptor, len(response.Data))
	for id, record := range response.Data {
		champions[id] = catalog.ChampionDescriptor{
			ID:       record.ID,
			Key:      record.Key,
			Name:     record.Name,
			Title:    record.Title,
			Blurb:    record.Blurb,
			ImageRef: record.Image.Full,
			Tags:     record.Tags,
		}
	}

	c.mu.Lock()
	c.champions = champions
	c.mu.Unlock()
	return champions, nil
}

// GetChampion returns one champion descriptor
func (c *DataDragonClient) GetChampion(ctx context.Context, id string) (catalog.ChampionDescriptor, error) {
	champions, err := c.GetChampions(ctx)
	if err != nil {
		return catalog.ChampionDescriptor{}, err
	}
	champion, ok := champions[id]
	if !ok {
		return catalog.ChampionDescriptor{}, shared.NewNotFoundError("champion", id)
	}
	return champion, nil
}

// GetChampionImage fetches a champion's square image by ref
func (c *DataDragonClient) GetChampionImage(ctx context.Context, ref string) ([]byte, error) {
	return c.image(ctx, "/img/champion/"+ref)
}

// image fetches and caches a static image by path
func (c *DataDragonClient) image(ctx context.Context, path string) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.images[path]; ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := c.requestBytes(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = data
	c.mu.Unlock()
	return data, nil
}

// requestJSON performs a GET and unmarshals the response body
func (c *DataDragonClient) requestJSON(ctx context.Context, path string, result interface{}) error {
	body, err := c.requestBytes(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// addJitter adds random jitter to a duration to avoid thundering herd
// Returns a duration between 50% and 150% of the original value
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

// requestBytes makes an HTTP GET with circuit breaker protection, rate
// limiting and exponential backoff retries
func (c *DataDragonClient) requestBytes(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := c.breaker.Call(func() error {
		var err error
		body, err = c.doRequest(ctx, path)
		return err
	})
	return body, err
}

func (c *DataDragonClient) doRequest(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error

	// Attempt the request with exponential backoff + jitter retries
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network error - retryable
			lastErr = &retryableError{
				message: fmt.Errorf("network error: %w", err).Error(),
			}

			// Last attempt - don't sleep, just record error
			if attempt >= c.maxRetries {
				break
			}

			// Check for context cancellation before sleeping
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			// Sleep using clock (instant in tests with MockClock)
			backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			c.clock.Sleep(backoffDelay)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		// Handle 429 Too Many Requests - retryable
		if resp.StatusCode == http.StatusTooManyRequests {
			var retryAfterDuration time.Duration

			// Check for Retry-After header
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					retryAfterDuration = time.Duration(seconds) * time.Second
				}
			}

			lastErr = &retryableError{
				message:    "rate limited (429)",
				retryAfter: retryAfterDuration,
			}

			if attempt >= c.maxRetries {
				break
			}

			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			// Use server-provided Retry-After value without jitter when present
			backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			if retryAfterDuration > 0 {
				backoffDelay = retryAfterDuration
			}

			c.clock.Sleep(backoffDelay)
			continue
		}

		// Handle 5xx server errors - retryable
		if resp.StatusCode >= 500 {
			lastErr = &retryableError{
				message: fmt.Sprintf("server error (%d)", resp.StatusCode),
			}

			if attempt >= c.maxRetries {
				break
			}

			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			c.clock.Sleep(backoffDelay)
			continue
		}

		// Handle 4xx client errors - NOT retryable
		if resp.StatusCode == http.StatusNotFound {
			return nil, shared.NewNotFoundError("catalog resource", path)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("CDN error (status %d): %s", resp.StatusCode, string(respBody))
		}

		// Success!
		return respBody, nil
	}

	// All retries exhausted
	if lastErr != nil {
		return nil, shared.NewTransientError("max retries exceeded", lastErr)
	}
	return nil, shared.NewTransientError("max retries exceeded", nil)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

var _ catalog.Client = (*DataDragonClient)(nil)
