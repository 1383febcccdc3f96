package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shelfview/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client fetches the product dataset from a remote HTTP endpoint
type Client struct {
	httpClient  *http.Client
	url         string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	debug       bool
}

// NewClient creates a new remote catalog client
func NewClient(url string) *Client {
	// One request per second with room for the retries of a single load
	limiter := rate.NewLimiter(rate.Limit(1), maxAttempts)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		url:         url,
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShelfView/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// LoadProducts downloads and decodes the dataset, retrying transient failures
func (c *Client) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	if c.debug {
		log.Printf("[CATALOG] Fetching remote catalog from %s", c.url)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx)
		if err != nil {
			log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogUnavailable, err)
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrCatalogNotFound
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[CATALOG] Remote error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			continue
		}

		var payload RemoteResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
		}

		products, err := MapToProducts(payload.Products)
		if err != nil {
			return nil, err
		}
		if payload.Total > 0 && payload.Total != len(products) {
			return nil, fmt.Errorf("%w: remote reported %d products but sent %d",
				domain.ErrInvalidDataset, payload.Total, len(products))
		}

		if c.debug {
			log.Printf("[CATALOG] Remote catalog returned %d products", len(products))
		}
		return products, nil
	}

	log.Printf("[CATALOG] All %d attempts failed for %s", maxAttempts, c.url)
	return nil, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
