package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shivneri/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches the product catalog from the storefront backend, falling
// back to a local products file when the backend is unreachable.
type Client struct {
	httpClient  *http.Client
	url         string
	localPath   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog client. Either url or localPath may be
// empty; at least one source must be configured.
func NewClient(url, localPath string) *Client {
	// The catalog is reloaded rarely; one request per second with a small
	// burst is plenty and keeps retry loops polite.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		url:         url,
		localPath:   localPath,
		rateLimiter: limiter,
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchCatalog returns the materialized raw product list. The remote
// endpoint is tried first with retries; on failure the local file is
// read. Both failing yields ErrCatalogUnavailable.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.RawProduct, error) {
	if c.url != "" {
		products, err := c.fetchRemote(ctx)
		if err == nil {
			return products, nil
		}
		log.Printf("[CATALOG] Backend not reachable, falling back to local file: %v", err)
	}

	if c.localPath == "" {
		return nil, domain.ErrCatalogUnavailable
	}

	products, err := c.readLocal()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return products, nil
}

func (c *Client) fetchRemote(ctx context.Context) ([]domain.RawProduct, error) {
	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "ShivneriFresh/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			}
			lastErr = fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var products []domain.RawProduct
		if err := json.Unmarshal(body, &products); err != nil {
			// Malformed payload is not transient; let the local file take over.
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] Fetched %d products from %s", len(products), c.url)
		}
		return products, nil
	}

	return nil, lastErr
}

func (c *Client) readLocal() ([]domain.RawProduct, error) {
	data, err := os.ReadFile(c.localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.localPath, err)
	}

	var products []domain.RawProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.localPath, err)
	}

	if c.debug {
		log.Printf("[CATALOG] Loaded %d products from %s", len(products), c.localPath)
	}
	return products, nil
}
