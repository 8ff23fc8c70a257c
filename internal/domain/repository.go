package domain

import (
	"context"
	"time"
)

// CatalogSource supplies the raw product catalog as a finite, materialized
// list. Implementations may fetch over the network with a local fallback.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]RawProduct, error)
}

// ChatCompleter relays a user message to a hosted completion endpoint and
// returns the reply verbatim.
type ChatCompleter interface {
	Complete(ctx context.Context, message string) (string, error)
}

// CacheRepository defines the interface for caching completion replies
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
