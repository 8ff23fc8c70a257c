package domain

import "errors"

var (
	// ErrCatalogNotReady is returned when a query arrives before the catalog
	// has been loaded and normalized. Callers must not treat this as "no results".
	ErrCatalogNotReady = errors.New("catalog not loaded yet")

	// ErrNoMatch is returned when a valid query clears no similarity threshold.
	// It is the signal to hand the query to the completion fallback.
	ErrNoMatch = errors.New("no matching products")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when the catalog source and its local
	// fallback both fail
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrChatAPIFailure is returned when the completion API request fails
	ErrChatAPIFailure = errors.New("completion API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
