package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/shivneri/backend/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	BrandAliases       map[string][]string
	CategoryFixes      map[string]string
	KeywordSynonyms    map[string]string
	Matcher            MatcherConfig
	DisplayCount       int
	EnableDebugLogging bool
}

// SearchService owns the enriched catalog and answers product queries.
// The catalog, its brand registry and the query parser are rebuilt
// wholesale on every load and swapped in atomically; they are never
// mutated in place, so searches see either the old or the new catalog,
// never a partial one.
type SearchService struct {
	source  domain.CatalogSource
	matcher *Matcher

	brandAliases       map[string][]string
	categoryFixes      map[string]string
	keywordSynonyms    map[string]string
	displayCount       int
	enableDebugLogging bool

	mu       sync.RWMutex
	products []domain.Product
	parser   *QueryParser
}

// NewSearchService creates a search service. The catalog is not loaded
// yet; call LoadCatalog before querying, or queries report not-ready.
func NewSearchService(source domain.CatalogSource, config SearchServiceConfig) *SearchService {
	displayCount := config.DisplayCount
	if displayCount <= 0 {
		displayCount = 10
	}

	return &SearchService{
		source:             source,
		matcher:            NewMatcher(config.Matcher),
		brandAliases:       config.BrandAliases,
		categoryFixes:      config.CategoryFixes,
		keywordSynonyms:    config.KeywordSynonyms,
		displayCount:       displayCount,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// LoadCatalog fetches the raw catalog, normalizes it and swaps in the new
// enriched catalog together with a freshly built brand registry.
func (s *SearchService) LoadCatalog(ctx context.Context) error {
	raw, err := s.source.FetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	registry := NewBrandRegistry(s.brandAliases)
	normalizer := NewCatalogNormalizer(registry, s.categoryFixes, s.enableDebugLogging)
	products := normalizer.NormalizeCatalog(raw)
	parser := NewQueryParser(registry, s.keywordSynonyms)

	s.mu.Lock()
	s.products = products
	s.parser = parser
	s.mu.Unlock()

	log.Printf("[SEARCH] Catalog loaded: %d products", len(products))
	return nil
}

// Ready reports whether a non-empty catalog has been loaded.
func (s *SearchService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products) > 0
}

// Products returns the current enriched catalog, or ErrCatalogNotReady.
func (s *SearchService) Products() ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.products) == 0 {
		return nil, domain.ErrCatalogNotReady
	}
	return s.products, nil
}

// Search parses the query, selects the candidate pool (brand-filtered when
// a brand was detected) and ranks it. A resolved brand with no residual
// text bypasses the matcher and lists that brand's products by name.
// Returns ErrCatalogNotReady before the first successful load,
// ErrInvalidRequest for empty queries and ErrNoMatch when nothing clears
// the similarity threshold.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	s.mu.RLock()
	products := s.products
	parser := s.parser
	s.mu.RUnlock()

	if len(products) == 0 {
		return nil, domain.ErrCatalogNotReady
	}

	parsed := parser.Parse(query)
	if parsed.Brand == "" && parsed.Residual == "" {
		return nil, domain.ErrInvalidRequest
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] query=%q brand=%q residual=%q", query, parsed.Brand, parsed.Residual)
	}

	pool := products
	brandFiltered := false
	if parsed.Brand != "" {
		pool = filterByBrand(products, parsed.Brand)
		brandFiltered = true
	}

	// Brand-only query: list the brand's products alphabetically.
	if parsed.Residual == "" {
		listing := brandListing(pool, s.displayCount)
		if len(listing) == 0 {
			return nil, domain.ErrNoMatch
		}
		return &domain.SearchResult{Brand: parsed.Brand, Products: listing}, nil
	}

	ranked := s.matcher.Rank(pool, parsed.Residual, brandFiltered)
	if len(ranked) == 0 {
		return nil, domain.ErrNoMatch
	}

	return &domain.SearchResult{Brand: parsed.Brand, Products: ranked}, nil
}

func filterByBrand(products []domain.Product, brand string) []domain.Product {
	key := Normalize(brand)
	var pool []domain.Product
	for _, p := range products {
		if Normalize(p.CanonicalBrand) == key {
			pool = append(pool, p)
		}
	}
	return pool
}

func brandListing(pool []domain.Product, limit int) []domain.RankedProduct {
	sorted := make([]domain.Product, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	listing := make([]domain.RankedProduct, 0, len(sorted))
	for _, p := range sorted {
		listing = append(listing, domain.RankedProduct{Product: p})
	}
	return listing
}
