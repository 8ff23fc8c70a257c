package usecase

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/shivneri/backend/internal/domain"
)

// nameSearchSeparator joins a product's raw and brand-expanded names into
// the composite field the matcher actually searches.
const nameSearchSeparator = " • "

// CatalogNormalizer transforms raw catalog records into enriched products:
// detects an embedded brand prefix, expands coded names (GC -> Golden
// Crown), fixes known category misspellings and builds the composite
// search field. It also populates the registry's catalog-derived brand
// lookup as it goes.
type CatalogNormalizer struct {
	registry           *BrandRegistry
	categoryFixes      map[string]string
	enableDebugLogging bool
}

// NewCatalogNormalizer creates a catalog normalizer. categoryFixes is an
// exact, case-sensitive typo-correction table on trimmed category values.
func NewCatalogNormalizer(registry *BrandRegistry, categoryFixes map[string]string, enableDebugLogging bool) *CatalogNormalizer {
	return &CatalogNormalizer{
		registry:           registry,
		categoryFixes:      categoryFixes,
		enableDebugLogging: enableDebugLogging,
	}
}

// NormalizeCatalog enriches every raw record, preserving input order.
// A nil or empty payload yields an empty catalog, never an error;
// malformed individual fields are defaulted rather than rejected.
func (n *CatalogNormalizer) NormalizeCatalog(raw []domain.RawProduct) []domain.Product {
	if len(raw) == 0 {
		return []domain.Product{}
	}

	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		p := n.normalizeRecord(r)
		n.registry.RecordCatalogBrand(p.CanonicalBrand)
		products = append(products, p)
	}

	if n.enableDebugLogging {
		log.Printf("[CATALOG] Normalized %d products", len(products))
	}

	return products
}

func (n *CatalogNormalizer) normalizeRecord(r domain.RawProduct) domain.Product {
	nameRaw := strings.TrimSpace(r.Name)

	brand, consumed := n.registry.ResolveAlias(Normalize(nameRaw))
	if brand == "" {
		// Heuristic fallback: the first raw token becomes the brand. This
		// can mislabel multi-word unbranded names, but keeps single-word
		// brands like "Amul" discoverable without an alias entry.
		fields := strings.Fields(nameRaw)
		if len(fields) > 0 {
			brand = fields[0]
		}
		consumed = 1
	}

	nameExpanded := ExpandName(nameRaw, brand, consumed)

	nameSearch := nameRaw
	if nameExpanded != nameRaw {
		nameSearch = nameRaw + nameSearchSeparator + nameExpanded
	}

	return domain.Product{
		Name:           nameRaw,
		NameExpanded:   nameExpanded,
		NameSearch:     nameSearch,
		CanonicalBrand: brand,
		Category:       n.normalizeCategory(r.Category),
		Price:          coercePrice(r.Price),
	}
}

// ExpandName rewrites a detected brand-code prefix to the canonical brand:
// the first consumed whitespace-delimited raw tokens are dropped and the
// brand prepended. Identity transform when no prefix was detected.
func ExpandName(nameRaw, brand string, consumed int) string {
	if brand == "" || consumed == 0 {
		return nameRaw
	}

	tokens := strings.Fields(nameRaw)
	if consumed > len(tokens) {
		consumed = len(tokens)
	}
	rest := strings.Join(tokens[consumed:], " ")
	if rest == "" {
		return brand
	}
	return brand + " " + rest
}

func (n *CatalogNormalizer) normalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if fixed, ok := n.categoryFixes[trimmed]; ok {
		return fixed
	}
	return trimmed
}

// coercePrice accepts the duck-typed price field of the catalog feed:
// numbers, numeric strings and json.Number all coerce; anything else
// defaults to zero.
func coercePrice(price any) float64 {
	switch v := price.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
