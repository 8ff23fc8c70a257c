package usecase

import "strings"

// BrandRegistry resolves brand names from query or catalog-name prefixes.
// The alias table is compiled once from configuration and immutable
// afterwards. The catalog-derived lookup is populated during catalog
// normalization (first-write-wins per key) and consulted only when the
// alias table misses; it is rebuilt together with the enriched catalog on
// every load.
type BrandRegistry struct {
	aliasToBrand  map[string]string
	catalogBrands map[string]string
}

// NewBrandRegistry compiles the canonical-brand -> aliases table into a
// reverse alias -> brand lookup. Alias keys are normalized, so lookups on
// normalized text match regardless of spelling variants like "Fresh-2-Go".
func NewBrandRegistry(brandAliases map[string][]string) *BrandRegistry {
	aliasToBrand := make(map[string]string)
	for brand, aliases := range brandAliases {
		for _, alias := range aliases {
			if key := Normalize(alias); key != "" {
				aliasToBrand[key] = brand
			}
		}
	}

	return &BrandRegistry{
		aliasToBrand:  aliasToBrand,
		catalogBrands: make(map[string]string),
	}
}

// ResolveAlias examines the first one and two whitespace-delimited tokens
// of a normalized string against the static alias table. The two-token
// prefix is tried first so multi-word brands win over their first word.
// Returns the canonical brand and how many tokens it consumed, or
// ("", 0) on no match.
func (r *BrandRegistry) ResolveAlias(normalized string) (string, int) {
	return resolvePrefix(r.aliasToBrand, normalized)
}

// ResolveCatalogBrand is the same lookup against the catalog-derived
// table, used as a fallback for single-word brands that need no alias.
func (r *BrandRegistry) ResolveCatalogBrand(normalized string) (string, int) {
	return resolvePrefix(r.catalogBrands, normalized)
}

// RecordCatalogBrand registers a brand observed in the enriched catalog.
// The first brand seen for a normalized key wins; later catalog rows with
// the same key do not overwrite.
func (r *BrandRegistry) RecordCatalogBrand(brand string) {
	key := Normalize(brand)
	if key == "" {
		return
	}
	if _, exists := r.catalogBrands[key]; !exists {
		r.catalogBrands[key] = brand
	}
}

func resolvePrefix(table map[string]string, normalized string) (string, int) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return "", 0
	}

	if len(tokens) >= 2 {
		if brand, ok := table[tokens[0]+" "+tokens[1]]; ok {
			return brand, 2
		}
	}
	if brand, ok := table[tokens[0]]; ok {
		return brand, 1
	}
	return "", 0
}
