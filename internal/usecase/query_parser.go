package usecase

import (
	"strings"

	"github.com/shivneri/backend/internal/domain"
)

// QueryParser splits free user text into a leading brand and the residual
// search text, rewriting residual tokens through the keyword-synonym
// table. Pure given its registry: identical input always yields identical
// output, no network or storage access.
type QueryParser struct {
	registry *BrandRegistry
	synonyms map[string]string
}

// NewQueryParser creates a query parser bound to a brand registry and a
// token -> canonical-term synonym table.
func NewQueryParser(registry *BrandRegistry, synonyms map[string]string) *QueryParser {
	return &QueryParser{
		registry: registry,
		synonyms: synonyms,
	}
}

// Parse normalizes the raw text, detects a leading brand (static alias
// table first, then the catalog-derived lookup; two-token prefix before
// one-token in each), strips the consumed tokens and rewrites the rest
// via the synonym table. Empty input yields an empty ParsedQuery.
func (p *QueryParser) Parse(raw string) domain.ParsedQuery {
	normalized := Normalize(raw)
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return domain.ParsedQuery{}
	}

	brand, consumed := p.registry.ResolveAlias(normalized)
	if brand == "" {
		brand, consumed = p.registry.ResolveCatalogBrand(normalized)
	}

	rest := tokens[consumed:]
	words := make([]string, 0, len(rest))
	for _, tok := range rest {
		expansion := tok
		if canonical, ok := p.synonyms[tok]; ok {
			expansion = canonical
		}
		for _, w := range strings.Fields(expansion) {
			// An expansion can restate the word that precedes it, as in
			// "tomato ketchup" right after an explicit "tomato". Drop the
			// repeat so rewriting already-expanded text is a no-op.
			if len(words) > 0 && words[len(words)-1] == w {
				continue
			}
			words = append(words, w)
		}
	}

	return domain.ParsedQuery{
		Brand:    brand,
		Residual: strings.Join(words, " "),
	}
}
