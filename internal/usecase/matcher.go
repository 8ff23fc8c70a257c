package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/shivneri/backend/internal/domain"
)

// MatcherConfig holds configuration for the matcher. Thresholds are the
// maximum allowed [0,1] distance for a candidate to qualify; bonuses are
// subtracted from the distance, so they improve rank.
type MatcherConfig struct {
	Threshold          float64 // pool is the full catalog
	BrandThreshold     float64 // pool is brand-filtered
	WholeWordBonus     float64
	PrefixBonus        float64
	TopN               int
	MinTokenLength     int
	EnableDebugLogging bool
}

// Matcher performs approximate matching of residual query text against a
// candidate pool. Stateless between calls: it re-derives everything from
// the pool argument on every invocation, which is fine at catalog scale.
//
// Ordering contract: ascending adjusted distance, stable sort. Raw token
// distance is 0 for a substring hit anywhere in the field (matching is
// position-independent), otherwise 1 minus the best Jaro-Winkler
// similarity against the field's words, averaged over query tokens.
type Matcher struct {
	threshold          float64
	brandThreshold     float64
	wholeWordBonus     float64
	prefixBonus        float64
	topN               int
	minTokenLength     int
	enableDebugLogging bool
}

// NewMatcher creates a matcher, falling back to the original storefront's
// tuning for any knob left at zero.
func NewMatcher(config MatcherConfig) *Matcher {
	threshold := config.Threshold
	if threshold <= 0 {
		threshold = 0.40
	}
	brandThreshold := config.BrandThreshold
	if brandThreshold <= 0 {
		brandThreshold = 0.30
	}
	wholeWordBonus := config.WholeWordBonus
	if wholeWordBonus <= 0 {
		wholeWordBonus = 0.15
	}
	prefixBonus := config.PrefixBonus
	if prefixBonus <= 0 {
		prefixBonus = 0.10
	}
	topN := config.TopN
	if topN <= 0 {
		topN = 10
	}
	minTokenLength := config.MinTokenLength
	if minTokenLength <= 0 {
		minTokenLength = 2
	}

	return &Matcher{
		threshold:          threshold,
		brandThreshold:     brandThreshold,
		wholeWordBonus:     wholeWordBonus,
		prefixBonus:        prefixBonus,
		topN:               topN,
		minTokenLength:     minTokenLength,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Rank matches residual query text against each pool member's composite
// search field and category, re-scores with whole-word and prefix bonuses,
// deduplicates by product name (first occurrence wins) and truncates to
// the configured top-N. Empty pool or no qualifying candidate returns an
// empty slice, never an error.
func (m *Matcher) Rank(pool []domain.Product, residual string, brandFiltered bool) []domain.RankedProduct {
	tokens := m.queryTokens(residual)
	if len(tokens) == 0 || len(pool) == 0 {
		return []domain.RankedProduct{}
	}

	threshold := m.threshold
	if brandFiltered {
		threshold = m.brandThreshold
	}

	results := make([]domain.RankedProduct, 0, len(pool))
	for _, p := range pool {
		nameField := Normalize(p.NameSearch)
		categoryField := Normalize(p.Category)

		dist := fieldDistance(tokens, nameField)
		if cd := fieldDistance(tokens, categoryField); cd < dist {
			dist = cd
		}

		if dist > threshold {
			continue
		}

		adjusted := dist - m.bonuses(tokens, nameField)

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q | raw: %.3f | adjusted: %.3f", p.Name, dist, adjusted)
		}

		results = append(results, domain.RankedProduct{Product: p, Score: adjusted})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	results = DedupeByName(results)
	if len(results) > m.topN {
		results = results[:m.topN]
	}
	return results
}

// queryTokens splits the normalized residual on whitespace, dropping
// tokens shorter than the minimum length to avoid single-character noise
// matches.
func (m *Matcher) queryTokens(residual string) []string {
	var tokens []string
	for _, tok := range strings.Fields(Normalize(residual)) {
		if len([]rune(tok)) < m.minTokenLength {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// fieldDistance is the mean token distance of the query against one
// normalized field. An empty field matches nothing.
func fieldDistance(tokens []string, field string) float64 {
	if field == "" {
		return 1.0
	}

	words := strings.Fields(field)
	total := 0.0
	for _, tok := range tokens {
		total += tokenDistance(tok, field, words)
	}
	return total / float64(len(tokens))
}

// tokenDistance is 0 when the token occurs anywhere in the field as a
// substring, otherwise the best Jaro-Winkler distance against the field's
// individual words.
func tokenDistance(token, field string, words []string) float64 {
	if strings.Contains(field, token) {
		return 0
	}

	best := 1.0
	for _, w := range words {
		if d := 1 - matchr.JaroWinkler(token, w, false); d < best {
			best = d
		}
	}
	return best
}

// bonuses accumulates the per-token rank improvements: a whole-word hit in
// the search field and a field-starts-with hit. The field is already
// normalized, so word boundaries are single spaces.
func (m *Matcher) bonuses(tokens []string, field string) float64 {
	words := strings.Fields(field)
	bonus := 0.0
	for _, tok := range tokens {
		for _, w := range words {
			if w == tok {
				bonus += m.wholeWordBonus
				break
			}
		}
		if strings.HasPrefix(field, tok) {
			bonus += m.prefixBonus
		}
	}
	return bonus
}

// DedupeByName drops later results whose product name is identical to an
// earlier one; the first occurrence wins. Returns a fresh slice and leaves
// the input untouched, so callers merging results across repeated queries
// can keep reusing their slices.
func DedupeByName(results []domain.RankedProduct) []domain.RankedProduct {
	seen := make(map[string]bool, len(results))
	deduped := make([]domain.RankedProduct, 0, len(results))
	for _, r := range results {
		if seen[r.Product.Name] {
			continue
		}
		seen[r.Product.Name] = true
		deduped = append(deduped, r)
	}
	return deduped
}
