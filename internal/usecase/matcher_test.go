package usecase

import (
	"testing"

	"github.com/shivneri/backend/internal/domain"
)

func simpleProduct(name, category string, price float64) domain.Product {
	return domain.Product{
		Name:           name,
		NameExpanded:   name,
		NameSearch:     name,
		CanonicalBrand: "Test",
		Category:       category,
		Price:          price,
	}
}

func TestRank(t *testing.T) {
	m := NewMatcher(MatcherConfig{})

	t.Run("empty pool returns empty result", func(t *testing.T) {
		got := m.Rank(nil, "cheese", false)
		if len(got) != 0 {
			t.Errorf("Rank() = %v, want empty", got)
		}
	})

	t.Run("empty residual returns empty result", func(t *testing.T) {
		pool := []domain.Product{simpleProduct("Amul Cheese", "Cheese", 150)}
		got := m.Rank(pool, "", false)
		if len(got) != 0 {
			t.Errorf("Rank() = %v, want empty", got)
		}
	})

	t.Run("single-character tokens are ignored", func(t *testing.T) {
		pool := []domain.Product{simpleProduct("Amul Cheese", "Cheese", 150)}
		got := m.Rank(pool, "a c e", false)
		if len(got) != 0 {
			t.Errorf("Rank() = %v, want empty for sub-minimum tokens", got)
		}
	})

	t.Run("exact name ranks first ahead of partial matches", func(t *testing.T) {
		pool := []domain.Product{
			simpleProduct("Amul Cheese Spread", "Cheese", 120),
			simpleProduct("Amul Cheese Slices", "Cheese", 150),
			simpleProduct("Amul Butter", "Dairy", 60),
		}

		got := m.Rank(pool, "Amul Cheese Slices", false)
		if len(got) == 0 {
			t.Fatal("Rank() returned no results")
		}
		if got[0].Product.Name != "Amul Cheese Slices" {
			t.Errorf("rank 0 = %q, want Amul Cheese Slices", got[0].Product.Name)
		}
		for _, r := range got[1:] {
			if r.Score < got[0].Score {
				t.Errorf("partial match %q scored %.3f, better than exact %.3f",
					r.Product.Name, r.Score, got[0].Score)
			}
		}
	})

	t.Run("matches on category field", func(t *testing.T) {
		pool := []domain.Product{
			simpleProduct("GC Red Paste", "Ketchup", 120),
			simpleProduct("Disano Pasta Penne", "Pasta", 180),
		}

		got := m.Rank(pool, "ketchup", false)
		if len(got) == 0 {
			t.Fatal("Rank() returned no results")
		}
		if got[0].Product.Name != "GC Red Paste" {
			t.Errorf("rank 0 = %q, want the category hit", got[0].Product.Name)
		}
	})

	t.Run("tolerates typos within the threshold", func(t *testing.T) {
		pool := []domain.Product{simpleProduct("Amul Mozzarella Cheese", "Cheese", 300)}

		got := m.Rank(pool, "mozzarela", false)
		if len(got) != 1 {
			t.Errorf("Rank() matched %d products for a close typo, want 1", len(got))
		}
	})

	t.Run("rejects unrelated queries", func(t *testing.T) {
		pool := []domain.Product{
			simpleProduct("Amul Cheese", "Cheese", 150),
			simpleProduct("GC Tomato Ketchup", "Ketchup", 120),
		}

		got := m.Rank(pool, "qwxzy", false)
		if len(got) != 0 {
			t.Errorf("Rank() = %v, want empty for unrelated query", got)
		}
	})

	t.Run("deduplicates identical names keeping the first", func(t *testing.T) {
		pool := []domain.Product{
			simpleProduct("Amul Cheese", "Cheese", 100),
			simpleProduct("Amul Cheese", "Cheese", 200),
		}

		got := m.Rank(pool, "cheese", false)
		if len(got) != 1 {
			t.Fatalf("Rank() returned %d results, want 1 after dedupe", len(got))
		}
		if got[0].Product.Price != 100 {
			t.Errorf("kept product price = %v, want first-encountered 100", got[0].Product.Price)
		}
	})

	t.Run("truncates to top N", func(t *testing.T) {
		small := NewMatcher(MatcherConfig{TopN: 2})
		pool := []domain.Product{
			simpleProduct("Cheese Block", "Cheese", 1),
			simpleProduct("Cheese Slices", "Cheese", 2),
			simpleProduct("Cheese Spread", "Cheese", 3),
		}

		got := small.Rank(pool, "cheese", false)
		if len(got) != 2 {
			t.Errorf("Rank() returned %d results, want top 2", len(got))
		}
	})

	t.Run("results sorted ascending by adjusted score", func(t *testing.T) {
		pool := []domain.Product{
			simpleProduct("Veg Mayonnaise Jar", "Mayonnaise", 90),
			simpleProduct("Mayonnaise", "Mayonnaise", 80),
			simpleProduct("Garlic Mayonnaise Dip", "Dips", 110),
		}

		got := m.Rank(pool, "mayonnaise", false)
		for i := 1; i < len(got); i++ {
			if got[i].Score < got[i-1].Score {
				t.Errorf("results not sorted: score[%d]=%.3f > score[%d]=%.3f",
					i-1, got[i-1].Score, i, got[i].Score)
			}
		}
		if len(got) == 0 || got[0].Product.Name != "Mayonnaise" {
			t.Errorf("rank 0 = %v, want the prefix + whole-word hit Mayonnaise", got)
		}
	})
}

func TestDedupeByName(t *testing.T) {
	results := []domain.RankedProduct{
		{Product: simpleProduct("A", "X", 1), Score: 0.1},
		{Product: simpleProduct("A", "X", 3), Score: 0.2},
		{Product: simpleProduct("B", "X", 2), Score: 0.3},
	}

	got := DedupeByName(results)
	if len(got) != 2 {
		t.Fatalf("DedupeByName() returned %d results, want 2", len(got))
	}
	if got[0].Product.Price != 1 {
		t.Errorf("first A price = %v, want 1 (first occurrence wins)", got[0].Product.Price)
	}
	if got[1].Product.Name != "B" {
		t.Errorf("second result = %q, want B", got[1].Product.Name)
	}

	// The input slice stays intact for callers that reuse it
	if results[1].Product.Name != "A" || results[1].Product.Price != 3 {
		t.Errorf("input mutated: results[1] = %v", results[1].Product)
	}
}

func TestNewMatcherDefaults(t *testing.T) {
	m := NewMatcher(MatcherConfig{})

	if m.threshold != 0.40 {
		t.Errorf("threshold = %v, want 0.40", m.threshold)
	}
	if m.brandThreshold != 0.30 {
		t.Errorf("brandThreshold = %v, want 0.30", m.brandThreshold)
	}
	if m.wholeWordBonus != 0.15 {
		t.Errorf("wholeWordBonus = %v, want 0.15", m.wholeWordBonus)
	}
	if m.prefixBonus != 0.10 {
		t.Errorf("prefixBonus = %v, want 0.10", m.prefixBonus)
	}
	if m.topN != 10 {
		t.Errorf("topN = %v, want 10", m.topN)
	}
	if m.minTokenLength != 2 {
		t.Errorf("minTokenLength = %v, want 2", m.minTokenLength)
	}
}
