package usecase

import (
	"testing"
)

func testAliases() map[string][]string {
	return map[string][]string{
		"Golden Crown": {"gc", "golden crown"},
		"Wingreens":    {"wg", "wingreens", "wingreen"},
		"Fresh2Go":     {"fresh2go", "fresh 2 go", "fresh-2-go"},
	}
}

func TestResolveAlias(t *testing.T) {
	registry := NewBrandRegistry(testAliases())

	testCases := []struct {
		name         string
		input        string
		wantBrand    string
		wantConsumed int
	}{
		{
			name:         "one-token code",
			input:        "gc tomato ketchup",
			wantBrand:    "Golden Crown",
			wantConsumed: 1,
		},
		{
			name:         "two-token alias wins before one-token",
			input:        "golden crown tomato ketchup",
			wantBrand:    "Golden Crown",
			wantConsumed: 2,
		},
		{
			name:         "alias spelling variant",
			input:        "wingreen mayo",
			wantBrand:    "Wingreens",
			wantConsumed: 1,
		},
		{
			name:         "hyphenated alias normalizes to one token",
			input:        "fresh2go wraps",
			wantBrand:    "Fresh2Go",
			wantConsumed: 1,
		},
		{
			name:         "no match",
			input:        "tomato ketchup",
			wantBrand:    "",
			wantConsumed: 0,
		},
		{
			name:         "empty input",
			input:        "",
			wantBrand:    "",
			wantConsumed: 0,
		},
		{
			name:         "single token input",
			input:        "gc",
			wantBrand:    "Golden Crown",
			wantConsumed: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			brand, consumed := registry.ResolveAlias(tc.input)
			if brand != tc.wantBrand || consumed != tc.wantConsumed {
				t.Errorf("ResolveAlias(%q) = (%q, %d), want (%q, %d)",
					tc.input, brand, consumed, tc.wantBrand, tc.wantConsumed)
			}
		})
	}
}

func TestCatalogBrandLookup(t *testing.T) {
	t.Run("records and resolves catalog brands", func(t *testing.T) {
		registry := NewBrandRegistry(testAliases())
		registry.RecordCatalogBrand("Amul")

		brand, consumed := registry.ResolveCatalogBrand("amul cheese")
		if brand != "Amul" || consumed != 1 {
			t.Errorf("ResolveCatalogBrand() = (%q, %d), want (Amul, 1)", brand, consumed)
		}
	})

	t.Run("first write wins", func(t *testing.T) {
		registry := NewBrandRegistry(testAliases())
		registry.RecordCatalogBrand("Amul")
		registry.RecordCatalogBrand("AMUL")

		brand, _ := registry.ResolveCatalogBrand("amul butter")
		if brand != "Amul" {
			t.Errorf("ResolveCatalogBrand() = %q, want first-recorded Amul", brand)
		}
	})

	t.Run("empty brand is not recorded", func(t *testing.T) {
		registry := NewBrandRegistry(testAliases())
		registry.RecordCatalogBrand("")
		registry.RecordCatalogBrand("   ")

		brand, consumed := registry.ResolveCatalogBrand("anything")
		if brand != "" || consumed != 0 {
			t.Errorf("ResolveCatalogBrand() = (%q, %d), want no match", brand, consumed)
		}
	})

	t.Run("alias table is not consulted by catalog lookup", func(t *testing.T) {
		registry := NewBrandRegistry(testAliases())

		brand, _ := registry.ResolveCatalogBrand("gc ketchup")
		if brand != "" {
			t.Errorf("ResolveCatalogBrand() = %q, want no match for alias-only entry", brand)
		}
	})
}
