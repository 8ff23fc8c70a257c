package domain

// RawProduct is a catalog record as received from the catalog source.
// Price may arrive as a number or a numeric string; it is coerced at the
// catalog normalization boundary and never trusted raw beyond it.
type RawProduct struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    any    `json:"price"`
}

// Product is an enriched catalog record, immutable once built.
type Product struct {
	Name           string  `json:"name"`
	NameExpanded   string  `json:"nameExpanded"`
	NameSearch     string  `json:"nameSearch"`
	CanonicalBrand string  `json:"canonicalBrand"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
}

// ParsedQuery is the result of splitting a user query into a leading brand
// and the residual search text. Brand is empty when no brand was detected.
type ParsedQuery struct {
	Brand    string `json:"brand"`
	Residual string `json:"residual"`
}

// RankedProduct pairs a product with its adjusted match distance.
// Lower score means a better match; results are sorted ascending.
type RankedProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// SearchResult is an ordered list of matches plus the brand filter that
// was applied, if any.
type SearchResult struct {
	Brand    string          `json:"brand,omitempty"`
	Products []RankedProduct `json:"products"`
}

// ChatReply is one bot turn: either a list of matched products or a plain
// text reply (recipe, fallback completion, transient notice).
type ChatReply struct {
	Text     string          `json:"reply,omitempty"`
	Brand    string          `json:"brand,omitempty"`
	Products []RankedProduct `json:"products,omitempty"`
	Source   string          `json:"source"` // "catalog", "recipe", "cache", "completion", "notice"
}

// CartItem is one checkout line as submitted by the storefront.
type CartItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}
