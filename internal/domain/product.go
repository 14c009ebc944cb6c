package domain

// Product is an immutable catalog record. Products are sourced entirely from
// the catalog fixtures and never mutated by the storefront.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            int64    `json:"price"`
	OriginalPrice    *int64   `json:"original_price,omitempty"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description,omitempty"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"review_count"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand"`
	Images           []string `json:"images,omitempty"`
	Colors           []string `json:"colors,omitempty"`
	Features         []string `json:"features,omitempty"`
	InStock          bool     `json:"in_stock"`
	IsNew            bool     `json:"is_new,omitempty"`
	IsOnSale         bool     `json:"is_on_sale,omitempty"`
	DiscountPercent  int      `json:"discount_percent,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Sort keys for catalog queries.
const (
	SortRelevance   = "relevance"
	SortPriceAsc    = "price-asc"
	SortPriceDesc   = "price-desc"
	SortNewest      = "newest"
	SortBestselling = "bestselling"
	SortRating      = "rating"
)

// ValidSortKeys returns the list of valid sort keys.
func ValidSortKeys() []string {
	return []string{SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest, SortBestselling, SortRating}
}

// IsValidSort checks whether the given string is a valid sort key.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortKeys() {
		if s == sort {
			return true
		}
	}
	return false
}

// PriceRange bounds product prices in cents, inclusive on both ends.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterCriteria holds the optional catalog filter fields. All present
// filters are conjunctive: a product survives only if it satisfies every one.
type FilterCriteria struct {
	Categories  []string    `json:"categories,omitempty"`
	Brands      []string    `json:"brands,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	MinRating   *float64    `json:"min_rating,omitempty"`
	InStockOnly bool        `json:"in_stock_only,omitempty"`
	OnSaleOnly  bool        `json:"on_sale_only,omitempty"`
	Search      string      `json:"search,omitempty"`
}

// QueryResult holds one page of an ordered, filtered catalog query.
type QueryResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	HasMore  bool      `json:"has_more"`
}
