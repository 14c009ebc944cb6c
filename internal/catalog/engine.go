// Package catalog implements the in-memory catalog query engine: filtering,
// ordering, and pagination over the fixture-loaded product set.
package catalog

import (
	"math"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

// FeaturedMinRating is the rating at which a product qualifies as featured
// even when it is neither new nor on sale.
const FeaturedMinRating = 4.5

// Engine answers catalog queries against an in-memory product set.
// The set is replaced wholesale on (re)load; queries never perform I/O.
// Thread-safe via sync.RWMutex.
//
// Products keep their load order, and every sort is stable, so products that
// compare equal under a sort key are always returned in catalog order.
type Engine struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]int
}

// New creates an empty catalog engine.
func New() *Engine {
	return &Engine{
		byID: make(map[string]int),
	}
}

// Load replaces the entire product set.
func (e *Engine) Load(products []domain.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.products = make([]domain.Product, len(products))
	copy(e.products, products)

	e.byID = make(map[string]int, len(products))
	for i := range e.products {
		e.byID[e.products[i].ID] = i
	}
}

// Len returns the number of products currently loaded.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.products)
}

// Get returns the product with the given ID.
func (e *Engine) Get(id string) (domain.Product, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i, ok := e.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return e.products[i], nil
}

// Query filters, orders, and paginates the product set.
//
// Filters are conjunctive; the free-text search matches case-insensitively
// against name, description, brand, and tags. Page numbering starts at 1;
// non-positive page or perPage values are rejected (HTTP callers are expected
// to clamp before calling).
func (e *Engine) Query(criteria domain.FilterCriteria, sortKey string, page, perPage int) (*domain.QueryResult, error) {
	if page < 1 {
		return nil, apperrors.InvalidInput("page must be at least 1")
	}
	if perPage < 1 {
		return nil, apperrors.InvalidInput("perPage must be at least 1")
	}
	if sortKey != "" && !domain.IsValidSort(sortKey) {
		return nil, apperrors.InvalidInput("unknown sort key: " + sortKey)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]domain.Product, 0, len(e.products))
	search := strings.ToLower(criteria.Search)
	for _, p := range e.products {
		if matches(p, criteria, search) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, sortKey)

	// A page past the end yields an empty window; the guard also keeps
	// (page-1)*perPage from overflowing for absurdly large page numbers.
	total := len(matched)
	start := total
	if page-1 <= math.MaxInt/perPage {
		if s := (page - 1) * perPage; s < total {
			start = s
		}
	}
	end := start + perPage
	if end < start || end > total {
		end = total
	}

	return &domain.QueryResult{
		Products: matched[start:end],
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		HasMore:  end < total,
	}, nil
}

// Related returns up to limit products sharing the given product's category,
// excluding the product itself, ordered by rating descending.
func (e *Engine) Related(productID string, limit int) ([]domain.Product, error) {
	if limit < 1 {
		return nil, apperrors.InvalidInput("limit must be at least 1")
	}

	current, err := e.Get(productID)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	related := make([]domain.Product, 0, limit)
	for _, p := range e.products {
		if p.ID != productID && p.Category == current.Category {
			related = append(related, p)
		}
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Rating > related[j].Rating
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// Featured returns up to limit highlight-worthy products: on sale, new, or
// highly rated, with sale items first and rating breaking ties.
func (e *Engine) Featured(limit int) []domain.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	featured := make([]domain.Product, 0, limit)
	for _, p := range e.products {
		if p.IsOnSale || p.IsNew || p.Rating >= FeaturedMinRating {
			featured = append(featured, p)
		}
	}

	sort.SliceStable(featured, func(i, j int) bool {
		if featured[i].IsOnSale != featured[j].IsOnSale {
			return featured[i].IsOnSale
		}
		return featured[i].Rating > featured[j].Rating
	})

	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// matches checks whether a product satisfies every present filter.
func matches(p domain.Product, c domain.FilterCriteria, search string) bool {
	if len(c.Categories) > 0 && !containsFold(c.Categories, p.Category) {
		return false
	}

	if len(c.Brands) > 0 && !containsFold(c.Brands, p.Brand) {
		return false
	}

	if c.PriceRange != nil {
		if p.Price < c.PriceRange.Min || p.Price > c.PriceRange.Max {
			return false
		}
	}

	if c.MinRating != nil && p.Rating < *c.MinRating {
		return false
	}

	if c.InStockOnly && !p.InStock {
		return false
	}

	if c.OnSaleOnly && !p.IsOnSale {
		return false
	}

	if search != "" && !matchesSearch(p, search) {
		return false
	}

	return true
}

// matchesSearch reports whether the lowercased search term appears in the
// product's name, description, brand, or any tag.
func matchesSearch(p domain.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Brand), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// sortProducts orders the matched products in place. Sorts are stable so
// equal keys keep catalog order.
func sortProducts(products []domain.Product, sortKey string) {
	switch sortKey {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsNew && !products[j].IsNew
		})
	case domain.SortBestselling:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// Relevance: on-sale first, then new, then rating descending.
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].IsOnSale != products[j].IsOnSale {
				return products[i].IsOnSale
			}
			if products[i].IsNew != products[j].IsNew {
				return products[i].IsNew
			}
			return products[i].Rating > products[j].Rating
		})
	}
}
