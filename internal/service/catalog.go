package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/catalog"
	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/repository"
)

// DefaultFeaturedLimit caps the featured product strip.
const DefaultFeaturedLimit = 6

// DefaultRelatedLimit caps the related products strip.
const DefaultRelatedLimit = 4

// CatalogService serves catalog queries from the in-memory engine, loading
// and reloading the product and category set from the fixture source.
type CatalogService struct {
	source repository.CatalogSource
	engine *catalog.Engine
	logger *slog.Logger

	mu         sync.RWMutex
	categories []domain.Category
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source repository.CatalogSource, engine *catalog.Engine, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		engine: engine,
		logger: logger,
	}
}

// Load fetches products and categories from the fixture source and replaces
// the engine's contents. Called at startup and on demand to pick up fixture
// changes.
func (s *CatalogService) Load(ctx context.Context) error {
	products, err := s.source.Products(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	categories, err := s.source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	s.engine.Load(products)

	// Product counts are derived from the loaded set, not trusted from the
	// category fixture.
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[strings.ToLower(p.Category)]++
	}
	for i := range categories {
		categories[i].ProductCount = counts[strings.ToLower(categories[i].Slug)]
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.Int("products", len(products)),
		slog.Int("categories", len(categories)),
	)

	return nil
}

// Query filters, orders, and paginates the catalog.
func (s *CatalogService) Query(ctx context.Context, criteria domain.FilterCriteria, sort string, page, perPage int) (*domain.QueryResult, error) {
	return s.engine.Query(criteria, sort, page, perPage)
}

// GetProduct returns a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, apperrors.InvalidInput("product id is required")
	}
	return s.engine.Get(id)
}

// Related returns products sharing the given product's category.
func (s *CatalogService) Related(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return s.engine.Related(productID, limit)
}

// Featured returns the featured product selection.
func (s *CatalogService) Featured(ctx context.Context, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.engine.Featured(limit)
}

// Categories returns all catalog categories.
func (s *CatalogService) Categories(ctx context.Context) []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// GetCategoryBySlug returns the category with the given slug.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Slug, slug) {
			return c, nil
		}
	}
	return domain.Category{}, apperrors.NotFound("category", slug)
}
