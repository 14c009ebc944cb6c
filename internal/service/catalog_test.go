package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/catalog"
	"github.com/vetrinalabs/storefront/internal/domain"
)

func newTestCatalogService(t *testing.T, src *stubSource) *CatalogService {
	t.Helper()
	svc := NewCatalogService(src, catalog.New(), newTestLogger())
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func catalogStubSource() *stubSource {
	return &stubSource{
		products: []domain.Product{
			{ID: "p1", Name: "Wool Runner", Category: "shoes", Price: 9900, Rating: 4.6, InStock: true},
			{ID: "p2", Name: "Trail Blazer", Category: "shoes", Price: 12900, Rating: 4.2, InStock: true, IsOnSale: true},
			{ID: "p3", Name: "Linen Shirt", Category: "clothing", Price: 5900, Rating: 4.8, InStock: true, IsNew: true},
		},
		cats: []domain.Category{
			{ID: "cat-1", Name: "Shoes", Slug: "shoes", ProductCount: 99},
			{ID: "cat-2", Name: "Clothing", Slug: "clothing"},
			{ID: "cat-3", Name: "Accessories", Slug: "accessories"},
		},
	}
}

func TestCatalogService_Load_DerivesProductCounts(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	cats := svc.Categories(context.Background())
	require.Len(t, cats, 3)
	assert.Equal(t, 2, cats[0].ProductCount) // fixture said 99
	assert.Equal(t, 1, cats[1].ProductCount)
	assert.Equal(t, 0, cats[2].ProductCount)
}

func TestCatalogService_Load_SourceUnavailable(t *testing.T) {
	src := &stubSource{err: apperrors.Unavailable("products.json", errors.New("host down"))}
	svc := NewCatalogService(src, catalog.New(), newTestLogger())

	err := svc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
}

func TestCatalogService_Query(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	res, err := svc.Query(context.Background(), domain.FilterCriteria{Categories: []string{"shoes"}}, domain.SortPriceAsc, 1, 12)
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "p1", res.Products[0].ID)
}

func TestCatalogService_GetProduct(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	p, err := svc.GetProduct(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", p.Name)

	_, err = svc.GetProduct(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.GetProduct(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogService_Related_DefaultsLimit(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	related, err := svc.Related(context.Background(), "p1", 0)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "p2", related[0].ID)
}

func TestCatalogService_Featured_DefaultsLimit(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	featured := svc.Featured(context.Background(), 0)
	// p2 on sale, p3 new, p1 rated 4.6.
	assert.Len(t, featured, 3)
}

func TestCatalogService_GetCategoryBySlug(t *testing.T) {
	svc := newTestCatalogService(t, catalogStubSource())

	c, err := svc.GetCategoryBySlug(context.Background(), "Shoes")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", c.ID)

	_, err = svc.GetCategoryBySlug(context.Background(), "toys")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogService_Reload_ReplacesCatalog(t *testing.T) {
	src := catalogStubSource()
	svc := newTestCatalogService(t, src)

	src.products = src.products[:1]
	src.cats = src.cats[:1]
	require.NoError(t, svc.Load(context.Background()))

	res, err := svc.Query(context.Background(), domain.FilterCriteria{}, "", 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, svc.Categories(context.Background()), 1)
}
