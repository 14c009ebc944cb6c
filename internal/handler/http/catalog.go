// Package http exposes the storefront over a chi-routed JSON API.
package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"
	"github.com/vetrinalabs/storefront/pkg/httputil"
	"github.com/vetrinalabs/storefront/pkg/pagination"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/service"
)

// CatalogHandler handles HTTP requests for product and category endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sort := r.URL.Query().Get("sort")
	if sort != "" && !domain.IsValidSort(sort) {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown sort key: "+sort), h.logger)
		return
	}

	params := pagination.FromRequest(r)

	result, err := h.service.Query(r.Context(), criteria, sort, params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(result.Products, result.Total, params),
	})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// RelatedProducts handles GET /api/v1/products/{id}/related
func (h *CatalogHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 0)

	related, err := h.service.Related(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: related})
}

// FeaturedProducts handles GET /api/v1/products/featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 0)

	featured := h.service.Featured(r.Context(), limit)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: featured})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// GetCategory handles GET /api/v1/categories/{slug}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// criteriaFromQuery builds filter criteria from the list endpoint's query
// string. Repeated category and brand params accumulate.
func criteriaFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	q := r.URL.Query()

	criteria := domain.FilterCriteria{
		Categories:  q["category"],
		Brands:      q["brand"],
		Search:      q.Get("q"),
		InStockOnly: q.Get("in_stock") == "true",
		OnSaleOnly:  q.Get("on_sale") == "true",
	}

	minSet, maxSet := q.Get("min_price") != "", q.Get("max_price") != ""
	if minSet || maxSet {
		pr := domain.PriceRange{Min: 0, Max: math.MaxInt64}
		if minSet {
			v, err := strconv.ParseInt(q.Get("min_price"), 10, 64)
			if err != nil || v < 0 {
				return criteria, apperrors.InvalidInput("min_price must be a non-negative integer")
			}
			pr.Min = v
		}
		if maxSet {
			v, err := strconv.ParseInt(q.Get("max_price"), 10, 64)
			if err != nil || v < 0 {
				return criteria, apperrors.InvalidInput("max_price must be a non-negative integer")
			}
			pr.Max = v
		}
		if pr.Min > pr.Max {
			return criteria, apperrors.InvalidInput("min_price must not exceed max_price")
		}
		criteria.PriceRange = &pr
	}

	if s := q.Get("min_rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 5 {
			return criteria, apperrors.InvalidInput("min_rating must be between 0 and 5")
		}
		criteria.MinRating = &v
	}

	return criteria, nil
}

func intQuery(r *http.Request, name string, fallback int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
