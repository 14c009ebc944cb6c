package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vetrinalabs/storefront/pkg/health"
	"github.com/vetrinalabs/storefront/pkg/middleware"

	"github.com/vetrinalabs/storefront/internal/service"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	userService *service.UserService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(catalogService, logger)
	cartHandler := NewCartHandler(cartService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	authHandler := NewAuthHandler(userService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog endpoints are public and session-free.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/featured", catalogHandler.FeaturedProducts)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Get("/{id}/related", catalogHandler.RelatedProducts)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCategories)
			r.Get("/{slug}", catalogHandler.GetCategory)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(SessionIDFromHeader)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}/{variantKey}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}/{variantKey}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(SessionIDFromHeader)
			r.Use(OptionalAuth(userService))

			r.Get("/", checkoutHandler.GetState)
			r.Put("/", checkoutHandler.SubmitStep)
			r.Post("/order", checkoutHandler.PlaceOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		r.With(Authenticated(userService)).Get("/profile", authHandler.Profile)

		r.Route("/orders", func(r chi.Router) {
			r.With(Authenticated(userService)).Get("/", authHandler.ListOrders)

			// Order detail is reachable by the owning user or, for guest
			// orders, by the placing session.
			r.With(OptionalAuth(userService), OptionalSessionID).Get("/{id}", authHandler.GetOrder)
		})
	})

	return r
}
