// Package repository defines the persistence interfaces for the storefront.
// Implementations live in subpackages: redis for session-scoped state and
// fixture for the static catalog data source.
package repository

import (
	"context"

	"github.com/vetrinalabs/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID. Returns a NotFound error when
	// no cart has been saved for the session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by session ID.
	Delete(ctx context.Context, sessionID string) error
}

// CheckoutRepository persists in-progress checkout wizard state.
type CheckoutRepository interface {
	// Get retrieves the checkout state for a session.
	Get(ctx context.Context, sessionID string) (*domain.CheckoutState, error)

	// Save persists the checkout state for a session.
	Save(ctx context.Context, state *domain.CheckoutState) error

	// Delete discards the checkout state for a session.
	Delete(ctx context.Context, sessionID string) error
}

// OrderRepository persists placed orders.
type OrderRepository interface {
	// Get retrieves an order by ID.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Save persists an order.
	Save(ctx context.Context, order *domain.Order) error

	// ListByUser retrieves all orders placed by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}

// SessionRepository persists authenticated sessions keyed by token.
type SessionRepository interface {
	// Get retrieves a session by its token.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Save persists a session until its expiry.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes a session by its token.
	Delete(ctx context.Context, token string) error
}

// CatalogSource loads the static catalog: products, categories, shipping
// options, payment methods, and user accounts.
type CatalogSource interface {
	// Products loads the full product set.
	Products(ctx context.Context) ([]domain.Product, error)

	// Categories loads the category list.
	Categories(ctx context.Context) ([]domain.Category, error)

	// ShippingOptions loads the available shipping methods.
	ShippingOptions(ctx context.Context) ([]domain.ShippingOption, error)

	// PaymentMethods loads the available payment methods.
	PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	// Users loads the registered user accounts.
	Users(ctx context.Context) ([]domain.User, error)
}
