// Package service implements the storefront business logic on top of the
// repositories, the catalog engine, and the event producer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/event"
	"github.com/vetrinalabs/storefront/internal/repository"
)

const defaultCurrency = "EUR"

// ProductGetter resolves products by ID. Satisfied by the catalog engine.
type ProductGetter interface {
	Get(id string) (domain.Product, error)
}

// AddItemInput holds the parameters for adding a product to the cart.
// Line details (name, unit price, image) are resolved from the catalog at add
// time, not supplied by the caller.
type AddItemInput struct {
	ProductID  string `json:"product_id" validate:"required"`
	VariantKey string `json:"variant_key"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityInput holds the parameters for setting a line quantity.
// Zero and negative values remove the line.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// CartService implements the business logic for cart operations. The cart is
// loaded, mutated, and saved as a whole on every operation; totals are always
// recomputed from the lines.
type CartService struct {
	repo     repository.CartRepository
	products ProductGetter
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, products ProductGetter, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart without persisting it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the session's cart. If a line with the same
// product and variant already exists, the quantities merge; otherwise a new
// line is appended, snapshotting the product's current name, price, and
// image.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	product, err := s.products.Get(input.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := domain.LineKey(input.ProductID, input.VariantKey)
	if i := cart.FindLine(key); i >= 0 {
		cart.Lines[i].Quantity += input.Quantity
	} else {
		variantKey := input.VariantKey
		if variantKey == "" {
			variantKey = domain.DefaultVariantKey
		}
		line := domain.CartLine{
			ProductID:  product.ID,
			VariantKey: variantKey,
			Name:       product.Name,
			UnitPrice:  product.Price,
			Quantity:   input.Quantity,
			Available:  product.InStock,
		}
		if len(product.Images) > 0 {
			line.Image = product.Images[0]
		}
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetQuantity sets the quantity of a cart line. Quantities of zero or less
// remove the line; setting a quantity on an absent line is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID, variantKey string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID, variantKey)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := domain.LineKey(productID, variantKey)
	i := cart.FindLine(key)
	if i < 0 {
		return cart, nil
	}
	cart.Lines[i].Quantity = quantity

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem removes a cart line by product and variant. Removing an absent
// line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, variantKey string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := domain.LineKey(productID, variantKey)
	i := cart.FindLine(key)
	if i < 0 {
		return cart, nil
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart removes all lines from the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// saveCart persists the cart and publishes cart.updated. Publish failures are
// logged, not returned: the cart state in Redis is authoritative.
func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Lines:     []domain.CartLine{},
		Currency:  defaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
