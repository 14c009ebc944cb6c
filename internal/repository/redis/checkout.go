package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

const checkoutKeyPrefix = "checkout:"

// CheckoutRepository implements repository.CheckoutRepository using Redis.
// Checkout state shares the cart's lifetime: abandoned wizards expire.
type CheckoutRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutRepository creates a new Redis-backed checkout state repository.
func NewCheckoutRepository(client *redis.Client, ttl time.Duration) *CheckoutRepository {
	return &CheckoutRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the checkout state for a session.
func (r *CheckoutRepository) Get(ctx context.Context, sessionID string) (*domain.CheckoutState, error) {
	return getJSON[domain.CheckoutState](ctx, r.client, checkoutKeyPrefix+sessionID, "checkout",
		apperrors.NotFound("checkout", sessionID))
}

// Save persists the checkout state with the configured TTL.
func (r *CheckoutRepository) Save(ctx context.Context, state *domain.CheckoutState) error {
	return setJSON(ctx, r.client, checkoutKeyPrefix+state.SessionID, "checkout", state, r.ttl)
}

// Delete discards the checkout state for a session.
func (r *CheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	return deleteKey(ctx, r.client, checkoutKeyPrefix+sessionID, "checkout")
}
