package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

const cartKeyPrefix = "cart:"

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cart by session ID from Redis.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return getJSON[domain.Cart](ctx, r.client, cartKeyPrefix+sessionID, "cart",
		apperrors.NotFound("cart", sessionID))
}

// Save persists a cart to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return setJSON(ctx, r.client, cartKeyPrefix+cart.SessionID, "cart", cart, r.ttl)
}

// Delete removes a cart from Redis by session ID.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	return deleteKey(ctx, r.client, cartKeyPrefix+sessionID, "cart")
}
