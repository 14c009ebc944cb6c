package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

const (
	orderKeyPrefix      = "order:"
	userOrdersKeyPrefix = "orders:user:"
)

// OrderRepository implements repository.OrderRepository using Redis. Orders
// are stored without expiry: one JSON blob per order plus a per-user list of
// order IDs, newest first.
type OrderRepository struct {
	client *redis.Client
}

// NewOrderRepository creates a new Redis-backed order repository.
func NewOrderRepository(client *redis.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return getJSON[domain.Order](ctx, r.client, orderKeyPrefix+orderID, "order",
		apperrors.NotFound("order", orderID))
}

// Save persists an order and prepends it to the owner's order list. The blob
// write and the list push commit together.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, orderKeyPrefix+order.ID, data, 0)
	if order.UserID != "" {
		pipe.LPush(ctx, userOrdersKeyPrefix+order.UserID, order.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save order: %w", err)
	}

	return nil
}

// ListByUser retrieves all orders placed by a user, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ids, err := r.client.LRange(ctx, userOrdersKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list user orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.Get(ctx, id)
		if err != nil {
			// Skip dangling IDs whose order blob has been removed.
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}
