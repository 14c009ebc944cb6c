package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

func sampleOrder(id, userID string) *domain.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Order{
		ID:        id,
		SessionID: "sess-001",
		UserID:    userID,
		Lines: []domain.CartLine{
			{ProductID: "prod-1", VariantKey: "default", Name: "Canvas Tote", UnitPrice: 3900, Quantity: 1},
		},
		Subtotal:     3900,
		ShippingCost: 590,
		Tax:          858,
		Total:        5348,
		Currency:     "EUR",
		Status:       domain.OrderStatusPlaced,
		CreatedAt:    now,
	}
}

func TestOrderRepository_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOrderRepository(client)
	ctx := context.Background()

	order := sampleOrder("ord-1", "user-1")
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.Get(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestOrderRepository_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOrderRepository(client)

	_, err := repo.Get(context.Background(), "no-such-order")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOrderRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleOrder("ord-1", "user-1")))
	require.NoError(t, repo.Save(ctx, sampleOrder("ord-2", "user-1")))
	require.NoError(t, repo.Save(ctx, sampleOrder("ord-3", "user-2")))

	orders, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ord-2", orders[0].ID)
	assert.Equal(t, "ord-1", orders[1].ID)
}

func TestOrderRepository_ListByUser_Empty(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOrderRepository(client)

	orders, err := repo.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_GuestOrderNotListed(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewOrderRepository(client)
	ctx := context.Background()

	guest := sampleOrder("ord-g", "")
	require.NoError(t, repo.Save(ctx, guest))

	got, err := repo.Get(ctx, "ord-g")
	require.NoError(t, err)
	assert.Equal(t, guest, got)

	orders, err := repo.ListByUser(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
