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

func sampleCheckoutState() *domain.CheckoutState {
	return &domain.CheckoutState{
		SessionID: "sess-001",
		Step:      domain.CheckoutStepShipping,
		Address: &domain.ShippingAddress{
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Moreau",
			Street:    "12 Rue des Lilas",
			City:      "Lyon",
			ZipCode:   "69003",
			Province:  "Rhone",
			Country:   "FR",
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestCheckoutRepository_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCheckoutRepository(client, time.Hour)
	ctx := context.Background()

	state := sampleCheckoutState()
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestCheckoutRepository_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCheckoutRepository(client, time.Hour)

	_, err := repo.Get(context.Background(), "no-such-session")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCheckoutRepository_AbandonedStateExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCheckoutRepository(client, time.Hour)
	ctx := context.Background()

	state := sampleCheckoutState()
	require.NoError(t, repo.Save(ctx, state))

	mr.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, state.SessionID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCheckoutRepository_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCheckoutRepository(client, time.Hour)
	ctx := context.Background()

	state := sampleCheckoutState()
	require.NoError(t, repo.Save(ctx, state))
	require.NoError(t, repo.Delete(ctx, state.SessionID))

	_, err := repo.Get(ctx, state.SessionID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
