package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"
	pkgkafka "github.com/vetrinalabs/storefront/pkg/kafka"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/event"
)

// --- Mock Repositories ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockCheckoutRepository struct {
	mock.Mock
}

func (m *mockCheckoutRepository) Get(ctx context.Context, sessionID string) (*domain.CheckoutState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutState), args.Error(1)
}

func (m *mockCheckoutRepository) Save(ctx context.Context, state *domain.CheckoutState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *mockCheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// --- Stub Catalog Source ---

// stubSource serves fixed fixture data without I/O.
type stubSource struct {
	products []domain.Product
	shipping []domain.ShippingOption
	payments []domain.PaymentMethod
	users    []domain.User
	cats     []domain.Category
	err      error
}

func (s *stubSource) Products(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubSource) Categories(context.Context) ([]domain.Category, error) {
	return s.cats, s.err
}

func (s *stubSource) ShippingOptions(context.Context) ([]domain.ShippingOption, error) {
	return s.shipping, s.err
}

func (s *stubSource) PaymentMethods(context.Context) ([]domain.PaymentMethod, error) {
	return s.payments, s.err
}

func (s *stubSource) Users(context.Context) ([]domain.User, error) {
	return s.users, s.err
}

// --- Stub Product Getter ---

type stubProducts map[string]domain.Product

func (s stubProducts) Get(id string) (domain.Product, error) {
	p, ok := s[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer points at an unreachable broker; publishes fail and the
// services log the failure instead of returning it.
func newTestProducer(t *testing.T) *event.Producer {
	t.Helper()
	logger := newTestLogger()
	cfg := pkgkafka.DefaultProducerConfig([]string{"localhost:1"})
	kafkaProducer := pkgkafka.NewProducer(cfg, logger)
	t.Cleanup(func() { kafkaProducer.Close() })
	return event.NewProducer(kafkaProducer, logger)
}

func cartWithLine(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Lines: []domain.CartLine{
			{
				ProductID:  "prod-1",
				VariantKey: "black",
				Name:       "Wool Runner",
				UnitPrice:  9900,
				Quantity:   2,
				Available:  true,
			},
		},
		Currency:  "EUR",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
