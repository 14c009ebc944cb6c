package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/event"
	"github.com/vetrinalabs/storefront/internal/repository"
)

// AddressInput holds the shipping address collected in the first checkout
// step.
type AddressInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Province  string `json:"province"`
	Country   string `json:"country" validate:"required"`
}

// ShippingInput selects a shipping method in the second checkout step.
type ShippingInput struct {
	MethodID string `json:"method_id" validate:"required"`
}

// PaymentInput selects a payment method in the third checkout step.
type PaymentInput struct {
	MethodID string `json:"method_id" validate:"required"`
}

// CheckoutService drives the linear checkout wizard and turns a completed
// wizard plus a non-empty cart into a placed order.
type CheckoutService struct {
	carts    *CartService
	states   repository.CheckoutRepository
	orders   repository.OrderRepository
	source   repository.CatalogSource
	producer *event.Producer
	logger   *slog.Logger
	taxRate  float64
}

// NewCheckoutService creates a new checkout service. taxRate is a fraction of
// the subtotal, e.g. 0.22 for 22%.
func NewCheckoutService(
	carts *CartService,
	states repository.CheckoutRepository,
	orders repository.OrderRepository,
	source repository.CatalogSource,
	producer *event.Producer,
	logger *slog.Logger,
	taxRate float64,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		states:   states,
		orders:   orders,
		source:   source,
		producer: producer,
		logger:   logger,
		taxRate:  taxRate,
	}
}

// GetState retrieves the checkout wizard state for a session. A fresh state
// with no completed steps is returned when none exists.
func (s *CheckoutService) GetState(ctx context.Context, sessionID string) (*domain.CheckoutState, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	state, err := s.states.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CheckoutState{SessionID: sessionID}, nil
		}
		return nil, fmt.Errorf("get checkout state: %w", err)
	}

	return state, nil
}

// SubmitAddress completes the first wizard step. The cart must not be empty.
func (s *CheckoutService) SubmitAddress(ctx context.Context, sessionID string, input AddressInput) (*domain.CheckoutState, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Address = &domain.ShippingAddress{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Street:    input.Street,
		City:      input.City,
		ZipCode:   input.ZipCode,
		Province:  input.Province,
		Country:   input.Country,
	}
	state.Step = domain.CheckoutStepAddress

	// Later steps depend on the address, so resubmitting it resets them.
	state.ShippingMethod = ""
	state.PaymentMethod = ""

	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitShipping completes the second wizard step. The address step must be
// done first, and the method must be one of the configured shipping options.
func (s *CheckoutService) SubmitShipping(ctx context.Context, sessionID string, input ShippingInput) (*domain.CheckoutState, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step < domain.CheckoutStepAddress {
		return nil, apperrors.Conflict("address step not completed")
	}

	if _, err := s.shippingOption(ctx, input.MethodID); err != nil {
		return nil, err
	}

	state.ShippingMethod = input.MethodID
	state.Step = domain.CheckoutStepShipping
	state.PaymentMethod = ""

	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitPayment completes the third wizard step. The shipping step must be
// done first, and the method must be an enabled payment method.
func (s *CheckoutService) SubmitPayment(ctx context.Context, sessionID string, input PaymentInput) (*domain.CheckoutState, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step < domain.CheckoutStepShipping {
		return nil, apperrors.Conflict("shipping step not completed")
	}

	method, err := s.paymentMethod(ctx, input.MethodID)
	if err != nil {
		return nil, err
	}
	if !method.Enabled {
		return nil, apperrors.InvalidInput("payment method is not available")
	}

	state.PaymentMethod = input.MethodID
	state.Step = domain.CheckoutStepPayment

	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// PlaceOrder turns a completed wizard and a non-empty cart into an order.
// The cart lines are snapshotted into the order, the cart and wizard state
// are cleared, and an order.placed event is published. userID may be empty
// for guest checkout.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, userID string) (*domain.Order, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step < domain.CheckoutStepPayment {
		return nil, apperrors.Conflict("checkout is not complete")
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	option, err := s.shippingOption(ctx, state.ShippingMethod)
	if err != nil {
		return nil, err
	}

	subtotal := cart.TotalPrice()
	shipping := option.CostFor(subtotal)
	tax := int64(math.Round(float64(subtotal) * s.taxRate))

	lines := make([]domain.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)

	order := &domain.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		SessionID:      sessionID,
		Lines:          lines,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Tax:            tax,
		Total:          subtotal + shipping + tax,
		Currency:       cart.Currency,
		Status:         domain.OrderStatusPlaced,
		Address:        *state.Address,
		ShippingMethod: state.ShippingMethod,
		PaymentMethod:  state.PaymentMethod,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after order placement",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.states.Delete(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete checkout state after order placement",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// ShippingOptions returns the configured shipping methods.
func (s *CheckoutService) ShippingOptions(ctx context.Context) ([]domain.ShippingOption, error) {
	options, err := s.source.ShippingOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shipping options: %w", err)
	}
	return options, nil
}

// PaymentMethods returns the configured payment methods, disabled ones
// included so callers can render them as unavailable.
func (s *CheckoutService) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.source.PaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payment methods: %w", err)
	}
	return methods, nil
}

func (s *CheckoutService) shippingOption(ctx context.Context, id string) (domain.ShippingOption, error) {
	options, err := s.ShippingOptions(ctx)
	if err != nil {
		return domain.ShippingOption{}, err
	}
	for _, o := range options {
		if strings.EqualFold(o.ID, id) {
			return o, nil
		}
	}
	return domain.ShippingOption{}, apperrors.InvalidInput("unknown shipping method: " + id)
}

func (s *CheckoutService) paymentMethod(ctx context.Context, id string) (domain.PaymentMethod, error) {
	methods, err := s.PaymentMethods(ctx)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	for _, m := range methods {
		if strings.EqualFold(m.ID, id) {
			return m, nil
		}
	}
	return domain.PaymentMethod{}, apperrors.InvalidInput("unknown payment method: " + id)
}

func (s *CheckoutService) saveState(ctx context.Context, state *domain.CheckoutState) error {
	state.UpdatedAt = time.Now().UTC()
	if err := s.states.Save(ctx, state); err != nil {
		return fmt.Errorf("save checkout state: %w", err)
	}
	return nil
}
