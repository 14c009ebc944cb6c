package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"
	"github.com/vetrinalabs/storefront/pkg/httputil"
	"github.com/vetrinalabs/storefront/pkg/validator"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/service"
)

// CheckoutHandler handles HTTP requests for the checkout wizard.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Wizard step names accepted by PUT /checkout.
const (
	stepAddress  = "address"
	stepShipping = "shipping"
	stepPayment  = "payment"
)

// StepRequest is the JSON request body for submitting a wizard step. The step
// field selects which payload is read.
type StepRequest struct {
	Step           string                `json:"step" validate:"required,oneof=address shipping payment"`
	Address        *service.AddressInput `json:"address,omitempty"`
	ShippingMethod string                `json:"shipping_method,omitempty"`
	PaymentMethod  string                `json:"payment_method,omitempty"`
}

// StateResponse bundles the wizard state with the selectable options so a
// client can render any step from one call.
type StateResponse struct {
	State           *domain.CheckoutState   `json:"state"`
	ShippingOptions []domain.ShippingOption `json:"shipping_options"`
	PaymentMethods  []domain.PaymentMethod  `json:"payment_methods"`
}

// GetState handles GET /api/v1/checkout
func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.service.GetState(ctx, sessionIDFromContext(ctx))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	options, err := h.service.ShippingOptions(ctx)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	methods, err := h.service.PaymentMethods(ctx)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: StateResponse{
		State:           state,
		ShippingOptions: options,
		PaymentMethods:  methods,
	}})
}

// SubmitStep handles PUT /api/v1/checkout
func (h *CheckoutHandler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	sessionID := sessionIDFromContext(ctx)

	var (
		state *domain.CheckoutState
		err   error
	)

	switch req.Step {
	case stepAddress:
		if req.Address == nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("address is required for the address step"), h.logger)
			return
		}
		if verr := validator.Validate(*req.Address); verr != nil {
			httputil.WriteValidationError(w, verr)
			return
		}
		state, err = h.service.SubmitAddress(ctx, sessionID, *req.Address)
	case stepShipping:
		if req.ShippingMethod == "" {
			httputil.WriteError(w, r, apperrors.InvalidInput("shipping_method is required for the shipping step"), h.logger)
			return
		}
		state, err = h.service.SubmitShipping(ctx, sessionID, service.ShippingInput{MethodID: req.ShippingMethod})
	case stepPayment:
		if req.PaymentMethod == "" {
			httputil.WriteError(w, r, apperrors.InvalidInput("payment_method is required for the payment step"), h.logger)
			return
		}
		state, err = h.service.SubmitPayment(ctx, sessionID, service.PaymentInput{MethodID: req.PaymentMethod})
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.service.PlaceOrder(ctx, sessionIDFromContext(ctx), userIDFromContext(ctx))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
