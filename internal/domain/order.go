package domain

import "time"

// Order status constants.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order captures the full cart state at the moment checkout completed,
// together with the computed totals. Line prices are frozen at placement
// time; later catalog changes do not touch past orders.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id,omitempty"`
	SessionID      string          `json:"session_id"`
	Lines          []CartLine      `json:"lines"`
	Subtotal       int64           `json:"subtotal"`
	ShippingCost   int64           `json:"shipping_cost"`
	Tax            int64           `json:"tax"`
	Total          int64           `json:"total"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	Address        ShippingAddress `json:"address"`
	ShippingMethod string          `json:"shipping_method"`
	PaymentMethod  string          `json:"payment_method"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ShippingAddress is the contact and delivery address collected in the first
// checkout step.
type ShippingAddress struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Province  string `json:"province"`
	Country   string `json:"country"`
}

// Checkout wizard steps, completed strictly in order.
const (
	CheckoutStepAddress  = 1
	CheckoutStepShipping = 2
	CheckoutStepPayment  = 3
)

// CheckoutState is the per-session state of the linear checkout wizard.
// Step records the highest step whose input has been accepted.
type CheckoutState struct {
	SessionID      string           `json:"session_id"`
	Step           int              `json:"step"`
	Address        *ShippingAddress `json:"address,omitempty"`
	ShippingMethod string           `json:"shipping_method,omitempty"`
	PaymentMethod  string           `json:"payment_method,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ShippingOption is a delivery method offered at checkout, sourced from the
// shipping fixtures.
type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	FreeThreshold *int64 `json:"free_threshold,omitempty"`
	Description   string `json:"description,omitempty"`
	DeliveryTime  string `json:"delivery_time,omitempty"`
	IsDefault     bool   `json:"is_default,omitempty"`
}

// CostFor returns the shipping cost for the given order subtotal, applying
// the free-shipping threshold when configured.
func (o ShippingOption) CostFor(subtotal int64) int64 {
	if o.FreeThreshold != nil && subtotal >= *o.FreeThreshold {
		return 0
	}
	return o.Price
}

// PaymentMethod is a payment option offered at checkout, sourced from the
// payment fixtures.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Enabled     bool   `json:"enabled"`
	IsDefault   bool   `json:"is_default,omitempty"`
}
