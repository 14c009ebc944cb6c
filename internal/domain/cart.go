package domain

import "time"

// DefaultVariantKey is used when a product has no variant dimension.
const DefaultVariantKey = "default"

// LineKey computes the identity key of a cart line from its product ID and
// variant key. Lines are unique per key within a cart.
func LineKey(productID, variantKey string) string {
	if variantKey == "" {
		variantKey = DefaultVariantKey
	}
	return productID + "-" + variantKey
}

// Cart represents a shopping cart for one storefront session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine is one row in the cart, uniquely keyed by product+variant.
type CartLine struct {
	ProductID  string `json:"product_id"`
	VariantKey string `json:"variant_key"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image,omitempty"`
	Available  bool   `json:"available"`
}

// Key returns the line's identity key.
func (l CartLine) Key() string {
	return LineKey(l.ProductID, l.VariantKey)
}

// Subtotal returns unit price times quantity, in cents.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// TotalItems returns the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// TotalPrice returns the sum of unit price times quantity across all lines,
// in cents. Always recomputed from the lines, never cached.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// FindLine returns the index of the line with the given identity key, or -1.
func (c *Cart) FindLine(key string) int {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			return i
		}
	}
	return -1
}
