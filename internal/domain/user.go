package domain

import "time"

// User is a storefront account, sourced from the users fixture. The Password
// field is never serialized back to callers.
type User struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Password    string            `json:"-"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Phone       string            `json:"phone,omitempty"`
	Addresses   []ShippingAddress `json:"addresses,omitempty"`
	Preferences UserPreferences   `json:"preferences"`
	IsActive    bool              `json:"is_active"`
}

// UserPreferences holds account-level settings.
type UserPreferences struct {
	Newsletter bool   `json:"newsletter"`
	Language   string `json:"language,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// Session is an authenticated storefront session issued at login.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
