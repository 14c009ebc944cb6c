// Package fixture loads the static catalog from JSON fixture files: products,
// categories, shipping options, payment methods, and user accounts. Fixtures
// can live on the local filesystem or behind a static HTTP host; either way
// the catalog is read-only and loaded wholesale.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

// Fixture file names, shared by the directory and HTTP sources.
const (
	ProductsFile       = "products.json"
	CategoriesFile     = "categories.json"
	ShippingFile       = "shipping.json"
	PaymentMethodsFile = "payment-methods.json"
	UsersFile          = "users.json"
)

// fetcher retrieves the raw bytes of one named fixture file.
type fetcher interface {
	fetch(ctx context.Context, name string) ([]byte, error)
}

// Source implements repository.CatalogSource over a fetcher. Any fetch or
// decode failure surfaces as an unavailable data source so callers can
// distinguish "catalog down" from "not found".
type Source struct {
	f fetcher
}

// Products loads the full product set.
func (s *Source) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.load(ctx, ProductsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories loads the category list.
func (s *Source) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.load(ctx, CategoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ShippingOptions loads the available shipping methods.
func (s *Source) ShippingOptions(ctx context.Context) ([]domain.ShippingOption, error) {
	var options []domain.ShippingOption
	if err := s.load(ctx, ShippingFile, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// PaymentMethods loads the available payment methods.
func (s *Source) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := s.load(ctx, PaymentMethodsFile, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// fixtureUser carries the password field that domain.User deliberately never
// serializes.
type fixtureUser struct {
	domain.User
	Password string `json:"password"`
}

// Users loads the registered user accounts, including their passwords.
func (s *Source) Users(ctx context.Context) ([]domain.User, error) {
	var raw []fixtureUser
	if err := s.load(ctx, UsersFile, &raw); err != nil {
		return nil, err
	}

	users := make([]domain.User, len(raw))
	for i, u := range raw {
		users[i] = u.User
		users[i].Password = u.Password
	}
	return users, nil
}

func (s *Source) load(ctx context.Context, name string, out any) error {
	data, err := s.f.fetch(ctx, name)
	if err != nil {
		return apperrors.Unavailable(name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Unavailable(name, fmt.Errorf("decode fixture: %w", err))
	}
	return nil
}
