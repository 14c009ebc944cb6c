package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
	"github.com/vetrinalabs/storefront/internal/repository"
)

// LoginInput holds the credentials for a login attempt.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserService handles authentication against the users fixture and serves
// profile and order history lookups.
type UserService struct {
	source     repository.CatalogSource
	sessions   repository.SessionRepository
	orders     repository.OrderRepository
	logger     *slog.Logger
	sessionTTL time.Duration
}

// NewUserService creates a new user service.
func NewUserService(
	source repository.CatalogSource,
	sessions repository.SessionRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
	sessionTTL time.Duration,
) *UserService {
	return &UserService{
		source:     source,
		sessions:   sessions,
		orders:     orders,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Login checks the credentials against the users fixture and issues a new
// session token. The same generic unauthorized error covers unknown emails,
// wrong passwords, and inactive accounts.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.Session, *domain.User, error) {
	user, err := s.findByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.Password != input.Password || !user.IsActive {
		return nil, nil, apperrors.Unauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return session, user, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.InvalidInput("token is required")
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its session. Expired and unknown
// tokens yield an unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperrors.Unauthorized("missing session token")
	}
	return s.sessions.Get(ctx, token)
}

// Profile returns the account for a user ID.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, apperrors.NotFound("user", userID)
}

// Orders returns the user's order history, newest first.
func (s *UserService) Orders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("login required")
	}
	return s.orders.ListByUser(ctx, userID)
}

// GetOrder returns one order, restricted to its owner. Orders belonging to a
// user are visible to that user; guest orders are visible to the session that
// placed them.
func (s *UserService) GetOrder(ctx context.Context, orderID, userID, sessionID string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch {
	case order.UserID != "" && order.UserID == userID:
		return order, nil
	case order.UserID == "" && order.SessionID == sessionID:
		return order, nil
	default:
		return nil, apperrors.Forbidden("order belongs to another customer")
	}
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}
