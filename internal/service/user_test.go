package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

func userStubSource() *stubSource {
	return &stubSource{
		users: []domain.User{
			{
				ID:        "user-1",
				Email:     "ada@example.com",
				Password:  "hunter2",
				FirstName: "Ada",
				LastName:  "Moreau",
				IsActive:  true,
			},
			{
				ID:       "user-2",
				Email:    "closed@example.com",
				Password: "hunter2",
				IsActive: false,
			},
		},
	}
}

func newTestUserService(t *testing.T, sessions *mockSessionRepository, orders *mockOrderRepository) *UserService {
	t.Helper()
	return NewUserService(userStubSource(), sessions, orders, newTestLogger(), 24*time.Hour)
}

func TestUserService_Login(t *testing.T) {
	sessions := new(mockSessionRepository)
	sessions.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	svc := newTestUserService(t, sessions, new(mockOrderRepository))
	session, user, err := svc.Login(context.Background(), LoginInput{
		Email:    "Ada@Example.com",
		Password: "hunter2",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "user-1", session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Equal(t, "Ada", user.FirstName)
	sessions.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc := newTestUserService(t, new(mockSessionRepository), new(mockOrderRepository))

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := newTestUserService(t, new(mockSessionRepository), new(mockOrderRepository))

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "hunter2",
	})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	svc := newTestUserService(t, new(mockSessionRepository), new(mockOrderRepository))

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "closed@example.com",
		Password: "hunter2",
	})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUserService_Logout(t *testing.T) {
	sessions := new(mockSessionRepository)
	sessions.On("Delete", mock.Anything, "tok-1").Return(nil)

	svc := newTestUserService(t, sessions, new(mockOrderRepository))
	require.NoError(t, svc.Logout(context.Background(), "tok-1"))
	sessions.AssertExpectations(t)
}

func TestUserService_Authenticate(t *testing.T) {
	session := &domain.Session{Token: "tok-1", UserID: "user-1"}
	sessions := new(mockSessionRepository)
	sessions.On("Get", mock.Anything, "tok-1").Return(session, nil)

	svc := newTestUserService(t, sessions, new(mockOrderRepository))
	got, err := svc.Authenticate(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	_, err = svc.Authenticate(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUserService_Profile(t *testing.T) {
	svc := newTestUserService(t, new(mockSessionRepository), new(mockOrderRepository))

	user, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = svc.Profile(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserService_Orders(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("ListByUser", mock.Anything, "user-1").Return([]*domain.Order{{ID: "ord-1", UserID: "user-1"}}, nil)

	svc := newTestUserService(t, new(mockSessionRepository), orders)
	got, err := svc.Orders(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.Orders(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestUserService_GetOrder_OwnOrder(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("Get", mock.Anything, "ord-1").Return(&domain.Order{ID: "ord-1", UserID: "user-1"}, nil)

	svc := newTestUserService(t, new(mockSessionRepository), orders)
	got, err := svc.GetOrder(context.Background(), "ord-1", "user-1", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", got.ID)
}

func TestUserService_GetOrder_ForeignOrder(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("Get", mock.Anything, "ord-1").Return(&domain.Order{ID: "ord-1", UserID: "user-2"}, nil)

	svc := newTestUserService(t, new(mockSessionRepository), orders)
	_, err := svc.GetOrder(context.Background(), "ord-1", "user-1", "sess-1")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestUserService_GetOrder_GuestOrderBySession(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("Get", mock.Anything, "ord-g").Return(&domain.Order{ID: "ord-g", SessionID: "sess-1"}, nil)

	svc := newTestUserService(t, new(mockSessionRepository), orders)

	got, err := svc.GetOrder(context.Background(), "ord-g", "", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-g", got.ID)

	_, err = svc.GetOrder(context.Background(), "ord-g", "", "sess-2")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestUserService_GetOrder_Missing(t *testing.T) {
	orders := new(mockOrderRepository)
	orders.On("Get", mock.Anything, "nope").Return(nil, apperrors.NotFound("order", "nope"))

	svc := newTestUserService(t, new(mockSessionRepository), orders)
	_, err := svc.GetOrder(context.Background(), "nope", "user-1", "sess-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
