package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/vetrinalabs/storefront/pkg/errors"

	"github.com/vetrinalabs/storefront/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionRepository implements repository.SessionRepository using Redis.
// The key TTL matches the session expiry, so Redis evicts stale sessions.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Get retrieves a session by its token.
func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	return getJSON[domain.Session](ctx, r.client, sessionKeyPrefix+token, "session",
		apperrors.Unauthorized("session expired or unknown"))
}

// Save persists a session until its expiry.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperrors.InvalidInput("session already expired")
	}

	return setJSON(ctx, r.client, sessionKeyPrefix+session.Token, "session", session, ttl)
}

// Delete removes a session by its token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return deleteKey(ctx, r.client, sessionKeyPrefix+token, "session")
}
