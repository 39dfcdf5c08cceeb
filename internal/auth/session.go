// Package auth issues and verifies server-side session tokens. Tokens are
// opaque ids stored in redis with a TTL; ownership checks resolve a token
// back to the user id it was issued for.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidSession = errors.New("invalid or expired session")

type SessionManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionManager(client *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Issue creates a session for the user and returns the bearer token.
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	if err := m.client.Set(ctx, sessionKey(token), userID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Resolve returns the user id a token was issued for.
func (m *SessionManager) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := m.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidSession
		}
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}

	return userID, nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
