package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

// SessionStore persists the external checkout session id per session token
// (written once on first successful creation, read on every attempt) and
// holds the SETNX lock that backs the Submitting state.
type SessionStore struct {
	client *redis.Client
	logger *logger.Logger
}

func NewSessionStore(conn *Connection, log *logger.Logger) *SessionStore {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &SessionStore{
		client: client,
		logger: log,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s:checkout_session", token)
}

func lockKey(token string) string {
	return fmt.Sprintf("lock:checkout:%s", token)
}

func (s *SessionStore) GetSessionID(ctx context.Context, token string) (string, error) {
	result, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return result, nil
}

func (s *SessionStore) SetSessionID(ctx context.Context, token, sessionID string, expiration time.Duration) error {
	return s.client.Set(ctx, sessionKey(token), sessionID, expiration).Err()
}

func (s *SessionStore) AcquireCheckoutLock(ctx context.Context, token string, expiration time.Duration) (bool, error) {
	monitoring.RecordLockAttempt(lockKey(token))

	result, err := s.client.SetNX(ctx, lockKey(token), "1", expiration).Result()
	if err == nil {
		if result {
			monitoring.RecordLockSuccess(lockKey(token))
		} else {
			monitoring.RecordLockFailure(lockKey(token), "already_locked")
		}
	} else {
		monitoring.RecordLockFailure(lockKey(token), "redis_error")
	}
	return result, err
}

func (s *SessionStore) ReleaseCheckoutLock(ctx context.Context, token string) error {
	return s.client.Del(ctx, lockKey(token)).Err()
}
