package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

// CartStore keeps one cart per session token as a JSON blob. Mutations go
// through the immutable cart value in the application layer; the store only
// loads and saves snapshots.
type CartStore struct {
	client *redis.Client
	logger *logger.Logger
	ttl    time.Duration
}

func NewCartStore(conn *Connection, log *logger.Logger, ttl time.Duration) *CartStore {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &CartStore{
		client: client,
		logger: log,
		ttl:    ttl,
	}
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:%s", token)
}

// GetCart returns the empty cart when the token has nothing stored.
func (s *CartStore) GetCart(ctx context.Context, token string) (cart.Cart, error) {
	result, err := s.client.Get(ctx, cartKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return cart.New(), nil
		}
		return cart.Cart{}, err
	}

	var c cart.Cart
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		// A corrupt blob is unrecoverable; log it and start the session
		// over with an empty cart rather than wedging every request.
		s.logger.Error("Corrupt cart payload, resetting", "error", err, "session_token", token)
		return cart.New(), nil
	}

	return c, nil
}

func (s *CartStore) SaveCart(ctx context.Context, token string, c cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, cartKey(token), data, s.ttl).Err()
}

func (s *CartStore) DeleteCart(ctx context.Context, token string) error {
	return s.client.Del(ctx, cartKey(token)).Err()
}
