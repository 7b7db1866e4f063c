package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog/internal/models"
)

const redisSlotKey = "catalog:session"

// redisStore keeps the slot in Redis, for shared-terminal deployments where
// the session should survive the client host itself.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) Save(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, redisSlotKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session to redis: %w", err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context) (*models.User, error) {
	val, err := s.client.Get(ctx, redisSlotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("malformed session in redis: %w", err)
	}
	return &u, nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisSlotKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
