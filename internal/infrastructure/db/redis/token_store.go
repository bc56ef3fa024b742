package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// TokenStore persists the bearer token in Redis.
// Key format: <prefix>:<key>
type TokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
// A zero ttl keeps the token until it is deleted.
func NewTokenStore(client *redis.Client, prefix, key string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, key: tokenKey(prefix, key), ttl: ttl}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis load token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func tokenKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", prefix, key)
}
