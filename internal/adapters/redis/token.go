package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"campus_market/internal/domain"
)

// TokenStore reads the bearer token the mobile login flow wrote to redis.
// A missing key is an empty token, not an error.
type TokenStore struct {
	c   *redis.Client
	key string
}

var _ domain.TokenProvider = (*TokenStore)(nil)

func New(addr, pass string, db int, key string) *TokenStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key)
}

func NewWithClient(c *redis.Client, key string) *TokenStore {
	if key == "" {
		key = "campus:auth:token"
	}
	return &TokenStore{c: c, key: key}
}

func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.c.Get(ctx, s.key).Result()
	if err == redis.Nil {
		log.Debug().Str("key", s.key).Msg("no token stored")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis token get: %w", err)
	}
	return v, nil
}

// Store saves a token; ttl <= 0 keeps it until overwritten.
func (s *TokenStore) Store(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.c.Set(ctx, s.key, token, ttl).Err()
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.c.Del(ctx, s.key).Err()
}

func (s *TokenStore) Close() error { return s.c.Close() }
