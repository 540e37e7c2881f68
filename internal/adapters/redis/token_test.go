package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "campus_market/internal/adapters/redis"
)

func newStore(t *testing.T) (*redisad.TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return redisad.NewWithClient(c, "test:token"), mr
}

func TestTokenStore_MissingKeyIsEmpty(t *testing.T) {
	s, _ := newStore(t)
	tok, err := s.Token(context.Background())
	if err != nil || tok != "" {
		t.Fatalf("got %q, %v", tok, err)
	}
}

func TestTokenStore_StoreAndExpire(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := s.Store(ctx, "jwt-1", time.Minute); err != nil {
		t.Fatalf("store: %v", err)
	}
	tok, err := s.Token(ctx)
	if err != nil || tok != "jwt-1" {
		t.Fatalf("got %q, %v", tok, err)
	}

	mr.FastForward(2 * time.Minute)
	tok, err = s.Token(ctx)
	if err != nil || tok != "" {
		t.Fatalf("expected expired token, got %q, %v", tok, err)
	}
}

func TestTokenStore_Clear(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_ = s.Store(ctx, "jwt-2", 0)
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "" {
		t.Fatalf("expected cleared token, got %q", tok)
	}
}

func TestTokenStore_ServerDown(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()
	if _, err := s.Token(context.Background()); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
