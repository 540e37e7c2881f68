//go:build integration

package redisad_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	redisad "campus_market/internal/adapters/redis"
)

func TestTokenStore_RealRedis(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	var c *redis.Client
	if err := pool.Retry(func() error {
		c = redis.NewClient(&redis.Options{Addr: addr})
		return c.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	s := redisad.NewWithClient(c, "it:token")
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	if err := s.Store(ctx, "jwt-it", time.Minute); err != nil {
		t.Fatalf("store: %v", err)
	}
	tok, err := s.Token(ctx)
	if err != nil || tok != "jwt-it" {
		t.Fatalf("got %q, %v", tok, err)
	}
}
