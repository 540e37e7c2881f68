package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "BACKEND_BASE_URL", "BACKEND_RPS", "CHAIN_TIMEOUT_SECONDS", "BREAKER_ENABLED", "PROBE_WORKERS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppEnv != "prod" || c.BackendRPS != 20 || c.ProbeWorkers != 4 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ChainTimeout != 8*time.Second || c.BreakerEnabled {
		t.Fatalf("want 8s chain deadline and no breakers by default: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://api.example/v2/")
	t.Setenv("BACKEND_RPS", "5")
	t.Setenv("CHAIN_TIMEOUT_SECONDS", "3")
	t.Setenv("BREAKER_ENABLED", "true")
	t.Setenv("REDIS_DB", "not-a-number")
	c := Load()
	if c.BackendBase != "http://api.example/v2" {
		t.Fatalf("base not trimmed: %q", c.BackendBase)
	}
	if c.BackendRPS != 5 || c.ChainTimeout != 3*time.Second || !c.BreakerEnabled {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.RedisDB != 0 {
		t.Fatalf("bad int should fall back to default, got %d", c.RedisDB)
	}
}

func TestHandlerTimeout_ExceedsChains(t *testing.T) {
	for _, c := range []Config{
		{},
		{RequestTimeout: 3 * time.Second},
		{RequestTimeout: 10 * time.Second, ChainTimeout: 8 * time.Second},
		{RequestTimeout: time.Second, ChainTimeout: 30 * time.Second},
	} {
		bound := c.ChainBound()
		if bound <= 0 {
			t.Fatalf("%+v: non-positive chain bound", c)
		}
		if c.ChainTimeout == 0 && bound < 4*c.RequestTimeout {
			t.Fatalf("%+v: derived bound %s shorter than a full chain", c, bound)
		}
		if got := c.HandlerTimeout(); got <= 2*bound {
			t.Fatalf("%+v: handler timeout %s does not cover two chains of %s", c, got, bound)
		}
	}
}
