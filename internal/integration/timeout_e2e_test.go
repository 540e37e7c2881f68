//go:build integration || !unit

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "campus_market/internal/adapters/http_server"
	"campus_market/internal/domain"
	"campus_market/internal/fallback"
	"campus_market/internal/shared"
)

// stalledStack serves the BFF over a backend that never answers, wired the
// same way cmd/api wires it.
func stalledStack(t *testing.T, cfg shared.Config) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	stalled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		stalled.Close()
	})

	cfg.BackendBase = stalled.URL + "/api"
	cfg.BackendRPS = 200
	svc, cleanup, err := shared.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(cleanup)

	srv := server.New(cfg.HandlerTimeout())
	srv.MountHandlers(&server.Handlers{Svc: svc})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)
	return api
}

func TestE2E_StalledBackendStillAnswersWithinHandlerTimeout(t *testing.T) {
	cases := map[string]shared.Config{
		"derived chain bound":  {RequestTimeout: 150 * time.Millisecond},
		"explicit chain bound": {RequestTimeout: 5 * time.Second, ChainTimeout: 300 * time.Millisecond},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			api := stalledStack(t, cfg)

			start := time.Now()
			res, err := http.Get(api.URL + "/v1/accommodations")
			if err != nil {
				t.Fatal(err)
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusOK {
				t.Fatalf("status=%d, want a degraded 200", res.StatusCode)
			}
			if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content type %q", ct)
			}
			var got []domain.Accommodation
			if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			want := fallback.New().Accommodations()
			if len(got) != len(want) || got[0].ID != want[0].ID {
				t.Fatalf("want synthesized accommodations, got %+v", got)
			}
			if took := time.Since(start); took >= cfg.HandlerTimeout() {
				t.Fatalf("answer took %s, handler timeout is %s", took, cfg.HandlerTimeout())
			}
		})
	}
}

func TestE2E_StalledBackendSimulatesWrites(t *testing.T) {
	api := stalledStack(t, shared.Config{RequestTimeout: time.Second, ChainTimeout: 200 * time.Millisecond})

	res, err := http.Post(api.URL+"/v1/orders", "application/json",
		strings.NewReader(`{"providerId":"fp-fb-1","items":[{"menuItemId":"m1","quantity":1,"price":1200}]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("status=%d, want a simulated 202", res.StatusCode)
	}
	var o domain.Order
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		t.Fatal(err)
	}
	if !o.IsSimulated || o.TotalAmount != 1200 {
		t.Fatalf("unexpected order ack: %+v", o)
	}
}
