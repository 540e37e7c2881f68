//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"campus_market/internal/adapters/backend"
	server "campus_market/internal/adapters/http_server"
	redisad "campus_market/internal/adapters/redis"
	"campus_market/internal/app"
	"campus_market/internal/domain"
	"campus_market/internal/fallback"
)

const token = "tok-e2e"

// ---------- fake backend: only some aliases exist, some are broken ----------

type fakeBackend struct {
	mu   sync.Mutex
	hits []string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits = append(f.hits, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/properties":
		_, _ = w.Write([]byte(`{"success":true,"data":{"properties":[
			{"_id":"p1","title":"Annex Room","price":"9,500","type":"Shared","city":"Ibadan","amenities":"WiFi, Water","rating":4.2},
			{"_id":"p2","title":"Penthouse","price":90000,"type":"apartment","city":"Lagos","amenities":["WiFi","Gym"]}
		]}}`))
	case r.Method == http.MethodGet && r.URL.Path == "/api/auth/me":
		_, _ = w.Write([]byte(`{"user":{"_id":"u1","firstName":"Ada","lastName":"Obi","email":"ada@uni.example"}}`))
	case r.Method == http.MethodPost && r.URL.Path == "/api/bookings":
		w.WriteHeader(http.StatusInternalServerError)
	case r.Method == http.MethodPost && r.URL.Path == "/api/bookings/create":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"booking": map[string]any{
			"_id": "b-77", "accommodation": body["accommodationId"], "status": "pending", "reference": "REF77",
		}})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) saw(hit string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hits {
		if h == hit {
			return true
		}
	}
	return false
}

// ---------- wiring ----------

func newStack(t *testing.T) (*httptest.Server, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	upstream := httptest.NewServer(fb)
	t.Cleanup(upstream.Close)

	mr := miniredis.RunT(t)
	store := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	if err := store.Store(context.Background(), token, time.Hour); err != nil {
		t.Fatalf("store token: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	client, err := backend.New(upstream.URL+"/api", backend.FirstToken{backend.StaticToken(""), store}, 200)
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{Svc: app.NewService(client, fallback.New())})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)
	return api, fb
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

// ---------- tests ----------

func TestE2E_LiveAliasWithFilter(t *testing.T) {
	api, fb := newStack(t)

	var got []domain.Accommodation
	getJSON(t, api.URL+"/v1/accommodations?maxPrice=10000&amenities=water", &got)
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("want only p1, got %+v", got)
	}
	if got[0].Price != 9500 || got[0].Type != "shared" {
		t.Fatalf("normalization off: %+v", got[0])
	}
	if !fb.saw("GET /api/accommodations") || !fb.saw("GET /api/properties") || fb.saw("GET /api/listings") {
		t.Fatalf("unexpected candidate walk: %v", fb.hits)
	}
}

func TestE2E_ProfileFromSecondAlias(t *testing.T) {
	api, _ := newStack(t)
	var p domain.Profile
	getJSON(t, api.URL+"/v1/profile", &p)
	if p.ID != "u1" || p.Name != "Ada Obi" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestE2E_DeadResourceIsSynthesized(t *testing.T) {
	api, _ := newStack(t)
	var got []domain.FoodProvider
	getJSON(t, api.URL+"/v1/food-providers", &got)
	want := fallback.New().FoodProviders()
	if len(got) != len(want) || got[0].ID != want[0].ID {
		t.Fatalf("want synthesized providers, got %+v", got)
	}
}

func TestE2E_BookingFallsThroughTo201Alias(t *testing.T) {
	api, fb := newStack(t)
	res, err := http.Post(api.URL+"/v1/bookings", "application/json",
		strings.NewReader(`{"accommodationId":"p1","totalPrice":9500}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status=%d", res.StatusCode)
	}
	var b domain.Booking
	if err := json.NewDecoder(res.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if b.ID != "b-77" || b.ConfirmationCode != "REF77" || b.AccommodationID != "p1" || b.IsSimulated {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.TotalPrice != 9500 {
		t.Fatalf("request fields should fill gaps, got %+v", b)
	}
	if !fb.saw("POST /api/bookings") || !fb.saw("POST /api/bookings/create") {
		t.Fatalf("unexpected candidate walk: %v", fb.hits)
	}
}

func TestE2E_OrderIsSimulatedWhenNoRouteAnswers(t *testing.T) {
	api, _ := newStack(t)
	res, err := http.Post(api.URL+"/v1/orders", "application/json",
		strings.NewReader(`{"providerId":"fp-fb-1","items":[{"menuItemId":"m1","quantity":2,"price":1500}]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("status=%d", res.StatusCode)
	}
	var o domain.Order
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		t.Fatal(err)
	}
	if !o.IsSimulated || o.TotalAmount != 3000 || !strings.HasPrefix(o.OrderNumber, "OR-") {
		t.Fatalf("unexpected order ack: %+v", o)
	}
}
