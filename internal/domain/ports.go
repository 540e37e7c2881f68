package domain

import (
	"context"
	"net/http"
)

// Request describes one logical call issued against every candidate route.
type Request struct {
	Method string
	Body   any
	Header http.Header
}

// Response is the first successful candidate. Body is the decoded JSON,
// or nil when the body was empty or not JSON.
type Response struct {
	Route  string
	Status int
	Body   any
}

type Executor interface {
	Execute(ctx context.Context, candidates []string, req Request) (Response, error)
}

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Synthesizer produces deterministic placeholder data for each resource
// kind. It is only consulted after every candidate route has failed.
type Synthesizer interface {
	Profile(id string) Profile
	Accommodations() []Accommodation
	Accommodation(id string) Accommodation
	FoodProviders() []FoodProvider
	FoodProvider(id string) FoodProvider
	Menu(providerID string) []MenuItem
	Bookings() []Booking
	Orders() []Order
	Notifications() []Notification
	Reviews(targetID string) []Review
	ChatThread(chatID string) []ChatMessage
}
