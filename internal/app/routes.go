package app

import (
	"net/url"
	"sort"
	"strings"
)

// Logical operations. Each maps to candidate routes that are believed to
// implement it; order is preference.
const (
	OpAccommodations   = "accommodations"
	OpAccommodation    = "accommodation"
	OpFoodProviders    = "food-providers"
	OpFoodProvider     = "food-provider"
	OpMenu             = "menu"
	OpBookings         = "bookings"
	OpBookingCreate    = "booking.create"
	OpBookingCancel    = "booking.cancel"
	OpOrders           = "orders"
	OpOrderCreate      = "order.create"
	OpOrderCancel      = "order.cancel"
	OpProfile          = "profile"
	OpProfileUpdate    = "profile.update"
	OpNotifications    = "notifications"
	OpNotificationRead = "notification.read"
	OpReviews          = "reviews"
	OpReviewCreate     = "review.create"
	OpChatMessages     = "chat.messages"
	OpChatSend         = "chat.send"
)

var candidateTable = map[string][]string{
	OpAccommodations:   {"/accommodations", "/properties", "/listings"},
	OpAccommodation:    {"/accommodations/{id}", "/properties/{id}", "/listings/{id}"},
	OpFoodProviders:    {"/food-providers", "/food/providers", "/restaurants", "/vendors"},
	OpFoodProvider:     {"/food-providers/{id}", "/food/providers/{id}", "/restaurants/{id}"},
	OpMenu:             {"/food-providers/{id}/menu", "/food/providers/{id}/menu", "/restaurants/{id}/menu", "/menu?providerId={id}"},
	OpBookings:         {"/bookings/me", "/bookings/user", "/bookings"},
	OpBookingCreate:    {"/bookings", "/bookings/create", "/accommodations/{id}/book"},
	OpBookingCancel:    {"/bookings/{id}/cancel", "/bookings/{id}/status", "/bookings/cancel/{id}"},
	OpOrders:           {"/orders/me", "/food-orders", "/orders"},
	OpOrderCreate:      {"/orders", "/food-orders", "/food/orders"},
	OpOrderCancel:      {"/orders/{id}/cancel", "/food-orders/{id}/cancel", "/orders/cancel/{id}"},
	OpProfile:          {"/users/me", "/auth/me", "/profile"},
	OpProfileUpdate:    {"/users/me", "/profile", "/users/profile"},
	OpNotifications:    {"/notifications/me", "/notifications", "/users/me/notifications"},
	OpNotificationRead: {"/notifications/{id}/read", "/notifications/{id}"},
	OpReviews:          {"/reviews/{id}", "/reviews?targetId={id}", "/accommodations/{id}/reviews"},
	OpReviewCreate:     {"/reviews", "/reviews/create"},
	OpChatMessages:     {"/chats/{id}/messages", "/messages/{id}", "/messages?chatId={id}"},
	OpChatSend:         {"/chats/{id}/messages", "/messages", "/messages/send"},
}

// Candidates returns a fresh candidate list for op with {id} filled in:
// path-escaped in the path, query-escaped after "?". Templates that need
// an id are skipped when id is empty.
func Candidates(op, id string) []string {
	tmpl := candidateTable[op]
	out := make([]string, 0, len(tmpl))
	for _, r := range tmpl {
		at := strings.Index(r, "{id}")
		switch {
		case at < 0:
			out = append(out, r)
		case id == "":
		case strings.Contains(r[:at], "?"):
			out = append(out, strings.ReplaceAll(r, "{id}", url.QueryEscape(id)))
		default:
			out = append(out, strings.ReplaceAll(r, "{id}", url.PathEscape(id)))
		}
	}
	return out
}

// MaxCandidates is the longest candidate list of any operation, which
// bounds how many attempts one chain can make.
func MaxCandidates() int {
	n := 0
	for _, tmpl := range candidateTable {
		n = max(n, len(tmpl))
	}
	return n
}

// Operations lists every known operation, sorted.
func Operations() []string {
	out := make([]string, 0, len(candidateTable))
	for op := range candidateTable {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// ReadOperations are the parameterless reads, safe to probe.
func ReadOperations() []string {
	return []string{OpProfile, OpAccommodations, OpFoodProviders, OpBookings, OpOrders, OpNotifications}
}
