package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates_EveryOperationHasAlternates(t *testing.T) {
	for _, op := range Operations() {
		assert.GreaterOrEqual(t, len(Candidates(op, "x")), 2, op)
	}
}

func TestCandidates_ReturnsFreshSlice(t *testing.T) {
	a := Candidates(OpAccommodations, "")
	a[0] = "/mutated"
	assert.Equal(t, "/accommodations", Candidates(OpAccommodations, "")[0])
}

func TestUnwrap_SingleElementListAsObject(t *testing.T) {
	obj, ok := unwrap([]any{map[string]any{"id": "1"}}).asObject()
	assert.True(t, ok)
	assert.Equal(t, "1", obj["id"])

	_, ok = unwrap([]any{}).asObject()
	assert.False(t, ok)

	rows, ok := unwrap(map[string]any{"data": map[string]any{"bookings": []any{}}}, "bookings").asList()
	assert.True(t, ok)
	assert.Empty(t, rows)
}

func TestUnwrap_IdentifiedObjectIsNotAWrapper(t *testing.T) {
	order := map[string]any{"_id": "o1", "items": []any{map[string]any{"_id": "li-1"}}}
	obj, ok := unwrap(order, "order").asObject()
	assert.True(t, ok)
	assert.Equal(t, "o1", obj["_id"])

	// without an identity the generic keys still unwrap
	rows, ok := unwrap(map[string]any{"items": []any{map[string]any{"_id": "a"}}, "total": 1.0}).asList()
	assert.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestCandidates_EscapesByPosition(t *testing.T) {
	got := Candidates(OpReviews, "a&b=c d")
	assert.Equal(t, []string{
		"/reviews/a&b=c%20d",
		"/reviews?targetId=a%26b%3Dc+d",
		"/accommodations/a&b=c%20d/reviews",
	}, got)
}

func TestCandidates_SkipsIDTemplatesWithoutID(t *testing.T) {
	assert.Equal(t, []string{"/messages", "/messages/send"}, Candidates(OpChatSend, ""))
	assert.Empty(t, Candidates(OpBookingCancel, ""))
}

func TestMaxCandidates(t *testing.T) {
	assert.Equal(t, 4, MaxCandidates())
}
