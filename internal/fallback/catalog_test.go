package fallback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus_market/internal/fallback"
)

func TestCatalog_Deterministic(t *testing.T) {
	a, b := fallback.New(), fallback.New()

	assert.Equal(t, a.Accommodations(), b.Accommodations())
	assert.Equal(t, a.FoodProviders(), b.FoodProviders())
	assert.Equal(t, a.Bookings(), b.Bookings())
	assert.Equal(t, a.Orders(), b.Orders())
	assert.Equal(t, a.Notifications(), b.Notifications())
	assert.Equal(t, a.Menu("fp-9"), b.Menu("fp-9"))
	assert.Equal(t, a.ChatThread("c1"), b.ChatThread("c1"))
	assert.Equal(t, a.Profile("u1"), b.Profile("u1"))
}

func TestCatalog_AccommodationsAreFilterable(t *testing.T) {
	items := fallback.New().Accommodations()
	require.GreaterOrEqual(t, len(items), 2)
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.Greater(t, it.Price, 0.0, it.ID)
		assert.NotEmpty(t, it.Amenities, it.ID)
		assert.NotEmpty(t, it.Type, it.ID)
		assert.NotEmpty(t, it.City, it.ID)
	}
}

func TestCatalog_ListsHaveAtLeastTwoItems(t *testing.T) {
	c := fallback.New()
	assert.GreaterOrEqual(t, len(c.FoodProviders()), 2)
	assert.GreaterOrEqual(t, len(c.Bookings()), 2)
	assert.GreaterOrEqual(t, len(c.Orders()), 2)
	assert.GreaterOrEqual(t, len(c.Notifications()), 2)
	assert.GreaterOrEqual(t, len(c.Menu("x")), 2)
	assert.GreaterOrEqual(t, len(c.ChatThread("x")), 2)
	assert.GreaterOrEqual(t, len(c.Reviews("x")), 2)
}

func TestCatalog_EchoesIDs(t *testing.T) {
	c := fallback.New()

	assert.Equal(t, "u-42", c.Profile("u-42").ID)
	assert.Equal(t, "acc-fb-3", c.Accommodation("acc-fb-3").ID)
	assert.Equal(t, "unknown-acc", c.Accommodation("unknown-acc").ID)
	assert.Equal(t, "fp-77", c.FoodProvider("fp-77").ID)

	for _, m := range c.Menu("fp-77") {
		assert.Equal(t, "fp-77", m.ProviderID)
	}
	for _, m := range c.ChatThread("chat-5") {
		assert.Equal(t, "chat-5", m.ChatID)
	}
	for _, r := range c.Reviews("acc-2") {
		assert.Equal(t, "acc-2", r.TargetID)
	}
}

func TestCatalog_ReturnsFreshCopies(t *testing.T) {
	c := fallback.New()
	first := c.Accommodations()
	first[0].Amenities[0] = "mutated"
	first[0].Price = -1

	second := c.Accommodations()
	assert.Equal(t, "WiFi", second[0].Amenities[0])
	assert.Equal(t, 12000.0, second[0].Price)
}

func TestCatalog_TimestampsAnchored(t *testing.T) {
	for _, b := range fallback.New().Bookings() {
		assert.False(t, b.CreatedAt.IsZero())
		assert.True(t, b.CheckOut.After(b.CheckIn))
		assert.False(t, b.IsSimulated)
	}
}
