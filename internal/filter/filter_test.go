package filter_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus_market/internal/domain"
	"campus_market/internal/fallback"
	"campus_market/internal/filter"
)

func ids(items []domain.Accommodation) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func fixture() []domain.Accommodation {
	return []domain.Accommodation{
		{ID: "a1", Type: "studio", Price: 10000, Location: "Akoka", City: "Lagos", Amenities: []string{"WiFi", "Water"}},
		{ID: "a2", Type: "shared", Price: 6500, Location: "Agbowo", City: "Ibadan", Amenities: []string{"wifi"}},
		{ID: "a3", Type: "studio", Price: 15000, Location: "Yaba", City: "Lagos", Amenities: []string{}},
		{ID: "a4", Type: "apartment", Price: 32000, Location: "Bodija", City: "Ibadan", Amenities: []string{"Parking", "WiFi", "Water"}},
	}
}

func TestApply_EmptySpecKeepsEverything(t *testing.T) {
	got := filter.Apply(fixture(), nil)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, ids(got))

	got = filter.Apply(fixture(), domain.FilterSpec{"type": "", "amenities": []string{}, "location": "  ", "minPrice": ""})
	assert.Len(t, got, 4)
}

func TestApply_PriceRangeInclusive(t *testing.T) {
	got := filter.Apply(fixture(), domain.FilterSpec{"minPrice": 6500, "maxPrice": "15000"})
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(got))
}

func TestApply_NonNumericPriceIgnored(t *testing.T) {
	got := filter.Apply(fixture(), domain.FilterSpec{"maxPrice": "cheap", "minPrice": true})
	assert.Len(t, got, 4)
}

func TestApply_TypeIsExact(t *testing.T) {
	assert.Equal(t, []string{"a1", "a3"}, ids(filter.Apply(fixture(), domain.FilterSpec{"type": "studio"})))
	assert.Empty(t, filter.Apply(fixture(), domain.FilterSpec{"type": "Studio"}))
}

func TestApply_LocationSubstringCaseInsensitive(t *testing.T) {
	assert.Equal(t, []string{"a1", "a3"}, ids(filter.Apply(fixture(), domain.FilterSpec{"location": "lagos"})))
	assert.Equal(t, []string{"a2"}, ids(filter.Apply(fixture(), domain.FilterSpec{"location": "AGBO"})))
}

func TestApply_AmenitiesSubset(t *testing.T) {
	assert.Equal(t, []string{"a1", "a2", "a4"}, ids(filter.Apply(fixture(), domain.FilterSpec{"amenities": []string{"WIFI"}})))
	assert.Equal(t, []string{"a1", "a4"}, ids(filter.Apply(fixture(), domain.FilterSpec{"amenities": "wifi, water"})))
	assert.Equal(t, []string{"a4"}, ids(filter.Apply(fixture(), domain.FilterSpec{"amenities": []any{"parking", "water"}})))
}

func TestApply_UnknownKeysIgnored(t *testing.T) {
	got := filter.Apply(fixture(), domain.FilterSpec{"bedrooms": 3, "sort": "price"})
	assert.Len(t, got, 4)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := fixture()
	out := filter.Apply(in, domain.FilterSpec{"type": "studio"})
	require.Len(t, out, 2)
	out[0].Price = 1

	assert.Equal(t, before, in)
}

func TestApply_FoodProviders(t *testing.T) {
	items := fallback.New().FoodProviders()
	got := filter.Apply(items, domain.FilterSpec{"type": "Healthy", "amenities": "vegan"})
	require.Len(t, got, 1)
	assert.Equal(t, "fp-fb-3", got[0].ID)
}

// A list decoded from a live-shaped JSON payload with the same values must
// filter exactly like the synthesized original.
func TestApply_SameResultForLiveAndSynthesized(t *testing.T) {
	synth := fallback.New().Accommodations()
	raw, err := json.Marshal(synth)
	require.NoError(t, err)
	var live []domain.Accommodation
	require.NoError(t, json.Unmarshal(raw, &live))

	specs := []domain.FilterSpec{
		{},
		{"maxPrice": 15000},
		{"location": "ibadan"},
		{"amenities": []string{"wifi", "security"}},
		{"type": "self-contain", "minPrice": "1000"},
	}
	for _, s := range specs {
		assert.Equal(t, ids(filter.Apply(synth, s)), ids(filter.Apply(live, s)), "spec %v", s)
	}
}

func TestApply_AddingConstraintsNeverGrowsResult(t *testing.T) {
	items := append(fixture(), fallback.New().Accommodations()...)
	chain := []domain.FilterSpec{
		{},
		{"location": "a"},
		{"location": "a", "maxPrice": 20000},
		{"location": "a", "maxPrice": 20000, "amenities": "wifi"},
		{"location": "a", "maxPrice": 20000, "amenities": "wifi", "minPrice": 9000},
		{"location": "a", "maxPrice": 20000, "amenities": "wifi", "minPrice": 9000, "type": "studio"},
	}
	prev := ids(filter.Apply(items, chain[0]))
	for _, s := range chain[1:] {
		cur := ids(filter.Apply(items, s))
		assert.Subset(t, prev, cur, "spec %v", s)
		prev = cur
	}
}

func TestFromQuery(t *testing.T) {
	q := url.Values{"maxPrice": {"15000"}, "amenities": {"WiFi", "Water"}, "page": {"2"}}
	spec := filter.FromQuery(q)
	assert.Equal(t, "15000", spec["maxPrice"])
	assert.Equal(t, []string{"WiFi", "Water"}, spec["amenities"])
	assert.Equal(t, "2", spec["page"])

	got := filter.Apply(fixture(), spec)
	assert.Equal(t, []string{"a1"}, ids(got))
}
