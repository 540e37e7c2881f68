package domain

// FilterSpec maps a filter key to its constraint. Values may be numbers,
// strings or string lists; absent or empty values match everything.
type FilterSpec map[string]any

const (
	FilterMinPrice  = "minPrice"
	FilterMaxPrice  = "maxPrice"
	FilterType      = "type"
	FilterLocation  = "location"
	FilterAmenities = "amenities"
)

// Filterable is implemented by catalog entities the filter engine can inspect.
type Filterable interface {
	FilterPrice() float64
	FilterType() string
	FilterLocation() string
	FilterAmenities() []string
}
