// Package recommend ranks catalog items against a questionnaire's
// preference vector. Scores are integer sums of independent contributions,
// so matching more dimensions never lowers a score.
package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"campus_market/internal/domain"
)

// MaxResults caps every ranked list.
const MaxResults = 5

// Items scoring at or below these are dropped. Both sit at or above the
// rating prior's maximum, so a good rating alone never qualifies.
const (
	AccommodationThreshold = 20
	FoodThreshold          = 15
)

type weights struct {
	city, kind, price, overlap, service, rating int
}

var (
	accommodationWeights = weights{city: 30, kind: 25, price: 20, overlap: 20, rating: 15}
	foodWeights          = weights{city: 30, kind: 25, price: 15, overlap: 20, service: 15, rating: 15}
)

type band struct{ min, max float64 }

func (b band) contains(v float64) bool { return v >= b.min && v <= b.max }

var (
	accommodationBands = map[string]band{
		"budget":   {0, 10000},
		"moderate": {10000, 20000},
		"premium":  {20000, math.Inf(1)},
	}
	foodBands = map[string]band{
		"budget":   {0, 1500},
		"moderate": {1500, 3000},
		"premium":  {3000, math.Inf(1)},
	}
)

// Scored is a catalog item with its recommendation score. It marshals as
// the item's own fields plus recommendationScore and matchReasons.
type Scored[T any] struct {
	Item    T
	Score   int
	Reasons []string
}

func (s Scored[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(s.Item)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		fields = map[string]any{"item": json.RawMessage(raw)}
	}
	fields["recommendationScore"] = s.Score
	reasons := s.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	fields["matchReasons"] = reasons
	return json.Marshal(fields)
}

func Accommodations(items []domain.Accommodation, p domain.PreferenceVector) []Scored[domain.Accommodation] {
	return rank(items, func(a domain.Accommodation) (int, []string) { return ScoreAccommodation(a, p) }, AccommodationThreshold)
}

func FoodProviders(items []domain.FoodProvider, p domain.PreferenceVector) []Scored[domain.FoodProvider] {
	return rank(items, func(f domain.FoodProvider) (int, []string) { return ScoreFoodProvider(f, p) }, FoodThreshold)
}

func ScoreAccommodation(a domain.Accommodation, p domain.PreferenceVector) (int, []string) {
	w := accommodationWeights
	var s scorer
	s.exact(w.city, p.City, a.City, "city")
	s.exact(w.kind, p.AccommodationType, a.Type, "type")
	s.priceBand(w.price, p.PriceRange, a.Price, accommodationBands)
	s.overlap(w.overlap, p.Amenities, a.Amenities, "amenities")
	s.rating(w.rating, a.Rating)
	return s.total, s.reasons
}

func ScoreFoodProvider(f domain.FoodProvider, p domain.PreferenceVector) (int, []string) {
	w := foodWeights
	var s scorer
	s.exact(w.city, p.City, f.City, "city")
	s.exact(w.kind, p.CuisineType, f.CuisineType, "cuisine")
	s.exact(w.service, p.ServiceType, f.ServiceType, "service")
	s.priceBand(w.price, p.PriceRange, f.AveragePrice, foodBands)
	s.overlap(w.overlap, p.DietaryRestrictions, f.DietaryOptions, "dietary")
	s.rating(w.rating, f.Rating)
	return s.total, s.reasons
}

func rank[T any](items []T, score func(T) (int, []string), threshold int) []Scored[T] {
	out := make([]Scored[T], 0, len(items))
	for _, it := range items {
		n, why := score(it)
		if n <= threshold {
			continue
		}
		out = append(out, Scored[T]{Item: it, Score: n, Reasons: why})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

type scorer struct {
	total   int
	reasons []string
}

func (s *scorer) add(n int, reason string) {
	if n <= 0 {
		return
	}
	s.total += n
	s.reasons = append(s.reasons, reason)
}

func (s *scorer) exact(weight int, want, have, label string) {
	want = strings.TrimSpace(want)
	if want == "" {
		return
	}
	if strings.EqualFold(want, strings.TrimSpace(have)) {
		s.add(weight, fmt.Sprintf("%s matches %s", label, have))
	}
}

func (s *scorer) priceBand(weight int, pref string, price float64, named map[string]band) {
	b, ok := parseBand(pref, named)
	if !ok {
		return
	}
	if b.contains(price) {
		s.add(weight, fmt.Sprintf("price %.0f within %s", price, strings.TrimSpace(pref)))
	}
}

func (s *scorer) overlap(limit int, want, have []string, label string) {
	requested := 0
	matched := 0
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		requested++
		if _, ok := set[w]; ok {
			matched++
		}
	}
	if requested == 0 || matched == 0 {
		return
	}
	n := int(math.Round(float64(limit) * float64(matched) / float64(requested)))
	s.add(n, fmt.Sprintf("%d of %d %s", matched, requested, label))
}

func (s *scorer) rating(weight int, r float64) {
	if r <= 0 {
		return
	}
	if r > 5 {
		r = 5
	}
	s.add(int(math.Round(float64(weight)*r/5)), fmt.Sprintf("rated %.1f", r))
}

// parseBand accepts a named band, "min-max" or "min+". Anything else is
// ignored by the caller.
func parseBand(pref string, named map[string]band) (band, bool) {
	p := strings.ToLower(strings.TrimSpace(pref))
	if p == "" {
		return band{}, false
	}
	if b, ok := named[p]; ok {
		return b, true
	}
	clean := strings.NewReplacer(",", "", "_", "").Replace(p)
	if strings.HasSuffix(clean, "+") {
		lo, err := strconv.ParseFloat(strings.TrimSuffix(clean, "+"), 64)
		if err != nil {
			return band{}, false
		}
		return band{lo, math.Inf(1)}, true
	}
	lo, hi, found := strings.Cut(clean, "-")
	if !found {
		return band{}, false
	}
	l, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	h, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err1 != nil || err2 != nil || h < l {
		return band{}, false
	}
	return band{l, h}, true
}
