// Package filter applies a FilterSpec to in-memory catalog entities. Live
// and synthesized lists go through the same predicates.
package filter

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"campus_market/internal/domain"
)

type predicate func(domain.Filterable) bool

// Apply keeps the items that satisfy every present constraint. The input
// slice is left untouched; the result is always a new slice.
func Apply[T domain.Filterable](items []T, spec domain.FilterSpec) []T {
	preds := compile(spec)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchAll(it, preds) {
			out = append(out, it)
		}
	}
	return out
}

func matchAll(it domain.Filterable, preds []predicate) bool {
	for _, p := range preds {
		if !p(it) {
			return false
		}
	}
	return true
}

// compile turns a FilterSpec into predicates. Unknown keys and malformed
// values are skipped.
func compile(spec domain.FilterSpec) []predicate {
	var ps []predicate
	if v, ok := number(spec[domain.FilterMinPrice]); ok {
		ps = append(ps, func(it domain.Filterable) bool { return it.FilterPrice() >= v })
	}
	if v, ok := number(spec[domain.FilterMaxPrice]); ok {
		ps = append(ps, func(it domain.Filterable) bool { return it.FilterPrice() <= v })
	}
	if want := text(spec[domain.FilterType]); want != "" {
		ps = append(ps, func(it domain.Filterable) bool { return it.FilterType() == want })
	}
	if want := strings.ToLower(text(spec[domain.FilterLocation])); want != "" {
		ps = append(ps, func(it domain.Filterable) bool {
			return strings.Contains(strings.ToLower(it.FilterLocation()), want)
		})
	}
	if want := list(spec[domain.FilterAmenities]); len(want) > 0 {
		ps = append(ps, func(it domain.Filterable) bool { return hasAll(it.FilterAmenities(), want) })
	}
	return ps
}

func hasAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}

func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []string:
		if len(t) > 0 {
			return strings.TrimSpace(t[0])
		}
	}
	return ""
}

// list accepts []string, []any of strings, or a comma-separated string.
func list(v any) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, ",")
	case []string:
		for _, s := range t {
			raw = append(raw, strings.Split(s, ",")...)
		}
	case []any:
		for _, x := range t {
			if s, ok := x.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FromQuery builds a spec from URL query parameters. Repeated parameters
// become lists; every key is copied so unknown ones are simply ignored
// later.
func FromQuery(q url.Values) domain.FilterSpec {
	spec := make(domain.FilterSpec, len(q))
	for k, vs := range q {
		switch len(vs) {
		case 0:
		case 1:
			spec[k] = vs[0]
		default:
			spec[k] = append([]string(nil), vs...)
		}
	}
	return spec
}
