package domain

import "strings"

type Kind string

const (
	KindAccommodation Kind = "accommodation"
	KindFood          Kind = "food"
)

func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accommodation", "accommodations", "housing":
		return KindAccommodation, true
	case "food", "food-providers", "foodproviders", "restaurants":
		return KindFood, true
	}
	return "", false
}

// PreferenceVector is the questionnaire outcome fed to the recommender.
// Zero-valued dimensions are "not set".
type PreferenceVector struct {
	City                string   `json:"city,omitempty" yaml:"city,omitempty"`
	AccommodationType   string   `json:"accommodationType,omitempty" yaml:"accommodationType,omitempty"`
	PriceRange          string   `json:"priceRange,omitempty" yaml:"priceRange,omitempty"`
	Amenities           []string `json:"amenities,omitempty" yaml:"amenities,omitempty"`
	CuisineType         string   `json:"cuisineType,omitempty" yaml:"cuisineType,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty" yaml:"dietaryRestrictions,omitempty"`
	ServiceType         string   `json:"serviceType,omitempty" yaml:"serviceType,omitempty"`
}

// Set records one questionnaire answer. Set-valued dimensions accept a
// comma-separated list and accumulate without duplicates. It reports
// whether the dimension is known.
func (p *PreferenceVector) Set(dimension, value string) bool {
	value = strings.TrimSpace(value)
	switch dimension {
	case "city":
		p.City = value
	case "accommodationType":
		p.AccommodationType = value
	case "priceRange":
		p.PriceRange = value
	case "cuisineType":
		p.CuisineType = value
	case "serviceType":
		p.ServiceType = value
	case "amenities":
		p.Amenities = addUnique(p.Amenities, value)
	case "dietaryRestrictions":
		p.DietaryRestrictions = addUnique(p.DietaryRestrictions, value)
	default:
		return false
	}
	return true
}

func (p *PreferenceVector) Reset() { *p = PreferenceVector{} }

func addUnique(set []string, csv string) []string {
	for _, v := range strings.Split(csv, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, have := range set {
			if strings.EqualFold(have, v) {
				dup = true
				break
			}
		}
		if !dup {
			set = append(set, v)
		}
	}
	return set
}
