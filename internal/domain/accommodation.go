package domain

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Accommodation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // studio|self-contain|shared|hostel|apartment
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Location    string   `json:"location"`
	City        string   `json:"city"`
	Coords      *Coords  `json:"coords,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"` // 0 when unrated
	Available   bool     `json:"available"`
	OwnerID     string   `json:"ownerId"`
}

func (a Accommodation) FilterPrice() float64      { return a.Price }
func (a Accommodation) FilterType() string        { return a.Type }
func (a Accommodation) FilterLocation() string    { return joinLocation(a.Location, a.City) }
func (a Accommodation) FilterAmenities() []string { return a.Amenities }

type FoodProvider struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	CuisineType    string   `json:"cuisineType"`
	ServiceType    string   `json:"serviceType"` // delivery|pickup|dine-in
	AveragePrice   float64  `json:"averagePrice"`
	Location       string   `json:"location"`
	City           string   `json:"city"`
	DietaryOptions []string `json:"dietaryOptions"`
	Images         []string `json:"images"`
	Rating         float64  `json:"rating"`
	OpeningHours   string   `json:"openingHours"`
	IsOpen         bool     `json:"isOpen"`
}

func (f FoodProvider) FilterPrice() float64      { return f.AveragePrice }
func (f FoodProvider) FilterType() string        { return f.CuisineType }
func (f FoodProvider) FilterLocation() string    { return joinLocation(f.Location, f.City) }
func (f FoodProvider) FilterAmenities() []string { return f.DietaryOptions }

type MenuItem struct {
	ID          string   `json:"id"`
	ProviderID  string   `json:"providerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Dietary     []string `json:"dietary"`
	Available   bool     `json:"available"`
}

func joinLocation(location, city string) string {
	switch {
	case location == "":
		return city
	case city == "":
		return location
	}
	return location + ", " + city
}
