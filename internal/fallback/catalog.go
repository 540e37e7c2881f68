// Package fallback builds the placeholder data served when no candidate
// route answers. Everything here is fixed: same input, same output.
package fallback

import (
	"time"

	"campus_market/internal/domain"
)

// BaseTime anchors every synthesized timestamp.
var BaseTime = time.Date(2024, time.September, 2, 9, 0, 0, 0, time.UTC)

const guestUserID = "user-fb-1"

type Catalog struct{ base time.Time }

var _ domain.Synthesizer = (*Catalog)(nil)

func New() *Catalog { return &Catalog{base: BaseTime} }

func (c *Catalog) at(days, hours int) time.Time {
	return c.base.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

func (c *Catalog) Profile(id string) domain.Profile {
	if id == "" {
		id = guestUserID
	}
	return domain.Profile{
		ID:         id,
		Name:       "Guest Student",
		Email:      "guest@student.example",
		Phone:      "+234 800 000 0000",
		Role:       "student",
		University: "University of Lagos",
		AvatarURL:  "",
		CreatedAt:  c.at(-120, 0),
	}
}

func (c *Catalog) Accommodations() []domain.Accommodation {
	return []domain.Accommodation{
		{
			ID: "acc-fb-1", Title: "Cozy Studio near Main Gate",
			Description: "Quiet studio five minutes from the main gate.",
			Type:        "studio", Price: 12000, Currency: "NGN",
			Location: "Akoka, Yaba", City: "Lagos",
			Coords:    &domain.Coords{Lat: 6.5158, Lon: 3.3896},
			Amenities: []string{"WiFi", "Water", "Security", "Furnished"},
			Images:    []string{}, Rating: 4.5, Available: true, OwnerID: "owner-fb-1",
		},
		{
			ID: "acc-fb-2", Title: "Shared Room, Unity Hostel",
			Description: "Two-person room in a supervised hostel.",
			Type:        "shared", Price: 6500, Currency: "NGN",
			Location: "Agbowo", City: "Ibadan",
			Coords:    &domain.Coords{Lat: 7.4443, Lon: 3.9003},
			Amenities: []string{"WiFi", "Security", "Laundry"},
			Images:    []string{}, Rating: 4.0, Available: true, OwnerID: "owner-fb-2",
		},
		{
			ID: "acc-fb-3", Title: "Self-contain with Kitchen",
			Description: "Self-contained unit with a private kitchen and steady water.",
			Type:        "self-contain", Price: 18000, Currency: "NGN",
			Location: "Bodija", City: "Ibadan",
			Coords:    &domain.Coords{Lat: 7.4352, Lon: 3.9133},
			Amenities: []string{"Kitchen", "Water", "Parking", "Generator"},
			Images:    []string{}, Rating: 4.2, Available: true, OwnerID: "owner-fb-2",
		},
		{
			ID: "acc-fb-4", Title: "Two-bedroom Apartment",
			Description: "Spacious flat for sharing, close to the shuttle route.",
			Type:        "apartment", Price: 32000, Currency: "NGN",
			Location: "Surulere", City: "Lagos",
			Coords:    &domain.Coords{Lat: 6.4969, Lon: 3.3481},
			Amenities: []string{"WiFi", "Air Conditioning", "Parking", "Generator", "Security"},
			Images:    []string{}, Rating: 4.8, Available: false, OwnerID: "owner-fb-1",
		},
	}
}

// Accommodation returns the matching placeholder, or the first one with
// its identity replaced by id.
func (c *Catalog) Accommodation(id string) domain.Accommodation {
	all := c.Accommodations()
	for _, a := range all {
		if a.ID == id {
			return a
		}
	}
	a := all[0]
	if id != "" {
		a.ID = id
	}
	return a
}

func (c *Catalog) FoodProviders() []domain.FoodProvider {
	return []domain.FoodProvider{
		{
			ID: "fp-fb-1", Name: "Mama Put Kitchen", Description: "Home-style rice and soups.",
			CuisineType: "Nigerian", ServiceType: "delivery", AveragePrice: 1500,
			Location: "Akoka", City: "Lagos", DietaryOptions: []string{"Halal"},
			Images: []string{}, Rating: 4.4, OpeningHours: "08:00-21:00", IsOpen: true,
		},
		{
			ID: "fp-fb-2", Name: "Campus Grill", Description: "Burgers, wraps and shawarma.",
			CuisineType: "Fast Food", ServiceType: "pickup", AveragePrice: 2500,
			Location: "Yaba", City: "Lagos", DietaryOptions: []string{"Vegetarian"},
			Images: []string{}, Rating: 4.1, OpeningHours: "10:00-23:00", IsOpen: true,
		},
		{
			ID: "fp-fb-3", Name: "Green Bowl", Description: "Salads, grain bowls and smoothies.",
			CuisineType: "Healthy", ServiceType: "delivery", AveragePrice: 3200,
			Location: "Bodija", City: "Ibadan", DietaryOptions: []string{"Vegan", "Vegetarian", "Gluten-Free"},
			Images: []string{}, Rating: 4.7, OpeningHours: "09:00-20:00", IsOpen: true,
		},
		{
			ID: "fp-fb-4", Name: "Suya Spot", Description: "Grilled suya and small chops.",
			CuisineType: "Grill", ServiceType: "dine-in", AveragePrice: 1800,
			Location: "Agbowo", City: "Ibadan", DietaryOptions: []string{"Halal"},
			Images: []string{}, Rating: 4.3, OpeningHours: "16:00-00:00", IsOpen: false,
		},
	}
}

func (c *Catalog) FoodProvider(id string) domain.FoodProvider {
	all := c.FoodProviders()
	for _, f := range all {
		if f.ID == id {
			return f
		}
	}
	f := all[0]
	if id != "" {
		f.ID = id
	}
	return f
}

func (c *Catalog) Menu(providerID string) []domain.MenuItem {
	if providerID == "" {
		providerID = "fp-fb-1"
	}
	return []domain.MenuItem{
		{ID: providerID + "-m1", ProviderID: providerID, Name: "Jollof Rice & Chicken", Description: "Party jollof with grilled chicken.", Category: "Mains", Price: 1500, Dietary: []string{"Halal"}, Available: true},
		{ID: providerID + "-m2", ProviderID: providerID, Name: "Fried Plantain", Description: "Sweet dodo, side portion.", Category: "Sides", Price: 500, Dietary: []string{"Vegan", "Vegetarian"}, Available: true},
		{ID: providerID + "-m3", ProviderID: providerID, Name: "Zobo Drink", Description: "Chilled hibiscus drink.", Category: "Drinks", Price: 300, Dietary: []string{"Vegan"}, Available: true},
	}
}

func (c *Catalog) Bookings() []domain.Booking {
	return []domain.Booking{
		{
			ID: "bk-fb-1", AccommodationID: "acc-fb-1", Accommodation: "Cozy Studio near Main Gate",
			UserID: guestUserID, CheckIn: c.at(14, 3), CheckOut: c.at(14+180, 3),
			TotalPrice: 72000, Status: domain.StatusConfirmed, ConfirmationCode: "BK-FB0001",
			CreatedAt: c.at(-3, 0), UpdatedAt: c.at(-2, 0),
		},
		{
			ID: "bk-fb-2", AccommodationID: "acc-fb-3", Accommodation: "Self-contain with Kitchen",
			UserID: guestUserID, CheckIn: c.at(30, 3), CheckOut: c.at(30+90, 3),
			TotalPrice: 54000, Status: domain.StatusPending, ConfirmationCode: "BK-FB0002",
			CreatedAt: c.at(-1, 0), UpdatedAt: c.at(-1, 0),
		},
	}
}

func (c *Catalog) Orders() []domain.Order {
	return []domain.Order{
		{
			ID: "ord-fb-1", ProviderID: "fp-fb-1", ProviderName: "Mama Put Kitchen", UserID: guestUserID,
			Items: []domain.OrderItem{
				{MenuItemID: "fp-fb-1-m1", Name: "Jollof Rice & Chicken", Quantity: 2, Price: 1500},
				{MenuItemID: "fp-fb-1-m3", Name: "Zobo Drink", Quantity: 2, Price: 300},
			},
			TotalAmount: 3600, Status: domain.StatusDelivered, OrderNumber: "OR-FB0001",
			DeliveryAddress: "Room 12, Akoka Hall", CreatedAt: c.at(-2, 4), UpdatedAt: c.at(-2, 5),
		},
		{
			ID: "ord-fb-2", ProviderID: "fp-fb-3", ProviderName: "Green Bowl", UserID: guestUserID,
			Items: []domain.OrderItem{
				{MenuItemID: "fp-fb-3-m1", Name: "Quinoa Bowl", Quantity: 1, Price: 3200},
			},
			TotalAmount: 3200, Status: domain.StatusPending, OrderNumber: "OR-FB0002",
			DeliveryAddress: "Room 12, Akoka Hall", CreatedAt: c.at(0, 1), UpdatedAt: c.at(0, 1),
		},
	}
}

func (c *Catalog) Notifications() []domain.Notification {
	return []domain.Notification{
		{ID: "nt-fb-1", Title: "Booking confirmed", Message: "Your booking BK-FB0001 is confirmed.", Type: "booking", Read: false, CreatedAt: c.at(-2, 0)},
		{ID: "nt-fb-2", Title: "Order delivered", Message: "Mama Put Kitchen delivered order OR-FB0001.", Type: "order", Read: true, CreatedAt: c.at(-2, 5)},
		{ID: "nt-fb-3", Title: "Welcome", Message: "Find housing and food near campus.", Type: "system", Read: true, CreatedAt: c.at(-120, 0)},
	}
}

func (c *Catalog) Reviews(targetID string) []domain.Review {
	if targetID == "" {
		targetID = "acc-fb-1"
	}
	return []domain.Review{
		{ID: targetID + "-r1", TargetID: targetID, TargetType: "accommodation", UserID: "user-fb-2", Author: "Ada", Rating: 5, Comment: "Clean, safe and close to lectures.", CreatedAt: c.at(-30, 0)},
		{ID: targetID + "-r2", TargetID: targetID, TargetType: "accommodation", UserID: "user-fb-3", Author: "Tunde", Rating: 4, Comment: "Good value, water can be irregular.", CreatedAt: c.at(-12, 0)},
	}
}

func (c *Catalog) ChatThread(chatID string) []domain.ChatMessage {
	if chatID == "" {
		chatID = "chat-fb-1"
	}
	return []domain.ChatMessage{
		{ID: chatID + "-1", ChatID: chatID, SenderID: guestUserID, RecipientID: "owner-fb-1", Text: "Hello, is the studio still available?", Read: true, SentAt: c.at(-1, 2)},
		{ID: chatID + "-2", ChatID: chatID, SenderID: "owner-fb-1", RecipientID: guestUserID, Text: "Yes it is. You can come for an inspection tomorrow.", Read: true, SentAt: c.at(-1, 3)},
		{ID: chatID + "-3", ChatID: chatID, SenderID: guestUserID, RecipientID: "owner-fb-1", Text: "Great, see you at 10am.", Read: false, SentAt: c.at(-1, 4)},
	}
}
