package domain

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusDelivered = "delivered"
)

// Booking is both the listed booking and the acknowledgment of a create or
// cancel call. IsSimulated is the only field that tells a locally built
// acknowledgment apart from one the backend returned.
type Booking struct {
	ID               string    `json:"id"`
	AccommodationID  string    `json:"accommodationId"`
	Accommodation    string    `json:"accommodationTitle"`
	UserID           string    `json:"userId"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	TotalPrice       float64   `json:"totalPrice"`
	Status           string    `json:"status"`
	ConfirmationCode string    `json:"confirmationCode"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	IsSimulated      bool      `json:"isSimulated"`
}

type BookingRequest struct {
	AccommodationID string    `json:"accommodationId"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	TotalPrice      float64   `json:"totalPrice,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	ProviderID      string      `json:"providerId"`
	ProviderName    string      `json:"providerName"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	OrderNumber     string      `json:"orderNumber"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	IsSimulated     bool        `json:"isSimulated"`
}

type OrderRequest struct {
	ProviderID      string      `json:"providerId"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// Total sums quantity * price over the request items.
func (r OrderRequest) Total() float64 {
	var sum float64
	for _, it := range r.Items {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		sum += float64(q) * it.Price
	}
	return sum
}
