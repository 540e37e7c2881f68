package domain

import "time"

type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"` // student|landlord|vendor
	University string    `json:"university"`
	AvatarURL  string    `json:"avatarUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ProfileUpdate struct {
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	University string `json:"university,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // booking|order|message|system
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Review struct {
	ID          string    `json:"id"`
	TargetID    string    `json:"targetId"`
	TargetType  string    `json:"targetType"` // accommodation|food
	UserID      string    `json:"userId"`
	Author      string    `json:"author"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
	IsSimulated bool      `json:"isSimulated"`
}

type ReviewRequest struct {
	TargetID   string  `json:"targetId"`
	TargetType string  `json:"targetType"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment"`
}

type ChatMessage struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chatId"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	Read        bool      `json:"read"`
	SentAt      time.Time `json:"sentAt"`
	IsSimulated bool      `json:"isSimulated"`
}

type MessageRequest struct {
	ChatID      string `json:"chatId"`
	RecipientID string `json:"recipientId"`
	Text        string `json:"text"`
}

// Dashboard is the best-effort aggregate served to the home screen.
type Dashboard struct {
	Profile        Profile         `json:"profile"`
	Accommodations []Accommodation `json:"accommodations"`
	Bookings       []Booking       `json:"bookings"`
	Orders         []Order         `json:"orders"`
	Notifications  []Notification  `json:"notifications"`
	UnreadCount    int             `json:"unreadCount"`
}
