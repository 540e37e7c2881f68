package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"campus_market/internal/domain"
)

// Each write issues one logical call over the candidate chain. When the
// backend answers 2xx with a usable entity, that entity wins. A 2xx with no
// usable body yields the locally built acknowledgment with IsSimulated=false.
// Exhaustion yields the same acknowledgment with IsSimulated=true.

func (s *Service) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	if strings.TrimSpace(req.AccommodationID) == "" {
		return domain.Booking{}, invalid("accommodation id")
	}
	if !req.CheckIn.IsZero() && !req.CheckOut.IsZero() && req.CheckOut.Before(req.CheckIn) {
		return domain.Booking{}, invalid("check-out before check-in")
	}
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	now := s.now()
	ack := domain.Booking{
		ID:               s.localID(),
		AccommodationID:  req.AccommodationID,
		CheckIn:          req.CheckIn,
		CheckOut:         req.CheckOut,
		TotalPrice:       req.TotalPrice,
		Status:           domain.StatusPending,
		ConfirmationCode: s.code("BK"),
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	resp, err := s.call(ctx, OpBookingCreate, req.AccommodationID, http.MethodPost, req)
	if err != nil {
		degraded(OpBookingCreate, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	b, ok := normalizeOne(resp.Body, bookingMapper(domain.StatusPending), "booking")
	if !ok {
		log.Debug().Str("route", resp.Route).Msg("booking accepted without entity body")
		return ack, nil
	}
	return mergeBooking(b, ack), nil
}

func (s *Service) CancelBooking(ctx context.Context, id string) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, invalid("booking id")
	}
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	ack := domain.Booking{ID: id, Status: domain.StatusCancelled, UpdatedAt: s.now()}
	resp, err := s.call(ctx, OpBookingCancel, id, http.MethodPut, map[string]string{"status": domain.StatusCancelled})
	if err != nil {
		degraded(OpBookingCancel, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	b, ok := normalizeOne(resp.Body, bookingMapper(domain.StatusCancelled), "booking")
	if !ok {
		return ack, nil
	}
	return mergeBooking(b, ack), nil
}

func (s *Service) CreateFoodOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	if strings.TrimSpace(req.ProviderID) == "" {
		return domain.Order{}, invalid("provider id")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, invalid("order has no items")
	}
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	now := s.now()
	items := make([]domain.OrderItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		if items[i].Quantity <= 0 {
			items[i].Quantity = 1
		}
	}
	ack := domain.Order{
		ID:              s.localID(),
		ProviderID:      req.ProviderID,
		Items:           items,
		TotalAmount:     req.Total(),
		Status:          domain.StatusPending,
		OrderNumber:     s.code("OR"),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	resp, err := s.call(ctx, OpOrderCreate, req.ProviderID, http.MethodPost, req)
	if err != nil {
		degraded(OpOrderCreate, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	o, ok := normalizeOne(resp.Body, orderMapper(domain.StatusPending), "order", "foodOrder")
	if !ok {
		return ack, nil
	}
	return mergeOrder(o, ack), nil
}

func (s *Service) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, invalid("order id")
	}
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	ack := domain.Order{ID: id, Items: []domain.OrderItem{}, Status: domain.StatusCancelled, UpdatedAt: s.now()}
	resp, err := s.call(ctx, OpOrderCancel, id, http.MethodPut, map[string]string{"status": domain.StatusCancelled})
	if err != nil {
		degraded(OpOrderCancel, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	o, ok := normalizeOne(resp.Body, orderMapper(domain.StatusCancelled), "order", "foodOrder")
	if !ok {
		return ack, nil
	}
	return mergeOrder(o, ack), nil
}

func (s *Service) CreateReview(ctx context.Context, req domain.ReviewRequest) (domain.Review, error) {
	if strings.TrimSpace(req.TargetID) == "" {
		return domain.Review{}, invalid("review target id")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Review{}, invalid("rating must be between 1 and 5")
	}
	if err := ctx.Err(); err != nil {
		return domain.Review{}, err
	}
	ack := domain.Review{
		ID:         s.localID(),
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  s.now(),
	}
	resp, err := s.call(ctx, OpReviewCreate, req.TargetID, http.MethodPost, req)
	if err != nil {
		degraded(OpReviewCreate, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	r, ok := normalizeOne(resp.Body, reviewMapper(req.TargetID), "review")
	if !ok {
		return ack, nil
	}
	if r.TargetType == "" {
		r.TargetType = ack.TargetType
	}
	if r.Rating == 0 {
		r.Rating = ack.Rating
	}
	if r.Comment == "" {
		r.Comment = ack.Comment
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = ack.CreatedAt
	}
	return r, nil
}

func (s *Service) SendMessage(ctx context.Context, req domain.MessageRequest) (domain.ChatMessage, error) {
	if strings.TrimSpace(req.ChatID) == "" && strings.TrimSpace(req.RecipientID) == "" {
		return domain.ChatMessage{}, invalid("chat or recipient id")
	}
	if strings.TrimSpace(req.Text) == "" {
		return domain.ChatMessage{}, invalid("empty message")
	}
	if err := ctx.Err(); err != nil {
		return domain.ChatMessage{}, err
	}
	ack := domain.ChatMessage{
		ID:          s.localID(),
		ChatID:      req.ChatID,
		RecipientID: req.RecipientID,
		Text:        req.Text,
		SentAt:      s.now(),
	}
	resp, err := s.call(ctx, OpChatSend, req.ChatID, http.MethodPost, req)
	if err != nil {
		degraded(OpChatSend, "simulated", err)
		ack.IsSimulated = true
		return ack, nil
	}
	m, ok := normalizeOne(resp.Body, messageMapper(req.ChatID), "message")
	if !ok {
		return ack, nil
	}
	if m.RecipientID == "" {
		m.RecipientID = ack.RecipientID
	}
	if m.Text == "" {
		m.Text = ack.Text
	}
	if m.SentAt.IsZero() {
		m.SentAt = ack.SentAt
	}
	return m, nil
}

// UpdateProfile applies the update on top of the profile the backend
// returns. An update accepted without a body is applied to a fresh read,
// which is live when a profile route answers.
func (s *Service) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	resp, err := s.call(ctx, OpProfileUpdate, "", http.MethodPut, upd)
	if err != nil {
		degraded(OpProfileUpdate, "simulated", err)
		return applyProfile(s.synth.Profile(""), upd), nil
	}
	if p, ok := normalizeOne(resp.Body, mapProfile, "user", "profile"); ok {
		return applyProfile(p, upd), nil
	}
	p, err := s.GetProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	return applyProfile(p, upd), nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Notification{}, invalid("notification id")
	}
	if err := ctx.Err(); err != nil {
		return domain.Notification{}, err
	}
	resp, err := s.call(ctx, OpNotificationRead, id, http.MethodPut, map[string]bool{"read": true})
	if err == nil {
		if n, ok := normalizeOne(resp.Body, mapNotification, "notification"); ok {
			n.Read = true
			return n, nil
		}
	} else {
		degraded(OpNotificationRead, "simulated", err)
	}
	for _, n := range s.synth.Notifications() {
		if n.ID == id {
			n.Read = true
			return n, nil
		}
	}
	return domain.Notification{ID: id, Read: true, CreatedAt: s.now()}, nil
}

/********** merge helpers **********/

// mergeBooking keeps server values and fills what the server left out.
func mergeBooking(b, ack domain.Booking) domain.Booking {
	if b.AccommodationID == "" {
		b.AccommodationID = ack.AccommodationID
	}
	if b.CheckIn.IsZero() {
		b.CheckIn = ack.CheckIn
	}
	if b.CheckOut.IsZero() {
		b.CheckOut = ack.CheckOut
	}
	if b.TotalPrice == 0 {
		b.TotalPrice = ack.TotalPrice
	}
	if b.Notes == "" {
		b.Notes = ack.Notes
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = ack.CreatedAt
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = ack.UpdatedAt
	}
	return b
}

func mergeOrder(o, ack domain.Order) domain.Order {
	if o.ProviderID == "" {
		o.ProviderID = ack.ProviderID
	}
	if len(o.Items) == 0 {
		o.Items = ack.Items
		if o.TotalAmount == 0 {
			o.TotalAmount = ack.TotalAmount
		}
	}
	if o.DeliveryAddress == "" {
		o.DeliveryAddress = ack.DeliveryAddress
	}
	if o.Notes == "" {
		o.Notes = ack.Notes
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = ack.CreatedAt
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = ack.UpdatedAt
	}
	return o
}

func applyProfile(p domain.Profile, upd domain.ProfileUpdate) domain.Profile {
	if upd.Name != "" {
		p.Name = upd.Name
	}
	if upd.Phone != "" {
		p.Phone = upd.Phone
	}
	if upd.University != "" {
		p.University = upd.University
	}
	if upd.AvatarURL != "" {
		p.AvatarURL = upd.AvatarURL
	}
	return p
}
