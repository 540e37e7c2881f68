package app

import (
	"context"

	"campus_market/internal/domain"
	"campus_market/internal/filter"
)

func (s *Service) GetProfile(ctx context.Context) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	return fetchOne(ctx, s, OpProfile, "", mapProfile,
		func() domain.Profile { return s.synth.Profile("") }, "user", "profile"), nil
}

func (s *Service) GetAccommodations(ctx context.Context, spec domain.FilterSpec) ([]domain.Accommodation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := fetchList(ctx, s, OpAccommodations, "", mapAccommodation, s.synth.Accommodations,
		"accommodations", "properties", "listings")
	return filter.Apply(items, spec), nil
}

func (s *Service) GetAccommodation(ctx context.Context, id string) (domain.Accommodation, error) {
	if id == "" {
		return domain.Accommodation{}, invalid("accommodation id")
	}
	if err := ctx.Err(); err != nil {
		return domain.Accommodation{}, err
	}
	return fetchOne(ctx, s, OpAccommodation, id, mapAccommodation,
		func() domain.Accommodation { return s.synth.Accommodation(id) },
		"accommodation", "property", "listing"), nil
}

func (s *Service) GetFoodProviders(ctx context.Context, spec domain.FilterSpec) ([]domain.FoodProvider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := fetchList(ctx, s, OpFoodProviders, "", mapFoodProvider, s.synth.FoodProviders,
		"foodProviders", "providers", "restaurants", "vendors")
	return filter.Apply(items, spec), nil
}

func (s *Service) GetFoodProvider(ctx context.Context, id string) (domain.FoodProvider, error) {
	if id == "" {
		return domain.FoodProvider{}, invalid("food provider id")
	}
	if err := ctx.Err(); err != nil {
		return domain.FoodProvider{}, err
	}
	return fetchOne(ctx, s, OpFoodProvider, id, mapFoodProvider,
		func() domain.FoodProvider { return s.synth.FoodProvider(id) },
		"foodProvider", "provider", "restaurant", "vendor"), nil
}

func (s *Service) GetMenu(ctx context.Context, providerID string) ([]domain.MenuItem, error) {
	if providerID == "" {
		return nil, invalid("provider id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpMenu, providerID, menuItemMapper(providerID),
		func() []domain.MenuItem { return s.synth.Menu(providerID) },
		"menu", "menuItems", "items"), nil
}

func (s *Service) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpBookings, "", bookingMapper(domain.StatusPending), s.synth.Bookings, "bookings"), nil
}

func (s *Service) GetOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpOrders, "", orderMapper(domain.StatusPending), s.synth.Orders, "orders", "foodOrders"), nil
}

func (s *Service) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpNotifications, "", mapNotification, s.synth.Notifications, "notifications"), nil
}

func (s *Service) GetReviews(ctx context.Context, targetID string) ([]domain.Review, error) {
	if targetID == "" {
		return nil, invalid("review target id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpReviews, targetID, reviewMapper(targetID),
		func() []domain.Review { return s.synth.Reviews(targetID) }, "reviews"), nil
}

func (s *Service) GetChatMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	if chatID == "" {
		return nil, invalid("chat id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fetchList(ctx, s, OpChatMessages, chatID, messageMapper(chatID),
		func() []domain.ChatMessage { return s.synth.ChatThread(chatID) }, "messages", "chat"), nil
}
