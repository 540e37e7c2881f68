package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"campus_market/internal/domain"
	"campus_market/internal/recommend"
)

const dashboardFeatured = 6

// Dashboard fans out the home-screen reads. Each part degrades on its own,
// so one dead route never blanks the rest.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, err
	}
	var (
		d domain.Dashboard
		g errgroup.Group
	)
	g.Go(func() (err error) { d.Profile, err = s.GetProfile(ctx); return })
	g.Go(func() (err error) {
		accs, err := s.GetAccommodations(ctx, domain.FilterSpec{})
		if len(accs) > dashboardFeatured {
			accs = accs[:dashboardFeatured]
		}
		d.Accommodations = accs
		return err
	})
	g.Go(func() (err error) { d.Bookings, err = s.GetBookings(ctx); return })
	g.Go(func() (err error) { d.Orders, err = s.GetOrders(ctx); return })
	g.Go(func() (err error) { d.Notifications, err = s.GetNotifications(ctx); return })
	if err := g.Wait(); err != nil {
		// only caller cancellation reaches here
		log.Debug().Err(err).Msg("dashboard partially cancelled")
	}
	for _, n := range d.Notifications {
		if !n.Read {
			d.UnreadCount++
		}
	}
	d.Accommodations = nonNil(d.Accommodations)
	d.Bookings = nonNil(d.Bookings)
	d.Orders = nonNil(d.Orders)
	d.Notifications = nonNil(d.Notifications)
	return d, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// RecommendAccommodations scores the current listing, live or synthesized.
func (s *Service) RecommendAccommodations(ctx context.Context, prefs domain.PreferenceVector) ([]recommend.Scored[domain.Accommodation], error) {
	items, err := s.GetAccommodations(ctx, nil)
	if err != nil {
		return nil, err
	}
	return recommend.Accommodations(items, prefs), nil
}

func (s *Service) RecommendFoodProviders(ctx context.Context, prefs domain.PreferenceVector) ([]recommend.Scored[domain.FoodProvider], error) {
	items, err := s.GetFoodProviders(ctx, nil)
	if err != nil {
		return nil, err
	}
	return recommend.FoodProviders(items, prefs), nil
}
