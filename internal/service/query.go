package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

// The functions below are pure linear scans over loaded collections. The
// Service methods of the same name reload the collection on every call.

func MediaByUser(media models.MediaList, userID string) []models.Media {
	out := []models.Media{}
	for _, m := range media {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}

func CirclesByMember(circles models.Circles, userID string) []models.Circle {
	out := []models.Circle{}
	for _, c := range circles {
		if slices.Contains(c.Members, userID) {
			out = append(out, c)
		}
	}
	sortCircles(out)
	return out
}

// DiscoverCircles returns circles userID is not a member of, at most limit
// of them when limit > 0.
func DiscoverCircles(circles models.Circles, userID string, limit int) []models.Circle {
	out := []models.Circle{}
	for _, c := range circles {
		if !slices.Contains(c.Members, userID) {
			out = append(out, c)
		}
	}
	sortCircles(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func EventsByCircle(events models.Events, circleID string) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if e.CircleID == circleID {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

// UpcomingEvents returns events dated on or after today, soonest first.
// Dates are fixed-width YYYY-MM-DD so string order is date order.
func UpcomingEvents(events models.Events, today string) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if e.Date >= today {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

func EventsAttending(events models.Events, userID string) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if slices.Contains(e.Attendees, userID) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

// MatchingPromotions returns promotions sharing at least one tag with tags,
// ignoring case.
func MatchingPromotions(promotions models.Promotions, tags []string) []models.Promotion {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[strings.ToLower(t)] = true
	}

	out := []models.Promotion{}
	for _, p := range promotions {
		for _, t := range p.Tags {
			if wanted[strings.ToLower(t)] {
				out = append(out, p)
				break
			}
		}
	}
	slices.SortFunc(out, func(a, b models.Promotion) int {
		return cmp.Compare(a.PromoID, b.PromoID)
	})
	return out
}

func sortCircles(circles []models.Circle) {
	slices.SortFunc(circles, func(a, b models.Circle) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.CircleID, b.CircleID)
	})
}

func sortEvents(events []models.Event) {
	slices.SortFunc(events, func(a, b models.Event) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.Time, b.Time),
			cmp.Compare(a.EventID, b.EventID),
		)
	})
}

func (s *Service) MediaByUser(ctx context.Context, userID string) ([]models.Media, error) {
	var media models.MediaList
	if err := s.load(ctx, store.Media, &media); err != nil {
		return nil, err
	}
	return MediaByUser(media, userID), nil
}

func (s *Service) CirclesByMember(ctx context.Context, userID string) ([]models.Circle, error) {
	var circles models.Circles
	if err := s.load(ctx, store.Circles, &circles); err != nil {
		return nil, err
	}
	return CirclesByMember(circles, userID), nil
}

func (s *Service) DiscoverCircles(ctx context.Context, userID string, limit int) ([]models.Circle, error) {
	var circles models.Circles
	if err := s.load(ctx, store.Circles, &circles); err != nil {
		return nil, err
	}
	return DiscoverCircles(circles, userID, limit), nil
}

func (s *Service) EventsByCircle(ctx context.Context, circleID string) ([]models.Event, error) {
	var events models.Events
	if err := s.load(ctx, store.Events, &events); err != nil {
		return nil, err
	}
	return EventsByCircle(events, circleID), nil
}

func (s *Service) UpcomingEvents(ctx context.Context, today string) ([]models.Event, error) {
	var events models.Events
	if err := s.load(ctx, store.Events, &events); err != nil {
		return nil, err
	}
	return UpcomingEvents(events, today), nil
}

func (s *Service) EventsAttending(ctx context.Context, userID string) ([]models.Event, error) {
	var events models.Events
	if err := s.load(ctx, store.Events, &events); err != nil {
		return nil, err
	}
	return EventsAttending(events, userID), nil
}
