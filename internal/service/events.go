package service

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

type EventInput struct {
	CircleID    string   `json:"circle_id" validate:"required"`
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Location    string   `json:"location"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"omitempty,datetime=15:04"`
	Capacity    int      `json:"capacity" validate:"gte=0"`
	Tags        []string `json:"tags" validate:"dive,required"`
}

// RSVPResult reports the outcome of an RSVP. Capacity is advisory: an RSVP
// past capacity is recorded and flagged.
type RSVPResult struct {
	Event            models.Event `json:"event"`
	AlreadyAttending bool         `json:"already_attending"`
	OverCapacity     bool         `json:"over_capacity"`
}

// CreateEvent creates an event in one of the caller's circles, links it from
// the circle and notifies every other member.
func (s *Service) CreateEvent(ctx context.Context, sess models.Session, in EventInput) (models.Event, error) {
	if err := validateInput(in); err != nil {
		return models.Event{}, err
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	unlock := s.lock(store.Circles, store.Events)
	event, circle, err := s.createEvent(ctx, sess, in, tags)
	unlock()
	if err != nil {
		return models.Event{}, err
	}

	var pending []pendingNotification
	for _, member := range circle.Members {
		if member == sess.UserID {
			continue
		}
		pending = append(pending, pendingNotification{
			userID:    member,
			kind:      NotifyEvent,
			content:   fmt.Sprintf("New event in %s: %s", circle.Name, event.Name),
			relatedID: event.EventID,
		})
	}
	s.flush(ctx, pending)
	return event, nil
}

func (s *Service) createEvent(ctx context.Context, sess models.Session, in EventInput, tags []string) (models.Event, models.Circle, error) {
	var circles models.Circles
	if err := s.Store.Load(ctx, store.Circles, &circles); err != nil {
		return models.Event{}, models.Circle{}, err
	}
	circle, ok := circles[in.CircleID]
	if !ok {
		return models.Event{}, models.Circle{}, fmt.Errorf("circle %s: %w", in.CircleID, ErrNotFound)
	}
	if !slices.Contains(circle.Members, sess.UserID) {
		return models.Event{}, models.Circle{}, fmt.Errorf("circle %s: %w", in.CircleID, ErrNotMember)
	}

	event := models.Event{
		EventID:     ids.GenerateID(ids.PrefixEvent),
		CircleID:    in.CircleID,
		Name:        in.Name,
		Description: in.Description,
		Location:    models.Place{Name: in.Location},
		Date:        in.Date,
		Time:        in.Time,
		Organizer:   sess.UserID,
		Attendees:   []string{sess.UserID},
		Capacity:    in.Capacity,
		Tags:        tags,
		CreatedAt:   s.now(),
	}

	var events models.Events
	if err := s.Store.Load(ctx, store.Events, &events); err != nil {
		return models.Event{}, models.Circle{}, err
	}
	events[event.EventID] = event
	if err := s.Store.Save(ctx, store.Events, events); err != nil {
		return models.Event{}, models.Circle{}, err
	}

	circle.Events, _ = addUnique(circle.Events, event.EventID)
	circles[circle.CircleID] = circle
	if err := s.Store.Save(ctx, store.Circles, circles); err != nil {
		// drop the event again so no event exists without its circle link
		delete(events, event.EventID)
		if rerr := s.Store.Save(ctx, store.Events, events); rerr != nil {
			log.Printf("service: roll back event %s: %v", event.EventID, rerr)
		}
		return models.Event{}, models.Circle{}, err
	}
	return event, circle, nil
}

func (s *Service) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	var events models.Events
	if err := s.load(ctx, store.Events, &events); err != nil {
		return models.Event{}, err
	}
	event, ok := events[eventID]
	if !ok {
		return models.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return event, nil
}

// RSVP adds the caller to the event's attendees. Repeated RSVPs are no-ops.
func (s *Service) RSVP(ctx context.Context, sess models.Session, eventID string) (RSVPResult, error) {
	defer s.lock(store.Events)()

	var events models.Events
	if err := s.Store.Load(ctx, store.Events, &events); err != nil {
		return RSVPResult{}, err
	}
	event, ok := events[eventID]
	if !ok {
		return RSVPResult{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}

	attendees, added := addUnique(event.Attendees, sess.UserID)
	result := RSVPResult{AlreadyAttending: !added}
	if added {
		event.Attendees = attendees
		events[eventID] = event
		if err := s.Store.Save(ctx, store.Events, events); err != nil {
			return RSVPResult{}, err
		}
	}

	result.Event = event
	result.OverCapacity = event.Capacity > 0 && len(event.Attendees) > event.Capacity
	if added && result.OverCapacity {
		log.Printf("service: event %s over capacity (%d/%d)", eventID, len(event.Attendees), event.Capacity)
	}
	return result, nil
}
