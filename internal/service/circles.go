package service

import (
	"context"
	"fmt"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

type CircleInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=2000"`
	Type        string   `json:"type" validate:"omitempty,oneof=public private"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags" validate:"dive,required"`
}

// CreateCircle creates a circle whose only member is the creator.
func (s *Service) CreateCircle(ctx context.Context, sess models.Session, in CircleInput) (models.Circle, error) {
	if err := validateInput(in); err != nil {
		return models.Circle{}, err
	}
	circleType := models.CirclePublic
	if in.Type != "" {
		circleType = models.CircleType(in.Type)
	}
	var location *models.Place
	if in.Location != "" {
		location = &models.Place{Name: in.Location}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	circle := models.Circle{
		CircleID:      ids.GenerateID(ids.PrefixCircle),
		Name:          in.Name,
		Description:   in.Description,
		Type:          circleType,
		Creator:       sess.UserID,
		Members:       []string{sess.UserID},
		Location:      location,
		Tags:          tags,
		Events:        []string{},
		BusinessOwned: sess.IsBusiness(),
		CreatedAt:     s.now(),
	}

	unlock := s.lock(store.Circles)
	var circles models.Circles
	err := s.Store.Load(ctx, store.Circles, &circles)
	if err == nil {
		circles[circle.CircleID] = circle
		err = s.Store.Save(ctx, store.Circles, circles)
	}
	unlock()
	if err != nil {
		return models.Circle{}, err
	}

	s.flush(ctx, []pendingNotification{{
		userID:  sess.UserID,
		kind:    NotifyCircle,
		content: "You created a new circle: " + circle.Name,
	}})
	return circle, nil
}

func (s *Service) GetCircle(ctx context.Context, circleID string) (models.Circle, error) {
	var circles models.Circles
	if err := s.load(ctx, store.Circles, &circles); err != nil {
		return models.Circle{}, err
	}
	circle, ok := circles[circleID]
	if !ok {
		return models.Circle{}, fmt.Errorf("circle %s: %w", circleID, ErrNotFound)
	}
	return circle, nil
}

// JoinCircle adds the caller to the circle. Joining twice is a no-op.
func (s *Service) JoinCircle(ctx context.Context, sess models.Session, circleID string) (models.Circle, error) {
	defer s.lock(store.Circles)()

	var circles models.Circles
	if err := s.Store.Load(ctx, store.Circles, &circles); err != nil {
		return models.Circle{}, err
	}
	circle, ok := circles[circleID]
	if !ok {
		return models.Circle{}, fmt.Errorf("circle %s: %w", circleID, ErrNotFound)
	}

	members, added := addUnique(circle.Members, sess.UserID)
	if !added {
		return circle, nil
	}
	circle.Members = members
	circles[circleID] = circle
	if err := s.Store.Save(ctx, store.Circles, circles); err != nil {
		return models.Circle{}, err
	}
	return circle, nil
}

// LeaveCircle removes the caller from the circle. The circle itself is kept,
// even when it has no members left.
func (s *Service) LeaveCircle(ctx context.Context, sess models.Session, circleID string) (models.Circle, error) {
	defer s.lock(store.Circles)()

	var circles models.Circles
	if err := s.Store.Load(ctx, store.Circles, &circles); err != nil {
		return models.Circle{}, err
	}
	circle, ok := circles[circleID]
	if !ok {
		return models.Circle{}, fmt.Errorf("circle %s: %w", circleID, ErrNotFound)
	}

	members, removed := removeValue(circle.Members, sess.UserID)
	if !removed {
		return models.Circle{}, fmt.Errorf("circle %s: %w", circleID, ErrNotMember)
	}
	circle.Members = members
	circles[circleID] = circle
	if err := s.Store.Save(ctx, store.Circles, circles); err != nil {
		return models.Circle{}, err
	}
	return circle, nil
}
