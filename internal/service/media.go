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

type MediaInput struct {
	FilePath string   `json:"file_path" validate:"required"`
	Location string   `json:"location"`
	CircleID string   `json:"circle_id"`
	Tags     []string `json:"tags" validate:"dive,required"`
}

// UploadMedia records a media item for the caller. The circle, when given,
// must be one the caller belongs to. Promotions sharing a tag with the
// upload produce a notification each.
func (s *Service) UploadMedia(ctx context.Context, sess models.Session, in MediaInput) (models.Media, error) {
	if err := validateInput(in); err != nil {
		return models.Media{}, err
	}
	if in.CircleID != "" {
		circle, err := s.GetCircle(ctx, in.CircleID)
		if err != nil {
			return models.Media{}, err
		}
		if !slices.Contains(circle.Members, sess.UserID) {
			return models.Media{}, fmt.Errorf("circle %s: %w", in.CircleID, ErrNotMember)
		}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	item := models.Media{
		MediaID:   ids.GenerateID(ids.PrefixMedia),
		UserID:    sess.UserID,
		FilePath:  in.FilePath,
		Location:  models.Place{Name: in.Location},
		Timestamp: s.now(),
		CircleID:  in.CircleID,
		Tags:      tags,
		Reports:   []string{},
	}

	unlock := s.lock(store.Media)
	var media models.MediaList
	err := s.Store.Load(ctx, store.Media, &media)
	if err == nil {
		media = append(media, item)
		err = s.Store.Save(ctx, store.Media, media)
	}
	unlock()
	if err != nil {
		return models.Media{}, err
	}

	var promotions models.Promotions
	if err := s.load(ctx, store.Promotions, &promotions); err != nil {
		log.Printf("service: promotion match for %s: %v", item.MediaID, err)
		return item, nil
	}
	var pending []pendingNotification
	for _, promo := range MatchingPromotions(promotions, tags) {
		pending = append(pending, pendingNotification{
			userID:    sess.UserID,
			kind:      NotifyPromotion,
			content:   fmt.Sprintf("Your photo qualifies for %s from %s!", promo.Offer, promo.BusinessID),
			relatedID: promo.PromoID,
		})
	}
	s.flush(ctx, pending)
	return item, nil
}
