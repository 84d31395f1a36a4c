package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

type PromotionInput struct {
	Offer        string   `json:"offer" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Requirements string   `json:"requirements" validate:"max=500"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Tags         []string `json:"tags" validate:"dive,required"`
}

// CreatePromotion launches a promotion for the caller's business.
func (s *Service) CreatePromotion(ctx context.Context, sess models.Session, in PromotionInput) (models.Promotion, error) {
	if err := validateInput(in); err != nil {
		return models.Promotion{}, err
	}
	if in.EndDate < in.StartDate {
		return models.Promotion{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	if !sess.IsBusiness() {
		return models.Promotion{}, ErrNotBusiness
	}
	business, err := s.BusinessByOwner(ctx, sess.UserID)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("%w: %v", ErrNotBusiness, err)
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	promo := models.Promotion{
		PromoID:      ids.GenerateID(ids.PrefixPromotion),
		BusinessID:   business.BusinessID,
		Offer:        in.Offer,
		Description:  in.Description,
		Requirements: in.Requirements,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Tags:         tags,
		ClaimedBy:    []string{},
		CreatedAt:    s.now(),
	}

	defer s.lock(store.Promotions)()
	var promotions models.Promotions
	if err := s.Store.Load(ctx, store.Promotions, &promotions); err != nil {
		return models.Promotion{}, err
	}
	promotions[promo.PromoID] = promo
	if err := s.Store.Save(ctx, store.Promotions, promotions); err != nil {
		return models.Promotion{}, err
	}
	return promo, nil
}

func isActive(p models.Promotion, today string) bool {
	return p.StartDate <= today && today <= p.EndDate
}

// ActivePromotions returns promotions running on today, ordered by end date.
func (s *Service) ActivePromotions(ctx context.Context, today string) ([]models.Promotion, error) {
	var promotions models.Promotions
	if err := s.load(ctx, store.Promotions, &promotions); err != nil {
		return nil, err
	}
	out := []models.Promotion{}
	for _, p := range promotions {
		if isActive(p, today) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Promotion) int {
		return cmp.Or(cmp.Compare(a.EndDate, b.EndDate), cmp.Compare(a.PromoID, b.PromoID))
	})
	return out, nil
}

// ClaimPromotion records that the caller claimed the promotion. Claiming
// twice is a no-op.
func (s *Service) ClaimPromotion(ctx context.Context, sess models.Session, promoID, today string) (models.Promotion, error) {
	defer s.lock(store.Promotions)()

	var promotions models.Promotions
	if err := s.Store.Load(ctx, store.Promotions, &promotions); err != nil {
		return models.Promotion{}, err
	}
	promo, ok := promotions[promoID]
	if !ok {
		return models.Promotion{}, fmt.Errorf("promotion %s: %w", promoID, ErrNotFound)
	}
	if !isActive(promo, today) {
		return models.Promotion{}, fmt.Errorf("promotion %s: %w", promoID, ErrPromotionInactive)
	}

	claimed, added := addUnique(promo.ClaimedBy, sess.UserID)
	if !added {
		return promo, nil
	}
	promo.ClaimedBy = claimed
	promotions[promoID] = promo
	if err := s.Store.Save(ctx, store.Promotions, promotions); err != nil {
		return models.Promotion{}, err
	}
	return promo, nil
}
