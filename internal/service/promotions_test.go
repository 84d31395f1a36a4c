package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/TEJ12356788/atmosphere/internal/models"
)

func TestCreatePromotion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner, business := signupBusiness(t, svc, "cafe")
	alice := signup(t, svc, "alice")

	in := PromotionInput{
		Offer:     "Free coffee",
		StartDate: "2025-05-01",
		EndDate:   "2025-06-30",
		Tags:      []string{"Coffee"},
	}
	promo, err := svc.CreatePromotion(ctx, owner, in)
	if err != nil {
		t.Fatalf("CreatePromotion failed: %v", err)
	}
	if promo.BusinessID != business.BusinessID || promo.ClaimedBy == nil {
		t.Errorf("Unexpected promotion: %+v", promo)
	}

	if _, err := svc.CreatePromotion(ctx, alice, in); !errors.Is(err, ErrNotBusiness) {
		t.Errorf("Expected ErrNotBusiness, got %v", err)
	}
	// business session without a business record
	orphan := models.Session{UserID: "usr_orphan", Username: "orphan", AccountType: models.AccountBusiness}
	if _, err := svc.CreatePromotion(ctx, orphan, in); !errors.Is(err, ErrNotBusiness) {
		t.Errorf("Expected ErrNotBusiness for owner without business, got %v", err)
	}

	backwards := in
	backwards.StartDate, backwards.EndDate = in.EndDate, in.StartDate
	if _, err := svc.CreatePromotion(ctx, owner, backwards); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for reversed window, got %v", err)
	}
}

func TestClaimPromotion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner, _ := signupBusiness(t, svc, "cafe")
	alice := signup(t, svc, "alice")

	active, _ := svc.CreatePromotion(ctx, owner, PromotionInput{Offer: "10% off", StartDate: "2025-06-01", EndDate: "2025-06-01"})
	expired, _ := svc.CreatePromotion(ctx, owner, PromotionInput{Offer: "Old", StartDate: "2025-01-01", EndDate: "2025-01-31"})
	future, _ := svc.CreatePromotion(ctx, owner, PromotionInput{Offer: "Soon", StartDate: "2025-07-01", EndDate: "2025-07-31"})

	today := svc.Today()
	for range 2 {
		promo, err := svc.ClaimPromotion(ctx, alice, active.PromoID, today)
		if err != nil {
			t.Fatalf("ClaimPromotion failed: %v", err)
		}
		if !slices.Equal(promo.ClaimedBy, []string{alice.UserID}) {
			t.Errorf("Expected a single claim, got %v", promo.ClaimedBy)
		}
	}

	for _, id := range []string{expired.PromoID, future.PromoID} {
		if _, err := svc.ClaimPromotion(ctx, alice, id, today); !errors.Is(err, ErrPromotionInactive) {
			t.Errorf("Expected ErrPromotionInactive for %s, got %v", id, err)
		}
	}
	if _, err := svc.ClaimPromotion(ctx, alice, "promo_missing", today); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	running, err := svc.ActivePromotions(ctx, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(running) != 1 || running[0].PromoID != active.PromoID {
		t.Errorf("Expected only %s active, got %+v", active.PromoID, running)
	}
}

func TestUploadMediaMatchesPromotions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner, business := signupBusiness(t, svc, "cafe")
	alice := signup(t, svc, "alice")
	bob := signup(t, svc, "bob")

	promo, _ := svc.CreatePromotion(ctx, owner, PromotionInput{
		Offer: "Free coffee", StartDate: "2025-05-01", EndDate: "2025-06-30", Tags: []string{"Coffee"},
	})
	circle, _ := svc.CreateCircle(ctx, bob, CircleInput{Name: "Bob's"})

	if _, err := svc.UploadMedia(ctx, alice, MediaInput{FilePath: "a.jpg", CircleID: circle.CircleID}); !errors.Is(err, ErrNotMember) {
		t.Errorf("Expected ErrNotMember, got %v", err)
	}

	item, err := svc.UploadMedia(ctx, alice, MediaInput{FilePath: "uploads/a.jpg", Location: "Cafe", Tags: []string{"coffee", "morning"}})
	if err != nil {
		t.Fatalf("UploadMedia failed: %v", err)
	}
	if item.Reports == nil || len(item.Reports) != 0 || item.UserID != alice.UserID {
		t.Errorf("Unexpected media item: %+v", item)
	}

	feed, _ := svc.Notifications(ctx, alice.UserID)
	if len(feed) != 1 {
		t.Fatalf("Expected one promotion notification, got %+v", feed)
	}
	want := "Your photo qualifies for Free coffee from " + business.BusinessID + "!"
	if feed[0].Type != NotifyPromotion || feed[0].Content != want || feed[0].RelatedID != promo.PromoID {
		t.Errorf("Unexpected notification: %+v", feed[0])
	}

	svc.UploadMedia(ctx, alice, MediaInput{FilePath: "uploads/b.jpg", Tags: []string{"tea"}})
	mine, _ := svc.MediaByUser(ctx, alice.UserID)
	if len(mine) != 2 || mine[0].FilePath != "uploads/a.jpg" || mine[1].FilePath != "uploads/b.jpg" {
		t.Errorf("Expected media in upload order, got %+v", mine)
	}
	if feed, _ := svc.Notifications(ctx, alice.UserID); len(feed) != 1 {
		t.Errorf("Expected unmatched upload not to notify, got %d notifications", len(feed))
	}
}
