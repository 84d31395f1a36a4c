package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

func TestCreateEventNotifiesMembers(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	alice := signup(t, svc, "alice")
	bob := signup(t, svc, "bob")
	carol := signup(t, svc, "carol")

	circle, _ := svc.CreateCircle(ctx, alice, CircleInput{Name: "Hikers"})
	svc.JoinCircle(ctx, bob, circle.CircleID)

	if _, err := svc.CreateEvent(ctx, carol, EventInput{CircleID: circle.CircleID, Name: "x", Date: "2025-06-10"}); !errors.Is(err, ErrNotMember) {
		t.Errorf("Expected ErrNotMember for outsider, got %v", err)
	}

	event, err := svc.CreateEvent(ctx, alice, EventInput{
		CircleID: circle.CircleID,
		Name:     "Ridge walk",
		Date:     "2025-06-10",
		Time:     "09:30",
		Capacity: 2,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if event.Organizer != alice.UserID || !slices.Equal(event.Attendees, []string{alice.UserID}) {
		t.Errorf("Expected organizer as first attendee, got %+v", event)
	}

	circle, _ = svc.GetCircle(ctx, circle.CircleID)
	if !slices.Contains(circle.Events, event.EventID) {
		t.Errorf("Expected circle to link event %s, got %v", event.EventID, circle.Events)
	}

	feed, _ := svc.Notifications(ctx, bob.UserID)
	if len(feed) != 1 || feed[0].Content != "New event in Hikers: Ridge walk" || feed[0].RelatedID != event.EventID {
		t.Errorf("Expected event notification for bob, got %+v", feed)
	}
	// alice only has her circle creation notification
	if n := notifier.count(alice.UserID); n != 1 {
		t.Errorf("Expected organizer not to be notified about own event, got %d notifications", n)
	}
	if n := notifier.count(carol.UserID); n != 0 {
		t.Errorf("Expected non-member not to be notified, got %d", n)
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := signup(t, svc, "alice")
	circle, _ := svc.CreateCircle(ctx, alice, CircleInput{Name: "Hikers"})

	tests := []struct {
		name string
		in   EventInput
	}{
		{"bad date", EventInput{CircleID: circle.CircleID, Name: "x", Date: "10/06/2025"}},
		{"bad time", EventInput{CircleID: circle.CircleID, Name: "x", Date: "2025-06-10", Time: "9am"}},
		{"negative capacity", EventInput{CircleID: circle.CircleID, Name: "x", Date: "2025-06-10", Capacity: -1}},
		{"missing name", EventInput{CircleID: circle.CircleID, Date: "2025-06-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateEvent(ctx, alice, tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if _, err := svc.CreateEvent(ctx, alice, EventInput{CircleID: "cir_missing", Name: "x", Date: "2025-06-10"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRSVP(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := signup(t, svc, "alice")
	bob := signup(t, svc, "bob")
	carol := signup(t, svc, "carol")

	circle, _ := svc.CreateCircle(ctx, alice, CircleInput{Name: "Hikers"})
	event, _ := svc.CreateEvent(ctx, alice, EventInput{CircleID: circle.CircleID, Name: "Walk", Date: "2025-06-10", Capacity: 2})

	res, err := svc.RSVP(ctx, bob, event.EventID)
	if err != nil {
		t.Fatalf("RSVP failed: %v", err)
	}
	if res.AlreadyAttending || res.OverCapacity || len(res.Event.Attendees) != 2 {
		t.Errorf("Unexpected first RSVP result: %+v", res)
	}

	res, _ = svc.RSVP(ctx, bob, event.EventID)
	if !res.AlreadyAttending || len(res.Event.Attendees) != 2 {
		t.Errorf("Expected duplicate RSVP to be a no-op, got %+v", res)
	}

	res, err = svc.RSVP(ctx, carol, event.EventID)
	if err != nil {
		t.Fatalf("RSVP over capacity failed: %v", err)
	}
	if !res.OverCapacity || len(res.Event.Attendees) != 3 {
		t.Errorf("Expected RSVP past capacity to be recorded and flagged, got %+v", res)
	}

	attending, _ := svc.EventsAttending(ctx, carol.UserID)
	if len(attending) != 1 || attending[0].EventID != event.EventID {
		t.Errorf("Expected carol to attend %s, got %+v", event.EventID, attending)
	}

	if _, err := svc.RSVP(ctx, bob, "evt_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpcomingAndCircleEvents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := signup(t, svc, "alice")
	one, _ := svc.CreateCircle(ctx, alice, CircleInput{Name: "One"})
	two, _ := svc.CreateCircle(ctx, alice, CircleInput{Name: "Two"})

	for _, in := range []EventInput{
		{CircleID: one.CircleID, Name: "late", Date: "2025-06-15"},
		{CircleID: one.CircleID, Name: "past", Date: "2025-05-31"},
		{CircleID: two.CircleID, Name: "today", Date: "2025-06-01"},
	} {
		if _, err := svc.CreateEvent(ctx, alice, in); err != nil {
			t.Fatal(err)
		}
	}

	upcoming, err := svc.UpcomingEvents(ctx, svc.Today())
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, e := range upcoming {
		dates = append(dates, e.Date)
	}
	if !slices.Equal(dates, []string{"2025-06-01", "2025-06-15"}) {
		t.Errorf("Expected [2025-06-01 2025-06-15], got %v", dates)
	}

	inOne, _ := svc.EventsByCircle(ctx, one.CircleID)
	if len(inOne) != 2 || inOne[0].Name != "past" || inOne[1].Name != "late" {
		t.Errorf("Expected circle events sorted by date, got %+v", inOne)
	}
}

func TestCreateEventRollsBackWhenCircleSaveFails(t *testing.T) {
	d := &flakyDriver{failWrite: store.Circles}
	svc := newFlakyService(t, d)
	ctx := context.Background()
	alice := signup(t, svc, "alice")
	circle, err := svc.CreateCircle(ctx, alice, CircleInput{Name: "Hikers"})
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}

	d.failing.Store(true)
	if _, err := svc.CreateEvent(ctx, alice, EventInput{CircleID: circle.CircleID, Name: "Ridge walk", Date: "2025-06-10"}); err == nil {
		t.Fatal("Expected CreateEvent to fail when circles cannot be saved")
	}
	d.failing.Store(false)

	var events models.Events
	if err := svc.Store.Load(ctx, store.Events, &events); err != nil {
		t.Fatalf("Load events failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no orphaned events, got %+v", events)
	}
	circle, _ = svc.GetCircle(ctx, circle.CircleID)
	if len(circle.Events) != 0 {
		t.Errorf("Expected circle without events, got %v", circle.Events)
	}
}
