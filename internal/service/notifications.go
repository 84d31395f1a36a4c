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

// MaxNotifications is the per-user cap; older entries are dropped first.
const MaxNotifications = 50

const (
	NotifyLogin     = "login"
	NotifyCircle    = "circle"
	NotifyEvent     = "event"
	NotifyPromotion = "promotion"
	NotifyReport    = "report"
)

// AddNotification appends a notification to userID's feed and persists it.
// relatedID may be empty.
func (s *Service) AddNotification(ctx context.Context, userID, kind, content, relatedID string) error {
	n := models.Notification{
		NotificationID: ids.GenerateID(ids.PrefixNotification),
		Type:           kind,
		Content:        content,
		Timestamp:      s.now(),
		Read:           false,
		RelatedID:      relatedID,
	}

	unlock := s.lock(store.Notifications)
	var notifications models.Notifications
	if err := s.Store.Load(ctx, store.Notifications, &notifications); err != nil {
		unlock()
		return err
	}

	feed := append(notifications[userID], n)
	if len(feed) > MaxNotifications {
		feed = slices.Clone(feed[len(feed)-MaxNotifications:])
	}
	notifications[userID] = feed

	err := s.Store.Save(ctx, store.Notifications, notifications)
	unlock()
	if err != nil {
		return err
	}

	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, userID, n); err != nil {
			log.Printf("service: push notification %s to %s: %v", n.NotificationID, userID, err)
		}
	}
	return nil
}

// Notifications returns userID's feed, newest first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications models.Notifications
	if err := s.load(ctx, store.Notifications, &notifications); err != nil {
		return nil, err
	}
	feed := slices.Clone(notifications[userID])
	slices.Reverse(feed)
	if feed == nil {
		feed = []models.Notification{}
	}
	return feed, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	feed, err := s.Notifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range feed {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	defer s.lock(store.Notifications)()

	var notifications models.Notifications
	if err := s.Store.Load(ctx, store.Notifications, &notifications); err != nil {
		return err
	}
	feed := notifications[userID]
	i := slices.IndexFunc(feed, func(n models.Notification) bool {
		return n.NotificationID == notificationID
	})
	if i < 0 {
		return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	if feed[i].Read {
		return nil
	}
	feed[i].Read = true
	return s.Store.Save(ctx, store.Notifications, notifications)
}
