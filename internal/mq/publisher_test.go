package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/TEJ12356788/atmosphere/internal/models"
)

func TestRoutingKey(t *testing.T) {
	tests := map[string]string{
		"event":     "notification.event",
		"promotion": "notification.promotion",
		"":          "notification.unknown",
	}
	for kind, want := range tests {
		if got := RoutingKey(kind); got != want {
			t.Errorf("RoutingKey(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(Envelope{UserID: "usr_1", Notification: models.Notification{NotificationID: "notif_1", Type: "login"}})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["user_id"]; !ok {
		t.Error("Expected user_id field")
	}
	if _, ok := got["notification"]; !ok {
		t.Error("Expected notification field")
	}
}

func TestPublisherNotify(t *testing.T) {
	url := os.Getenv("RABBIT_URL")
	if url == "" {
		t.Skip("RABBIT_URL not set")
	}
	exchange := "atmosphere.test"
	pub, err := NewPublisher(url, exchange)
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer pub.Close()

	q, err := pub.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := pub.ch.QueueBind(q.Name, "notification.*", exchange, false, nil); err != nil {
		t.Fatal(err)
	}
	deliveries, err := pub.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	n := models.Notification{NotificationID: "notif_1", Type: "event", Content: "New event"}
	if err := pub.Notify(context.Background(), "usr_1", n); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	select {
	case d := <-deliveries:
		if d.RoutingKey != "notification.event" {
			t.Errorf("Expected routing key notification.event, got %s", d.RoutingKey)
		}
		var env Envelope
		if err := json.Unmarshal(d.Body, &env); err != nil {
			t.Fatal(err)
		}
		if env.UserID != "usr_1" || env.Notification.Content != "New event" {
			t.Errorf("Unexpected envelope: %+v", env)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for delivery")
	}
}
