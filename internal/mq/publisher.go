package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/TEJ12356788/atmosphere/internal/models"
)

const DefaultExchange = "atmosphere.notifications"

// Envelope is the body of every published notification.
type Envelope struct {
	UserID       string              `json:"user_id"`
	Notification models.Notification `json:"notification"`
}

// RoutingKey is notification.<type>, so consumers can bind to a subset of
// notification types.
func RoutingKey(kind string) string {
	if kind == "" {
		kind = "unknown"
	}
	return "notification." + kind
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         b,
	})
}

// Notify publishes n for userID on the notification exchange.
func (p *Publisher) Notify(ctx context.Context, userID string, n models.Notification) error {
	if err := p.PublishJSON(ctx, RoutingKey(n.Type), Envelope{UserID: userID, Notification: n}); err != nil {
		return fmt.Errorf("publish %s: %w", n.NotificationID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
