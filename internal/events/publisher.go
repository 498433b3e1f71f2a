// Package events publishes order lifecycle messages to a broker. Publishing is
// best effort: callers log failures and carry on.
package events

import (
	"context"       // Request-scoped cancellation
	"encoding/json" // Payload encoding
	"time"          // Timestamps

	"eventpay/internal/config" // Broker settings
	"eventpay/internal/domain" // Importing domain models

	"github.com/shopspring/decimal"  // Money amounts
	log "github.com/sirupsen/logrus" // Structured logging
)

// Message types
const (
	OrderPlaced    = "order.placed"
	OrderValidated = "order.validated"
)

// Message is the JSON payload written to the broker
type Message struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	Total       decimal.Decimal `json:"total"`
	CreditsUsed decimal.Decimal `json:"credits_used"`
	Status      string          `json:"status"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewOrderMessage builds a message of the given type describing o
func NewOrderMessage(kind string, o *domain.Order) Message {
	return Message{
		Type:        kind,
		OrderID:     o.ID,
		UserID:      o.UserID,
		EventID:     o.EventID,
		EventName:   o.EventName,
		Total:       o.Total,
		CreditsUsed: o.CreditsUsed,
		Status:      o.Status,
		OccurredAt:  time.Now().UTC(),
	}
}

func (m Message) encode() ([]byte, error) {
	return json.Marshal(m)
}

// Publisher delivers messages to a broker
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Noop discards every message
type Noop struct{}

func (Noop) Publish(context.Context, Message) error { return nil }
func (Noop) Close() error                           { return nil }

// New builds the publisher selected by cfg.EventBroker
func New(cfg *config.Config) (Publisher, error) {
	switch cfg.EventBroker {
	case config.BrokerKafka:
		log.WithFields(log.Fields{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic}).Info("Publishing order events to Kafka")
		return NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.BrokerRabbitMQ:
		log.WithField("queue", cfg.RabbitMQQueue).Info("Publishing order events to RabbitMQ")
		return NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	default:
		return Noop{}, nil
	}
}
