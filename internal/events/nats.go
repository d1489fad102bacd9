package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"shopcore/internal/domain"
)

// NATSPublisher emits domain events as JSON messages on NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("shopcore"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// OrderCreated implements Publisher.
func (p *NATSPublisher) OrderCreated(_ context.Context, order *domain.Order) error {
	return p.publish(SubjectOrderCreated, order)
}

// CartCleared implements Publisher.
func (p *NATSPublisher) CartCleared(_ context.Context, cart *domain.Cart) error {
	return p.publish(SubjectCartCleared, cart)
}

// Close implements Publisher.
func (p *NATSPublisher) Close() {
	p.conn.Drain()
}

func (p *NATSPublisher) publish(subject string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	if err := p.conn.Publish(subject, body); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
