package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// subjectPrefix is the NATS subject root for cart events; the event type is
// appended, e.g. storefront.cart.item_added.
const subjectPrefix = "storefront.cart"

// NatsPublisher publishes cart events to NATS as JSON.
type NatsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNatsPublisher connects to NATS and returns a publisher. The connection
// reconnects automatically; events published while disconnected are buffered
// by the client up to its pending limits.
func NewNatsPublisher(url string, logger zerolog.Logger) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("pawluxe-storefront"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NatsPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "events").Logger(),
	}, nil
}

// Subject returns the NATS subject for an event type.
func Subject(eventType string) string {
	return subjectPrefix + "." + eventType
}

// Publish sends one event. Errors are returned for logging but callers are
// expected not to fail their own operation on them.
func (p *NatsPublisher) Publish(_ context.Context, event CartEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cart event: %w", err)
	}

	if err := p.conn.Publish(Subject(event.Type), payload); err != nil {
		return fmt.Errorf("failed to publish cart event: %w", err)
	}

	p.logger.Debug().
		Str("type", event.Type).
		Str("order_id", event.OrderID).
		Msg("cart event published")
	return nil
}

// Close drains the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("failed to drain NATS connection")
	}
}
