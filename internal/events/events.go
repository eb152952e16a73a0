// Package events carries the cart's domain events to whatever notification
// layer subscribes to them. The cart controller only emits; formatting
// user-facing messages is someone else's job.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawluxe/storefront/internal/domain"
)

// Event types emitted by the cart controller.
const (
	TypeItemAdded       = "item_added"
	TypeQuantityChanged = "quantity_changed"
	TypeItemRemoved     = "item_removed"
	TypeCartCleared     = "cart_cleared"
)

// CartEvent describes one observed cart mutation. Line is the affected line
// snapshot: the post-mutation line for adds and quantity changes, the
// pre-removal line for removals, absent for clears.
type CartEvent struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurredAt"`
	OrderID    string            `json:"orderId,omitempty"`
	Line       *domain.OrderLine `json:"line,omitempty"`
}

// NewCartEvent stamps a cart event with identity and time.
func NewCartEvent(eventType, orderID string, line *domain.OrderLine) CartEvent {
	return CartEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		OrderID:    orderID,
		Line:       line,
	}
}

// Publisher delivers cart events. Publishing is best effort: a failed
// publish must never fail the cart mutation that triggered it.
type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
}
