package events

import (
	"encoding/json"
	"testing"

	"github.com/pawluxe/storefront/internal/domain"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		eventType string
		expected  string
	}{
		{TypeItemAdded, "storefront.cart.item_added"},
		{TypeQuantityChanged, "storefront.cart.quantity_changed"},
		{TypeItemRemoved, "storefront.cart.item_removed"},
		{TypeCartCleared, "storefront.cart.cart_cleared"},
	}

	for _, tt := range tests {
		if got := Subject(tt.eventType); got != tt.expected {
			t.Errorf("Subject(%q) = %q, want %q", tt.eventType, got, tt.expected)
		}
	}
}

func TestNewCartEvent(t *testing.T) {
	line := &domain.OrderLine{ID: "L1", Quantity: 3}
	event := NewCartEvent(TypeQuantityChanged, "order-1", line)

	if event.ID == "" {
		t.Error("expected a generated event id")
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected a timestamp")
	}
	if event.Type != TypeQuantityChanged || event.OrderID != "order-1" {
		t.Errorf("unexpected event: %+v", event)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded CartEvent
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.Line == nil || decoded.Line.ID != "L1" || decoded.Line.Quantity != 3 {
		t.Errorf("line snapshot did not survive serialization: %+v", decoded.Line)
	}
}
