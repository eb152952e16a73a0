package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/events"
	"github.com/pawluxe/storefront/internal/vendure"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []events.CartEvent
}

func (p *capturePublisher) Publish(_ context.Context, event events.CartEvent) error {
	p.events = append(p.events, event)
	return nil
}

func testOrder(id string, lines ...domain.OrderLine) *domain.Order {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return &domain.Order{
		ID:            id,
		State:         domain.OrderStateAddingItems,
		Lines:         lines,
		TotalQuantity: total,
	}
}

func testLine(id, variantID string, quantity int) domain.OrderLine {
	return domain.OrderLine{
		ID:       id,
		Quantity: quantity,
		Variant:  domain.OrderVariant{ID: variantID},
	}
}

func newTestController(backend *vendure.Mock) (*Controller, *capturePublisher) {
	publisher := &capturePublisher{}
	return NewController(backend, publisher, zerolog.Nop()), publisher
}

func TestRefresh(t *testing.T) {
	t.Run("replaces local order with backend snapshot", func(t *testing.T) {
		backend := &vendure.Mock{
			FetchActiveOrderFunc: func(ctx context.Context) (*domain.Order, error) {
				return testOrder("order-1", testLine("L1", "variant-123", 2)), nil
			},
		}
		c, _ := newTestController(backend)

		if err := c.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Order() == nil || c.Order().ID != "order-1" {
			t.Errorf("expected order-1, got %+v", c.Order())
		}
		if c.ItemCount() != 2 {
			t.Errorf("ItemCount() = %d, want 2", c.ItemCount())
		}
	})

	t.Run("nil result clears the local order", func(t *testing.T) {
		backend := &vendure.Mock{}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

		if err := c.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Order() != nil {
			t.Errorf("expected nil order, got %+v", c.Order())
		}
		if len(c.Cart()) != 0 {
			t.Errorf("expected empty cart, got %d lines", len(c.Cart()))
		}
	})

	t.Run("failure keeps stale order", func(t *testing.T) {
		backend := &vendure.Mock{
			FetchActiveOrderFunc: func(ctx context.Context) (*domain.Order, error) {
				return nil, domain.Unavailable(errors.New("connection refused"), "vendure.activeOrder")
			},
		}
		c, _ := newTestController(backend)
		stale := testOrder("order-1", testLine("L1", "variant-123", 2))
		c.order = stale

		if err := c.Refresh(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if c.Order() != stale {
			t.Error("expected stale order to be kept on refresh failure")
		}
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("add to empty cart", func(t *testing.T) {
		backend := &vendure.Mock{
			AddItemFunc: func(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
				return testOrder("order-1", testLine("L1", variantID, quantity)), nil
			},
		}
		c, publisher := newTestController(backend)

		result, err := c.AddToCart(context.Background(), "variant-123", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Line.ID != "L1" || result.Quantity != 2 || result.OrderID != "order-1" {
			t.Errorf("unexpected result: %+v", result)
		}

		cart := c.Cart()
		if len(cart) != 1 || cart[0].Variant.ID != "variant-123" || cart[0].Quantity != 2 {
			t.Errorf("unexpected cart: %+v", cart)
		}
		if c.ItemCount() != 2 || c.LineCount() != 1 {
			t.Errorf("counts = %d items / %d lines, want 2/1", c.ItemCount(), c.LineCount())
		}

		if len(publisher.events) != 1 || publisher.events[0].Type != events.TypeItemAdded {
			t.Errorf("expected one item_added event, got %+v", publisher.events)
		}
	})

	t.Run("backend merges into existing line", func(t *testing.T) {
		backend := &vendure.Mock{
			AddItemFunc: func(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
				return testOrder("order-1", testLine("L1", variantID, 5)), nil
			},
		}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 3))

		result, err := c.AddToCart(context.Background(), "variant-123", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Quantity != 5 {
			t.Errorf("result.Quantity = %d, want merged 5", result.Quantity)
		}
		if c.LineCount() != 1 {
			t.Errorf("LineCount() = %d, want 1", c.LineCount())
		}
	})

	t.Run("failure leaves order untouched", func(t *testing.T) {
		backend := &vendure.Mock{
			AddItemFunc: func(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
				return nil, &domain.Error{Code: domain.EBACKEND, Message: "insufficient stock"}
			},
		}
		c, publisher := newTestController(backend)
		before := testOrder("order-1", testLine("L1", "variant-123", 2))
		c.order = before

		_, err := c.AddToCart(context.Background(), "variant-456", 1)
		if domain.ErrorCode(err) != domain.EBACKEND {
			t.Fatalf("expected backend error, got %v", err)
		}
		if c.Order() != before {
			t.Error("failed add must not replace the local order")
		}
		if len(publisher.events) != 0 {
			t.Errorf("failed add must not publish events, got %+v", publisher.events)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		backend := &vendure.Mock{}
		c, _ := newTestController(backend)

		if _, err := c.AddToCart(context.Background(), "variant-123", 0); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
		if len(backend.Calls) != 0 {
			t.Errorf("expected no backend calls, got %v", backend.Calls)
		}
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("adjusts an existing line", func(t *testing.T) {
		backend := &vendure.Mock{
			AdjustLineFunc: func(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
				return testOrder("order-1", testLine(lineID, "variant-123", quantity)), nil
			},
		}
		c, publisher := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

		if err := c.SetQuantity(context.Background(), "L1", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.Cart()[0].Quantity; got != 5 {
			t.Errorf("quantity = %d, want 5", got)
		}
		if len(publisher.events) != 1 || publisher.events[0].Type != events.TypeQuantityChanged {
			t.Errorf("expected quantity_changed event, got %+v", publisher.events)
		}
	})

	t.Run("setting the current quantity is a no-op round trip", func(t *testing.T) {
		backend := &vendure.Mock{
			AdjustLineFunc: func(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
				return testOrder("order-1", testLine(lineID, "variant-123", quantity)), nil
			},
		}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 3))

		if err := c.SetQuantity(context.Background(), "L1", 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.Cart()[0].Quantity; got != 3 {
			t.Errorf("quantity = %d, want 3", got)
		}
	})

	t.Run("zero quantity delegates to removal", func(t *testing.T) {
		backend := &vendure.Mock{
			RemoveLineFunc: func(ctx context.Context, lineID string) (*domain.Order, error) {
				return testOrder("order-1"), nil
			},
		}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

		if err := c.SetQuantity(context.Background(), "L1", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.CallCount("removeLine") != 1 {
			t.Errorf("expected one removeLine call, got %v", backend.Calls)
		}
		if backend.CallCount("adjustLine") != 0 {
			t.Errorf("zero quantity must not call adjustLine, got %v", backend.Calls)
		}
		if len(c.Cart()) != 0 {
			t.Errorf("expected empty cart, got %+v", c.Cart())
		}
	})

	t.Run("stale line refreshes then reports", func(t *testing.T) {
		fresh := testOrder("order-1", testLine("L2", "variant-456", 1))
		backend := &vendure.Mock{
			FetchActiveOrderFunc: func(ctx context.Context) (*domain.Order, error) {
				return fresh, nil
			},
		}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L2", "variant-456", 1))

		err := c.SetQuantity(context.Background(), "L1", 5)
		if !errors.Is(err, domain.ErrStaleCart) {
			t.Fatalf("expected ErrStaleCart, got %v", err)
		}
		if backend.CallCount("fetchActiveOrder") != 1 {
			t.Errorf("expected a resync fetch, got %v", backend.Calls)
		}
		if backend.CallCount("adjustLine") != 0 {
			t.Errorf("stale line must not reach the backend, got %v", backend.Calls)
		}
		if c.Order() != fresh {
			t.Error("expected local order replaced by the resync snapshot")
		}
	})

	t.Run("backend failure refreshes then reports", func(t *testing.T) {
		fresh := testOrder("order-1", testLine("L1", "variant-123", 2))
		backend := &vendure.Mock{
			AdjustLineFunc: func(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
				return nil, &domain.Error{Code: domain.EBACKEND, Message: "insufficient stock"}
			},
			FetchActiveOrderFunc: func(ctx context.Context) (*domain.Order, error) {
				return fresh, nil
			},
		}
		c, _ := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

		err := c.SetQuantity(context.Background(), "L1", 500)
		if domain.ErrorCode(err) != domain.EBACKEND {
			t.Fatalf("expected backend error, got %v", err)
		}
		if backend.CallCount("fetchActiveOrder") != 1 {
			t.Errorf("expected a resync fetch after the failed adjust, got %v", backend.Calls)
		}
		if c.Order() != fresh {
			t.Error("expected local order replaced by the resync snapshot")
		}
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("removes the last line", func(t *testing.T) {
		backend := &vendure.Mock{
			RemoveLineFunc: func(ctx context.Context, lineID string) (*domain.Order, error) {
				return testOrder("order-1"), nil
			},
		}
		c, publisher := newTestController(backend)
		c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

		if err := c.RemoveItem(context.Background(), "L1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Cart()) != 0 || c.ItemCount() != 0 {
			t.Errorf("expected empty cart, got %+v", c.Cart())
		}

		if len(publisher.events) != 1 {
			t.Fatalf("expected one event, got %+v", publisher.events)
		}
		event := publisher.events[0]
		if event.Type != events.TypeItemRemoved || event.Line == nil || event.Line.ID != "L1" {
			t.Errorf("expected item_removed with the pre-removal line, got %+v", event)
		}
	})

	t.Run("failure does not refresh or mutate", func(t *testing.T) {
		backend := &vendure.Mock{
			RemoveLineFunc: func(ctx context.Context, lineID string) (*domain.Order, error) {
				return nil, domain.Unavailable(errors.New("timeout"), "vendure.removeLine")
			},
		}
		c, _ := newTestController(backend)
		before := testOrder("order-1", testLine("L1", "variant-123", 2))
		c.order = before

		if err := c.RemoveItem(context.Background(), "L1"); err == nil {
			t.Fatal("expected error")
		}
		if backend.CallCount("fetchActiveOrder") != 0 {
			t.Errorf("removal failure must not force a resync, got %v", backend.Calls)
		}
		if c.Order() != before {
			t.Error("failed removal must not replace the local order")
		}
	})
}

func TestClearCart(t *testing.T) {
	backend := &vendure.Mock{}
	c, publisher := newTestController(backend)
	c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

	c.ClearCart()

	if len(backend.Calls) != 0 {
		t.Errorf("clear must not touch the backend, got %v", backend.Calls)
	}
	if c.Order() != nil || len(c.Cart()) != 0 {
		t.Errorf("expected cleared state, got %+v", c.Order())
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != events.TypeCartCleared {
		t.Errorf("expected cart_cleared event, got %+v", publisher.events)
	}
	if publisher.events[0].OrderID != "order-1" {
		t.Errorf("cleared event should carry the discarded order id, got %+v", publisher.events[0])
	}
}

// The cart is a projection of the order's lines; the two can never disagree.
func TestCartMatchesOrderLines(t *testing.T) {
	backend := &vendure.Mock{
		AddItemFunc: func(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
			return testOrder("order-1",
				testLine("L1", "variant-123", 2),
				testLine("L2", "variant-456", 1),
			), nil
		},
	}
	c, _ := newTestController(backend)

	if _, err := c.AddToCart(context.Background(), "variant-456", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart := c.Cart()
	order := c.Order()
	if len(cart) != len(order.Lines) {
		t.Fatalf("cart has %d lines, order has %d", len(cart), len(order.Lines))
	}
	for i := range cart {
		if cart[i].ID != order.Lines[i].ID || cart[i].Quantity != order.Lines[i].Quantity {
			t.Errorf("cart[%d] = %+v diverged from order line %+v", i, cart[i], order.Lines[i])
		}
	}
}

func TestCartReturnsCopy(t *testing.T) {
	backend := &vendure.Mock{}
	c, _ := newTestController(backend)
	c.order = testOrder("order-1", testLine("L1", "variant-123", 2))

	cart := c.Cart()
	cart[0].Quantity = 99

	if c.Order().Lines[0].Quantity != 2 {
		t.Error("mutating the returned slice must not affect the order")
	}
}

func TestCountsWithoutOrder(t *testing.T) {
	c, _ := newTestController(&vendure.Mock{})

	if c.LineCount() != 0 || c.ItemCount() != 0 {
		t.Errorf("counts = %d/%d, want 0/0", c.LineCount(), c.ItemCount())
	}
	if cart := c.Cart(); cart == nil || len(cart) != 0 {
		t.Errorf("expected empty non-nil cart, got %v", cart)
	}
	if c.IsBusy() {
		t.Error("idle controller must not report busy")
	}
}
