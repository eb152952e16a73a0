// Package cart owns the session's view of the active order and keeps it
// synchronized with the commerce backend across failure-prone mutations.
package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/events"
)

// Controller is the single source of truth for one session's active order.
// The local order is only ever replaced wholesale by backend snapshots, so
// the cart projection cannot drift from the order.
//
// Mutations and refreshes on one controller serialize on an internal mutex:
// two overlapping mutations execute one after the other rather than racing
// last-write-wins on the order cell. The busy flag stays advisory.
type Controller struct {
	backend   domain.OrderBackend
	publisher events.Publisher
	logger    zerolog.Logger

	mu    sync.Mutex
	order *domain.Order
	busy  atomic.Bool
}

// NewController creates a controller bound to one session's backend client.
// Callers should Refresh once after construction to pick up any existing
// active order.
func NewController(backend domain.OrderBackend, publisher events.Publisher, logger zerolog.Logger) *Controller {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Controller{
		backend:   backend,
		publisher: publisher,
		logger:    logger.With().Str("component", "cart").Logger(),
	}
}

// Refresh replaces the local order with the backend's active order (nil when
// none exists). On failure the stale local order is kept: a transient
// network failure must not blank the user's cart.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

// refreshLocked is Refresh for callers already holding the mutation lock.
func (c *Controller) refreshLocked(ctx context.Context) error {
	c.busy.Store(true)
	defer c.busy.Store(false)

	order, err := c.backend.FetchActiveOrder(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to refresh active order; keeping local state")
		return err
	}

	c.order = order
	return nil
}

// AddToCart adds quantity of a variant to the active order, implicitly
// creating the order on first use. The result reports the line the add
// resolved into; the backend may have merged into an existing line, so the
// reported quantity can exceed the quantity just added.
func (c *Controller) AddToCart(ctx context.Context, variantID string, quantity int) (*domain.AddResult, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy.Store(true)
	defer c.busy.Store(false)

	order, err := c.backend.AddItem(ctx, variantID, quantity)
	if err != nil {
		return nil, err
	}

	c.order = order

	result := &domain.AddResult{OrderID: order.ID}
	if line := order.LineByVariant(variantID); line != nil {
		result.Line = *line
		result.Quantity = line.Quantity
		c.publish(ctx, events.TypeItemAdded, order.ID, line)
	}
	return result, nil
}

// SetQuantity sets a line's quantity. Zero delegates to RemoveItem.
//
// Quantity changes are the most failure-prone path: stale line ids from a
// second tab or an unrefreshed view after an earlier failure. Both failure
// branches therefore resynchronize before reporting, so a retry operates on
// fresh state.
func (c *Controller) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity == 0 {
		return c.RemoveItem(ctx, lineID)
	}
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy.Store(true)
	defer c.busy.Store(false)

	if c.order == nil || c.order.Line(lineID) == nil {
		c.logger.Warn().Str("line_id", lineID).Msg("line missing from local cart; refreshing")
		if err := c.refreshLocked(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("resync after stale line failed")
		}
		return domain.ErrStaleCart
	}

	order, err := c.backend.AdjustLine(ctx, lineID, quantity)
	if err != nil {
		if refreshErr := c.refreshLocked(ctx); refreshErr != nil {
			c.logger.Warn().Err(refreshErr).Msg("resync after failed adjust failed")
		}
		return err
	}

	c.order = order
	c.publish(ctx, events.TypeQuantityChanged, order.ID, order.Line(lineID))
	return nil
}

// RemoveItem removes a line from the active order. Removal failures are rare
// and not state-sensitive, so no resync is forced on failure.
func (c *Controller) RemoveItem(ctx context.Context, lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy.Store(true)
	defer c.busy.Store(false)

	// Pre-removal snapshot; the line is gone from the response order.
	var removed *domain.OrderLine
	if c.order != nil {
		if line := c.order.Line(lineID); line != nil {
			snapshot := *line
			removed = &snapshot
		}
	}

	order, err := c.backend.RemoveLine(ctx, lineID)
	if err != nil {
		return err
	}

	c.order = order
	if removed != nil {
		c.publish(ctx, events.TypeItemRemoved, order.ID, removed)
	}
	return nil
}

// ClearCart discards the local order without a backend call. Used when
// checkout completes and the backend order becomes a historical record.
func (c *Controller) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var orderID string
	if c.order != nil {
		orderID = c.order.ID
	}
	c.order = nil
	c.publish(context.Background(), events.TypeCartCleared, orderID, nil)
}

// Cart returns the ordered lines of the current order; empty when no order
// exists. The returned slice is a copy.
func (c *Controller) Cart() []domain.OrderLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.order == nil {
		return []domain.OrderLine{}
	}

	lines := make([]domain.OrderLine, len(c.order.Lines))
	copy(lines, c.order.Lines)
	return lines
}

// Order returns the current order snapshot, or nil when absent.
func (c *Controller) Order() *domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// LineCount returns the number of lines in the cart.
func (c *Controller) LineCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.order == nil {
		return 0
	}
	return len(c.order.Lines)
}

// ItemCount returns the sum of line quantities.
func (c *Controller) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.order == nil {
		return 0
	}
	total := 0
	for _, line := range c.order.Lines {
		total += line.Quantity
	}
	return total
}

// IsBusy reports whether a mutation or refresh is in flight. Advisory only,
// for UI loading affordances.
func (c *Controller) IsBusy() bool {
	return c.busy.Load()
}

// publish emits a domain event. Best effort: a failed publish never fails
// the mutation that triggered it.
func (c *Controller) publish(ctx context.Context, eventType, orderID string, line *domain.OrderLine) {
	event := events.NewCartEvent(eventType, orderID, line)
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn().Err(err).Str("type", eventType).Msg("failed to publish cart event")
	}
}
