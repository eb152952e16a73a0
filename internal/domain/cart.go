package domain

import "context"

// Cart domain errors.
var (
	ErrStaleCart = &Error{
		Code:    ESTALE,
		Message: "Item not found in local cart; cart was refreshed, please retry",
	}
)

// AddResult reports which line an add resolved into. The backend may merge
// the added quantity into an existing line rather than create a new one, so
// the line's quantity can exceed the quantity just added.
type AddResult struct {
	Line     OrderLine `json:"line"`
	OrderID  string    `json:"orderId"`
	Quantity int       `json:"quantity"`
}

// CartController owns the single source of truth for the session's active
// order. All mutations go through it; after every successful mutation the
// local view is replaced wholesale by the backend's order snapshot, so the
// cart never drifts from the order.
//
// Mutations on one controller are serialized. Failed mutations leave the
// local order untouched except where the documented resync policy forces a
// refresh first.
type CartController interface {
	// Refresh replaces the local order with the backend's active order. A nil
	// result means no active order exists. On failure the stale local order
	// is kept; a transient network failure must not blank the cart.
	Refresh(ctx context.Context) error

	// AddToCart adds quantity of a variant, implicitly creating the order on
	// first use, and reports the resulting line.
	AddToCart(ctx context.Context, variantID string, quantity int) (*AddResult, error)

	// SetQuantity sets a line's quantity. Zero delegates to RemoveItem. If
	// the line is missing from the local view, or the backend call fails, the
	// controller refreshes before reporting the failure.
	SetQuantity(ctx context.Context, lineID string, quantity int) error

	// RemoveItem removes a line. No refresh on failure.
	RemoveItem(ctx context.Context, lineID string) error

	// ClearCart discards the local order without a backend call. Used when
	// checkout completes and the backend order becomes a historical record.
	ClearCart()

	// Cart returns the ordered lines of the current order; empty when no
	// order exists. Read-only projection, never independently mutated.
	Cart() []OrderLine

	// Order returns the current order snapshot, or nil when absent.
	Order() *Order

	// LineCount returns the number of lines in the cart.
	LineCount() int

	// ItemCount returns the sum of line quantities.
	ItemCount() int

	// IsBusy reports whether a mutation or refresh is in flight. Advisory
	// only, for UI loading affordances; not a mutual-exclusion gate.
	IsBusy() bool
}
