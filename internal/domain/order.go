package domain

import "context"

// Order lifecycle states as reported by the commerce backend. The storefront
// only ever reads these; transitions happen server-side (the one exception
// being the explicit TransitionState call during checkout).
const (
	OrderStateAddingItems      = "AddingItems"
	OrderStateArrangingPayment = "ArrangingPayment"
	OrderStatePaymentSettled   = "PaymentSettled"
	OrderStateDelivered        = "Delivered"
	OrderStateCancelled        = "Cancelled"
)

// Order-related domain errors.
var (
	ErrNoActiveOrder   = &Error{Code: ENOTFOUND, Message: "No active order for this session"}
	ErrLineNotFound    = &Error{Code: ENOTFOUND, Message: "Order line not found"}
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// Order is the remote-authoritative shopping aggregate for one browsing
// session. All monetary totals are server-derived; the storefront never
// computes them. Amounts are in minor units (cents).
type Order struct {
	ID              string      `json:"id"`
	Code            string      `json:"code"`
	State           string      `json:"state"`
	Total           int64       `json:"total"`
	TotalWithTax    int64       `json:"totalWithTax"`
	TotalQuantity   int         `json:"totalQuantity"`
	SubTotal        int64       `json:"subTotal"`
	SubTotalWithTax int64       `json:"subTotalWithTax"`
	Shipping        int64       `json:"shipping"`
	ShippingWithTax int64       `json:"shippingWithTax"`
	Lines           []OrderLine `json:"lines"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	BillingAddress  *Address    `json:"billingAddress,omitempty"`
	Customer        *Customer   `json:"customer,omitempty"`
}

// Line returns the order line with the given id, or nil if absent.
// Line ids are unique within one order.
func (o *Order) Line(lineID string) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// LineByVariant returns the first line referencing the given variant id,
// or nil if absent. Used to locate the line an add resolved into, since the
// backend may merge into an existing line rather than create a new one.
func (o *Order) LineByVariant(variantID string) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].Variant.ID == variantID {
			return &o.Lines[i]
		}
	}
	return nil
}

// OrderLine is one entry in an order. Line ids are distinct from variant and
// product ids. Line totals are server-computed.
type OrderLine struct {
	ID               string       `json:"id"`
	Variant          OrderVariant `json:"productVariant"`
	Quantity         int          `json:"quantity"`
	LinePrice        int64        `json:"linePrice"`
	LinePriceWithTax int64        `json:"linePriceWithTax"`
}

// OrderVariant is the purchasable variant a line references, with enough of
// the parent product to display the line.
type OrderVariant struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Price        int64       `json:"price"`
	PriceWithTax int64       `json:"priceWithTax"`
	Product      LineProduct `json:"product"`
}

// LineProduct is the slice of the parent product carried on an order line.
type LineProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	FeaturedAsset *Asset `json:"featuredAsset,omitempty"`
}

// Address is a flat contact/address record, absent until set.
type Address struct {
	FullName    string `json:"fullName"`
	StreetLine1 string `json:"streetLine1"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Customer is the contact record bound to an order, absent until set.
type Customer struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// AddressInput are the fields accepted when setting a shipping or billing
// address on the active order.
type AddressInput struct {
	FullName    string `json:"fullName" validate:"required"`
	StreetLine1 string `json:"streetLine1" validate:"required"`
	City        string `json:"city" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required,len=2"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// CustomerInput are the fields accepted when binding a customer to the
// active order.
type CustomerInput struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// ShippingMethod is one delivery option the backend deems eligible for the
// active order.
type ShippingMethod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	PriceWithTax int64  `json:"priceWithTax"`
}

// OrderBackend is the remote commerce API's order surface, consumed as an
// opaque collaborator. Every call is a suspension point; session credentials
// travel implicitly with the client (cookie-scoped).
//
// Mutations return the full updated order snapshot on success, or a
// structured backend error (domain.Error with code EBACKEND) on a business
// failure. Transport failures surface as EUNAVAILABLE.
type OrderBackend interface {
	// FetchActiveOrder returns the session's active order, or nil when no
	// active order exists.
	FetchActiveOrder(ctx context.Context) (*Order, error)

	// AddItem adds quantity of a variant to the active order, implicitly
	// creating the order on first call. The backend decides whether to merge
	// into an existing line or create a new one.
	AddItem(ctx context.Context, variantID string, quantity int) (*Order, error)

	// AdjustLine sets the quantity of an existing order line.
	AdjustLine(ctx context.Context, lineID string, quantity int) (*Order, error)

	// RemoveLine removes an order line entirely.
	RemoveLine(ctx context.Context, lineID string) (*Order, error)

	// SetShippingAddress sets the delivery address on the active order.
	SetShippingAddress(ctx context.Context, input AddressInput) (*Order, error)

	// SetBillingAddress sets the billing address on the active order.
	SetBillingAddress(ctx context.Context, input AddressInput) (*Order, error)

	// SetCustomerInfo binds a customer to the active order. Fails benignly
	// when a customer is already bound; callers treat that as non-fatal.
	SetCustomerInfo(ctx context.Context, input CustomerInput) (*Order, error)

	// EligibleShippingMethods lists the delivery options available for the
	// active order.
	EligibleShippingMethods(ctx context.Context) ([]ShippingMethod, error)

	// SetShippingMethod selects one of the eligible delivery options.
	SetShippingMethod(ctx context.Context, methodID string) (*Order, error)

	// TransitionState asks the backend to move the active order to the given
	// lifecycle state (e.g. ArrangingPayment).
	TransitionState(ctx context.Context, state string) (*Order, error)
}
