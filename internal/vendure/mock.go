package vendure

import (
	"context"

	"github.com/pawluxe/storefront/internal/domain"
)

// Mock is a test implementation of domain.OrderBackend and
// domain.CatalogBackend. Unset functions return empty results.
type Mock struct {
	FetchActiveOrderFunc        func(ctx context.Context) (*domain.Order, error)
	AddItemFunc                 func(ctx context.Context, variantID string, quantity int) (*domain.Order, error)
	AdjustLineFunc              func(ctx context.Context, lineID string, quantity int) (*domain.Order, error)
	RemoveLineFunc              func(ctx context.Context, lineID string) (*domain.Order, error)
	SetShippingAddressFunc      func(ctx context.Context, input domain.AddressInput) (*domain.Order, error)
	SetBillingAddressFunc       func(ctx context.Context, input domain.AddressInput) (*domain.Order, error)
	SetCustomerInfoFunc         func(ctx context.Context, input domain.CustomerInput) (*domain.Order, error)
	EligibleShippingMethodsFunc func(ctx context.Context) ([]domain.ShippingMethod, error)
	SetShippingMethodFunc       func(ctx context.Context, methodID string) (*domain.Order, error)
	TransitionStateFunc         func(ctx context.Context, state string) (*domain.Order, error)
	FetchProductsFunc           func(ctx context.Context) ([]domain.Product, error)
	FetchProductFunc            func(ctx context.Context, slug string) (*domain.Product, error)

	// Calls records invoked operation names in order, for asserting which
	// backend calls an operation issued (or that none were).
	Calls []string
}

func (m *Mock) record(op string) {
	m.Calls = append(m.Calls, op)
}

// CallCount returns how many times the named operation was invoked.
func (m *Mock) CallCount(op string) int {
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *Mock) FetchActiveOrder(ctx context.Context) (*domain.Order, error) {
	m.record("fetchActiveOrder")
	if m.FetchActiveOrderFunc != nil {
		return m.FetchActiveOrderFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) AddItem(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
	m.record("addItem")
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, variantID, quantity)
	}
	return &domain.Order{}, nil
}

func (m *Mock) AdjustLine(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
	m.record("adjustLine")
	if m.AdjustLineFunc != nil {
		return m.AdjustLineFunc(ctx, lineID, quantity)
	}
	return &domain.Order{}, nil
}

func (m *Mock) RemoveLine(ctx context.Context, lineID string) (*domain.Order, error) {
	m.record("removeLine")
	if m.RemoveLineFunc != nil {
		return m.RemoveLineFunc(ctx, lineID)
	}
	return &domain.Order{}, nil
}

func (m *Mock) SetShippingAddress(ctx context.Context, input domain.AddressInput) (*domain.Order, error) {
	m.record("setShippingAddress")
	if m.SetShippingAddressFunc != nil {
		return m.SetShippingAddressFunc(ctx, input)
	}
	return &domain.Order{}, nil
}

func (m *Mock) SetBillingAddress(ctx context.Context, input domain.AddressInput) (*domain.Order, error) {
	m.record("setBillingAddress")
	if m.SetBillingAddressFunc != nil {
		return m.SetBillingAddressFunc(ctx, input)
	}
	return &domain.Order{}, nil
}

func (m *Mock) SetCustomerInfo(ctx context.Context, input domain.CustomerInput) (*domain.Order, error) {
	m.record("setCustomerInfo")
	if m.SetCustomerInfoFunc != nil {
		return m.SetCustomerInfoFunc(ctx, input)
	}
	return &domain.Order{}, nil
}

func (m *Mock) EligibleShippingMethods(ctx context.Context) ([]domain.ShippingMethod, error) {
	m.record("eligibleShippingMethods")
	if m.EligibleShippingMethodsFunc != nil {
		return m.EligibleShippingMethodsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) SetShippingMethod(ctx context.Context, methodID string) (*domain.Order, error) {
	m.record("setShippingMethod")
	if m.SetShippingMethodFunc != nil {
		return m.SetShippingMethodFunc(ctx, methodID)
	}
	return &domain.Order{}, nil
}

func (m *Mock) TransitionState(ctx context.Context, state string) (*domain.Order, error) {
	m.record("transitionState")
	if m.TransitionStateFunc != nil {
		return m.TransitionStateFunc(ctx, state)
	}
	return &domain.Order{}, nil
}

func (m *Mock) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	m.record("fetchProducts")
	if m.FetchProductsFunc != nil {
		return m.FetchProductsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) FetchProduct(ctx context.Context, slug string) (*domain.Product, error) {
	m.record("fetchProduct")
	if m.FetchProductFunc != nil {
		return m.FetchProductFunc(ctx, slug)
	}
	return nil, domain.ErrProductNotFound
}
