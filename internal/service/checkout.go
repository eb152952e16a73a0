package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
)

// CustomerStepInput is the first checkout step: who is buying, and where the
// bill goes.
type CustomerStepInput struct {
	Customer       domain.CustomerInput `json:"customer" validate:"required"`
	BillingAddress domain.AddressInput  `json:"billingAddress" validate:"required"`
}

// ShippingStepInput is the second checkout step: where the order ships and
// which eligible method delivers it.
type ShippingStepInput struct {
	Address  domain.AddressInput `json:"address" validate:"required"`
	MethodID string              `json:"methodId" validate:"required"`
}

// CheckoutService drives the active order through the checkout steps. Each
// method operates on one session's backend client and cart controller; the
// order itself always lives on the backend.
type CheckoutService interface {
	// SubmitCustomer binds the customer (only when the order has none yet)
	// and sets the billing address, then resynchronizes the cart.
	SubmitCustomer(ctx context.Context, backend domain.OrderBackend, controller domain.CartController, input CustomerStepInput) (*domain.Order, error)

	// ShippingMethods returns the delivery options eligible for the active
	// order.
	ShippingMethods(ctx context.Context, backend domain.OrderBackend) ([]domain.ShippingMethod, error)

	// SubmitShipping sets the shipping address and method, then
	// resynchronizes the cart.
	SubmitShipping(ctx context.Context, backend domain.OrderBackend, controller domain.CartController, input ShippingStepInput) (*domain.Order, error)

	// ArrangePayment transitions the order to ArrangingPayment, the state the
	// (external) payment flow picks it up in.
	ArrangePayment(ctx context.Context, backend domain.OrderBackend, controller domain.CartController) (*domain.Order, error)

	// Complete discards the local cart once the order has left the session's
	// hands. No backend call; the order is now a historical record there.
	Complete(controller domain.CartController)
}

type checkoutServiceImpl struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(logger zerolog.Logger) CheckoutService {
	return &checkoutServiceImpl{
		validate: validator.New(),
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

func (s *checkoutServiceImpl) SubmitCustomer(ctx context.Context, backend domain.OrderBackend, controller domain.CartController, input CustomerStepInput) (*domain.Order, error) {
	const op = "checkout.SubmitCustomer"

	if err := s.validate.Struct(input); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, op, "invalid checkout input")
	}

	order, err := s.activeOrder(ctx, controller)
	if err != nil {
		return nil, err
	}

	// Returning shoppers already have a customer on the order; re-binding one
	// is rejected by the backend, so only bind when absent. The backend also
	// rejects the bind when the email belongs to a registered account mid
	// guest checkout; that order still carries the customer, so the failure
	// is benign and checkout proceeds.
	if order.Customer == nil {
		if _, err := backend.SetCustomerInfo(ctx, input.Customer); err != nil {
			if domain.ErrorCode(err) != domain.EBACKEND {
				return nil, err
			}
			s.logger.Warn().Err(err).Msg("customer bind rejected; continuing checkout")
		}
	}

	if _, err := backend.SetBillingAddress(ctx, input.BillingAddress); err != nil {
		return nil, err
	}

	if err := controller.Refresh(ctx); err != nil {
		return nil, err
	}
	return controller.Order(), nil
}

func (s *checkoutServiceImpl) ShippingMethods(ctx context.Context, backend domain.OrderBackend) ([]domain.ShippingMethod, error) {
	return backend.EligibleShippingMethods(ctx)
}

func (s *checkoutServiceImpl) SubmitShipping(ctx context.Context, backend domain.OrderBackend, controller domain.CartController, input ShippingStepInput) (*domain.Order, error) {
	const op = "checkout.SubmitShipping"

	if err := s.validate.Struct(input); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, op, "invalid checkout input")
	}

	if _, err := s.activeOrder(ctx, controller); err != nil {
		return nil, err
	}

	if _, err := backend.SetShippingAddress(ctx, input.Address); err != nil {
		return nil, err
	}
	if _, err := backend.SetShippingMethod(ctx, input.MethodID); err != nil {
		return nil, err
	}

	if err := controller.Refresh(ctx); err != nil {
		return nil, err
	}
	return controller.Order(), nil
}

func (s *checkoutServiceImpl) ArrangePayment(ctx context.Context, backend domain.OrderBackend, controller domain.CartController) (*domain.Order, error) {
	if _, err := s.activeOrder(ctx, controller); err != nil {
		return nil, err
	}

	order, err := backend.TransitionState(ctx, domain.OrderStateArrangingPayment)
	if err != nil {
		return nil, err
	}

	if err := controller.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("cart resync after payment transition failed")
	}
	return order, nil
}

func (s *checkoutServiceImpl) Complete(controller domain.CartController) {
	controller.ClearCart()
}

// activeOrder returns the session's current order, refreshing once when the
// local view is empty.
func (s *checkoutServiceImpl) activeOrder(ctx context.Context, controller domain.CartController) (*domain.Order, error) {
	if order := controller.Order(); order != nil {
		return order, nil
	}
	if err := controller.Refresh(ctx); err != nil {
		return nil, err
	}
	if order := controller.Order(); order != nil {
		return order, nil
	}
	return nil, domain.ErrNoActiveOrder
}
