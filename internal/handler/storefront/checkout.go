package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/handler"
	"github.com/pawluxe/storefront/internal/service"
	"github.com/pawluxe/storefront/internal/session"
)

// CheckoutHandler serves the checkout step endpoints.
type CheckoutHandler struct {
	sessions *session.Manager
	checkout service.CheckoutService
	secure   bool
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(sessions *session.Manager, checkout service.CheckoutService, secure bool, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		checkout: checkout,
		secure:   secure,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// Customer handles POST /api/checkout/customer.
func (h *CheckoutHandler) Customer(c echo.Context) error {
	var input service.CustomerStepInput
	if err := c.Bind(&input); err != nil {
		return handler.Error(c, h.logger, domain.Invalid("checkout.customer", "malformed request body"))
	}

	visitor := resolveVisitor(c, h.sessions, h.secure)
	order, err := h.checkout.SubmitCustomer(c.Request().Context(), visitor.Backend, visitor.Controller, input)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"order": order})
}

// ShippingMethods handles GET /api/checkout/shipping-methods.
func (h *CheckoutHandler) ShippingMethods(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	methods, err := h.checkout.ShippingMethods(c.Request().Context(), visitor.Backend)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": methods})
}

// Shipping handles POST /api/checkout/shipping.
func (h *CheckoutHandler) Shipping(c echo.Context) error {
	var input service.ShippingStepInput
	if err := c.Bind(&input); err != nil {
		return handler.Error(c, h.logger, domain.Invalid("checkout.shipping", "malformed request body"))
	}

	visitor := resolveVisitor(c, h.sessions, h.secure)
	order, err := h.checkout.SubmitShipping(c.Request().Context(), visitor.Backend, visitor.Controller, input)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"order": order})
}

// ArrangePayment handles POST /api/checkout/arrange-payment.
func (h *CheckoutHandler) ArrangePayment(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	order, err := h.checkout.ArrangePayment(c.Request().Context(), visitor.Backend, visitor.Controller)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"order": order})
}

// Complete handles POST /api/checkout/complete.
func (h *CheckoutHandler) Complete(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	h.checkout.Complete(visitor.Controller)
	return c.JSON(http.StatusOK, viewOf(visitor.Controller))
}
