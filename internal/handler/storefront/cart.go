package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/handler"
	"github.com/pawluxe/storefront/internal/session"
)

// CartHandler serves the cart endpoints. Every request resolves the
// visitor's controller; all cart state lives there, never in the handler.
type CartHandler struct {
	sessions *session.Manager
	secure   bool
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(sessions *session.Manager, secure bool, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		secure:   secure,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// cartView is the JSON shape of the cart endpoints' responses.
type cartView struct {
	Order     *domain.Order      `json:"order"`
	Lines     []domain.OrderLine `json:"lines"`
	LineCount int                `json:"lineCount"`
	ItemCount int                `json:"itemCount"`
	Busy      bool               `json:"busy"`
}

func viewOf(controller domain.CartController) cartView {
	return cartView{
		Order:     controller.Order(),
		Lines:     controller.Cart(),
		LineCount: controller.LineCount(),
		ItemCount: controller.ItemCount(),
		Busy:      controller.IsBusy(),
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	return c.JSON(http.StatusOK, viewOf(visitor.Controller))
}

// Refresh handles POST /api/cart/refresh.
func (h *CartHandler) Refresh(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	if err := visitor.Controller.Refresh(c.Request().Context()); err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, viewOf(visitor.Controller))
}

type addItemRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return handler.Error(c, h.logger, domain.Invalid("cart.add", "malformed request body"))
	}
	if req.VariantID == "" {
		return handler.Error(c, h.logger, domain.Invalid("cart.add", "variantId is required"))
	}

	visitor := resolveVisitor(c, h.sessions, h.secure)
	result, err := visitor.Controller.AddToCart(c.Request().Context(), req.VariantID, req.Quantity)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"added": result,
		"cart":  viewOf(visitor.Controller),
	})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/:lineID.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return handler.Error(c, h.logger, domain.Invalid("cart.update", "malformed request body"))
	}

	visitor := resolveVisitor(c, h.sessions, h.secure)
	if err := visitor.Controller.SetQuantity(c.Request().Context(), c.Param("lineID"), req.Quantity); err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, viewOf(visitor.Controller))
}

// RemoveItem handles DELETE /api/cart/items/:lineID.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	visitor := resolveVisitor(c, h.sessions, h.secure)
	if err := visitor.Controller.RemoveItem(c.Request().Context(), c.Param("lineID")); err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, viewOf(visitor.Controller))
}
