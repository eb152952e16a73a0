package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/handler"
	"github.com/pawluxe/storefront/internal/service"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products service.ProductService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.With().Str("handler", "products").Logger(),
	}
}

// List handles GET /api/products.
//
// Query parameters: search, category, minPrice, maxPrice (cents), inStock,
// featured, sort (featured|price-asc|price-desc|name-asc|name-desc).
func (h *ProductHandler) List(c echo.Context) error {
	filter := service.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return handler.Error(c, h.logger, domain.Invalid("products.list", "minPrice must be an integer price in cents"))
		}
		filter.MinPrice = n
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return handler.Error(c, h.logger, domain.Invalid("products.list", "maxPrice must be an integer price in cents"))
		}
		filter.MaxPrice = n
	}
	filter.InStockOnly = c.QueryParam("inStock") == "true"
	filter.FeaturedOnly = c.QueryParam("featured") == "true"

	products, err := h.products.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":      products,
		"totalItems": len(products),
	})
}

// Top handles GET /api/products/top.
func (h *ProductHandler) Top(c echo.Context) error {
	limit := 4
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := h.products.TopProducts(c.Request().Context(), limit)
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": products})
}

// Get handles GET /api/products/:slug.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Categories handles GET /api/categories.
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.products.Categories(c.Request().Context())
	if err != nil {
		return handler.Error(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": categories})
}
