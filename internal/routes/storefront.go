package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the storefront API plus the operational endpoints.
func Register(e *echo.Echo, deps Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Catalog. The static /products/top route must be registered alongside
	// the :slug route; echo matches static segments first.
	api.GET("/products", deps.Products.List)
	api.GET("/products/top", deps.Products.Top)
	api.GET("/products/:slug", deps.Products.Get)
	api.GET("/categories", deps.Products.Categories)

	// Cart.
	api.GET("/cart", deps.Cart.Get)
	api.POST("/cart/refresh", deps.Cart.Refresh)
	api.POST("/cart/items", deps.Cart.AddItem)
	api.PUT("/cart/items/:lineID", deps.Cart.UpdateItem)
	api.DELETE("/cart/items/:lineID", deps.Cart.RemoveItem)

	// Checkout.
	api.POST("/checkout/customer", deps.Checkout.Customer)
	api.GET("/checkout/shipping-methods", deps.Checkout.ShippingMethods)
	api.POST("/checkout/shipping", deps.Checkout.Shipping)
	api.POST("/checkout/arrange-payment", deps.Checkout.ArrangePayment)
	api.POST("/checkout/complete", deps.Checkout.Complete)
}
