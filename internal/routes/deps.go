// Package routes wires the handlers onto the echo router.
package routes

import (
	"github.com/pawluxe/storefront/internal/handler/storefront"
)

// Deps contains the handlers the storefront routes need.
type Deps struct {
	Products *storefront.ProductHandler
	Cart     *storefront.CartHandler
	Checkout *storefront.CheckoutHandler
}
