package domain

import "context"

// Catalog domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// StockLevel classifies a variant's saleable stock count for display.
type StockLevel string

const (
	StockOut = StockLevel("OUT_OF_STOCK")
	StockLow = StockLevel("LOW_STOCK")
	StockIn  = StockLevel("IN_STOCK")
)

// lowStockThreshold is the saleable count at or below which a variant is
// shown as low stock.
const lowStockThreshold = 10

// ClassifyStock maps a saleable stock count to its display classification.
func ClassifyStock(available int) StockLevel {
	if available <= 0 {
		return StockOut
	}
	if available <= lowStockThreshold {
		return StockLow
	}
	return StockIn
}

// Shipping cost display rule, in cents. Orders at or above the free-shipping
// threshold ship free on the standard service.
const (
	standardShippingCents = 499
	expressShippingCents  = 999
	freeShippingThreshold = 5000
)

// DisplayShippingCost returns the storefront's advertised shipping cost for
// a cart subtotal (tax inclusive, cents). This is a display aid only; the
// authoritative shipping total always comes from the order snapshot.
func DisplayShippingCost(subtotalWithTax int64, express bool) int64 {
	if express {
		return expressShippingCents
	}
	if subtotalWithTax >= freeShippingThreshold {
		return 0
	}
	return standardShippingCents
}

// Product is a catalog entry with its purchasable variants.
type Product struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Slug            string       `json:"slug"`
	Description     string       `json:"description"`
	PopularityScore int          `json:"popularityScore"`
	FacetValues     []FacetValue `json:"facetValues"`
	FeaturedAsset   *Asset       `json:"featuredAsset,omitempty"`
	Assets          []Asset      `json:"assets,omitempty"`
	Variants        []Variant    `json:"variants"`
}

// Category returns the product's primary facet name, or "" when unfaceted.
// The catalog assigns one category facet per product.
func (p *Product) Category() string {
	if len(p.FacetValues) == 0 {
		return ""
	}
	return p.FacetValues[0].Name
}

// DisplayPrice returns the tax-inclusive price of the product's lead
// variant, in cents. Zero when the product has no variants.
func (p *Product) DisplayPrice() int64 {
	if len(p.Variants) == 0 {
		return 0
	}
	return p.Variants[0].PriceWithTax
}

// Featured reports whether the product carries the "top" facet in any
// position. This is the featured-shelf check; the catalog listing's featured
// filter is stricter and keys on the primary facet only.
func (p *Product) Featured() bool {
	for _, f := range p.FacetValues {
		if f.Name == "top" {
			return true
		}
	}
	return false
}

// DisplayStockLevel returns the stock classification of the lead variant,
// the one the listing displays and filters on. StockOut when the product has
// no variants.
func (p *Product) DisplayStockLevel() StockLevel {
	if len(p.Variants) == 0 {
		return StockOut
	}
	lead := p.Variants[0]
	if lead.StockLevel != "" {
		return lead.StockLevel
	}
	return ClassifyStock(lead.StockOnHand)
}

// FacetValue tags a product (category, "top", etc.).
type FacetValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Asset is an image reference.
type Asset struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Preview string `json:"preview"`
}

// Variant is a purchasable configuration of a product. StockOnHand is the
// backend's saleable count (the actualStockLevel extension field);
// StockLevel is its display classification.
type Variant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ProductID    string     `json:"productId"`
	Price        int64      `json:"price"`
	PriceWithTax int64      `json:"priceWithTax"`
	StockOnHand  int        `json:"stockOnHand"`
	StockLevel   StockLevel `json:"stockLevel"`
}

// CatalogBackend is the remote commerce API's catalog surface.
type CatalogBackend interface {
	// FetchProducts returns the full catalog.
	FetchProducts(ctx context.Context) ([]Product, error)

	// FetchProduct returns one product by slug, or ErrProductNotFound.
	FetchProduct(ctx context.Context, slug string) (*Product, error)
}
