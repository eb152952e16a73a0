package vendure

import (
	"context"

	"github.com/pawluxe/storefront/internal/domain"
)

// Wire shapes for the catalog queries. The shop API nests custom fields and
// variants one level deeper than the domain model cares about, and the
// saleable count arrives through the actualStockLevel extension field.

type productWire struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	CustomFields struct {
		PopularityScore int `json:"popularityScore"`
	} `json:"customFields"`
	FacetValues   []domain.FacetValue `json:"facetValues"`
	FeaturedAsset *domain.Asset       `json:"featuredAsset"`
	Assets        []domain.Asset      `json:"assets"`
	VariantList   struct {
		Items []variantWire `json:"items"`
	} `json:"variantList"`
}

type variantWire struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ProductID        string `json:"productId"`
	Price            int64  `json:"price"`
	PriceWithTax     int64  `json:"priceWithTax"`
	StockLevel       string `json:"stockLevel"`
	ActualStockLevel int    `json:"actualStockLevel"`
}

func (w productWire) toDomain() domain.Product {
	variants := make([]domain.Variant, 0, len(w.VariantList.Items))
	for _, v := range w.VariantList.Items {
		level := domain.StockLevel(v.StockLevel)
		if level == "" {
			level = domain.ClassifyStock(v.ActualStockLevel)
		}
		variants = append(variants, domain.Variant{
			ID:           v.ID,
			Name:         v.Name,
			ProductID:    v.ProductID,
			Price:        v.Price,
			PriceWithTax: v.PriceWithTax,
			StockOnHand:  v.ActualStockLevel,
			StockLevel:   level,
		})
	}

	return domain.Product{
		ID:              w.ID,
		Name:            w.Name,
		Slug:            w.Slug,
		Description:     w.Description,
		PopularityScore: w.CustomFields.PopularityScore,
		FacetValues:     w.FacetValues,
		FeaturedAsset:   w.FeaturedAsset,
		Assets:          w.Assets,
		Variants:        variants,
	}
}

// FetchProducts returns the full catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var result struct {
		TotalItems int           `json:"totalItems"`
		Items      []productWire `json:"items"`
	}
	if err := c.do(ctx, "vendure.fetchProducts", productsQuery, nil, "products", &result); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(result.Items))
	for _, item := range result.Items {
		products = append(products, item.toDomain())
	}
	return products, nil
}

// FetchProduct returns one product by slug, or domain.ErrProductNotFound.
func (c *Client) FetchProduct(ctx context.Context, slug string) (*domain.Product, error) {
	var wire productWire
	if err := c.do(ctx, "vendure.fetchProduct", productBySlugQuery, map[string]any{"slug": slug}, "product", &wire); err != nil {
		return nil, err
	}
	if wire.ID == "" {
		return nil, domain.NotFound("vendure.fetchProduct", "product", slug)
	}

	product := wire.toDomain()
	return &product, nil
}
