package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/pawluxe/storefront/internal/domain"
)

// Sort orders accepted by ListProducts.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// ProductFilter narrows and orders the catalog listing. Zero values mean
// "no constraint"; MaxPrice of zero leaves the upper bound open.
type ProductFilter struct {
	Search       string
	Category     string
	MinPrice     int64
	MaxPrice     int64
	InStockOnly  bool
	FeaturedOnly bool
	Sort         string
}

// ProductService provides the storefront's catalog operations.
type ProductService interface {
	// ListProducts returns the catalog filtered and sorted per the filter.
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// GetProduct returns one product by slug.
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)

	// TopProducts returns up to limit featured products for the landing shelf.
	TopProducts(ctx context.Context, limit int) ([]domain.Product, error)

	// Categories returns the distinct category names present in the catalog,
	// sorted alphabetically.
	Categories(ctx context.Context) ([]string, error)
}

type productServiceImpl struct {
	catalog domain.CatalogBackend
}

// NewProductService creates a new product service.
func NewProductService(catalog domain.CatalogBackend) ProductService {
	return &productServiceImpl{catalog: catalog}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(&p, filter) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, filter.Sort)
	return filtered, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	return s.catalog.FetchProduct(ctx, slug)
}

func (s *productServiceImpl) TopProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Featured() {
			featured = append(featured, p)
		}
	}

	sortProducts(featured, SortFeatured)
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (s *productServiceImpl) Categories(ctx context.Context) ([]string, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		name := p.Category()
		if name == "" || name == "top" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}

	sort.Strings(categories)
	return categories, nil
}

func matches(p *domain.Product, filter ProductFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Category()), needle) {
			return false
		}
	}
	if filter.Category != "" && !strings.EqualFold(p.Category(), filter.Category) {
		return false
	}

	price := p.DisplayPrice()
	if filter.MinPrice > 0 && price < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && price > filter.MaxPrice {
		return false
	}

	// Low-stock products are purchasable but hidden behind the in-stock
	// toggle; only a fully stocked lead variant passes.
	if filter.InStockOnly && p.DisplayStockLevel() != domain.StockIn {
		return false
	}
	// The listing's featured filter keys on the primary facet; the featured
	// shelf (TopProducts) accepts the top facet in any position.
	if filter.FeaturedOnly && p.Category() != "top" {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DisplayPrice() < products[j].DisplayPrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DisplayPrice() > products[j].DisplayPrice()
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name > products[j].Name
		})
	default:
		// Featured order: catalog id, which tracks merchandising priority.
		sort.SliceStable(products, func(i, j int) bool {
			return idLess(products[i].ID, products[j].ID)
		})
	}
}

// idLess compares catalog ids numerically when possible; the commerce API
// issues numeric string ids.
func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
