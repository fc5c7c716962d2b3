package services

import (
	"context"
	"strings"

	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

// ProductRepository defines persistence operations for stored products.
type ProductRepository interface {
	Create(ctx context.Context, product types.Product) (types.Product, error)
	// ListActive returns the active stored products.
	ListActive(ctx context.Context) ([]types.Product, error)
	// ListAll returns every stored product, newest first.
	ListAll(ctx context.Context) ([]types.Product, error)
	Delete(ctx context.Context, id string) error
}

// MerchandiseService serves the effective catalog: stored active products
// overlaid on the built-in fallback set.
type MerchandiseService struct {
	repo ProductRepository
}

func NewMerchandiseService(repo ProductRepository) *MerchandiseService {
	return &MerchandiseService{repo: repo}
}

// Catalog returns the effective catalog keyed by product type.
func (s *MerchandiseService) Catalog(ctx context.Context) (map[string]types.Product, error) {
	stored, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	catalog := fallbackCatalog()
	for _, product := range stored {
		catalog[product.ProductType] = product
	}
	return catalog, nil
}

// Get returns one product of the effective catalog.
func (s *MerchandiseService) Get(ctx context.Context, productType string) (types.Product, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return types.Product{}, err
	}
	product, ok := catalog[strings.ToLower(strings.TrimSpace(productType))]
	if !ok {
		return types.Product{}, store.ErrNotFound
	}
	return product, nil
}

func (s *MerchandiseService) ListStored(ctx context.Context) ([]types.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *MerchandiseService) Create(ctx context.Context, product types.Product) (types.Product, error) {
	product.ProductType = strings.ToLower(strings.TrimSpace(product.ProductType))
	product.Name = strings.TrimSpace(product.Name)
	product.Category = strings.TrimSpace(product.Category)
	product.Description = strings.TrimSpace(product.Description)

	if product.ProductType == "" {
		return types.Product{}, invalid("product_type", "product_type is required")
	}
	if product.Name == "" {
		return types.Product{}, invalid("name", "name is required")
	}
	if !product.Price.IsPositive() {
		return types.Product{}, invalid("price", "price must be positive")
	}
	product.Price = product.Price.Round(2)

	sizes := make([]string, 0, len(product.Sizes))
	for _, size := range product.Sizes {
		if size = strings.ToUpper(strings.TrimSpace(size)); size != "" {
			sizes = append(sizes, size)
		}
	}
	product.Sizes = sizes
	product.IsActive = true

	return s.repo.Create(ctx, product)
}

func (s *MerchandiseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
