package services

import (
	"github.com/shopspring/decimal"
	"github.com/thesyncbridge/apiserver/types"
)

var apparelSizes = []string{"S", "M", "L", "XL", "XXL"}

// fallbackCatalog is served for every product type that has no active stored product.
func fallbackCatalog() map[string]types.Product {
	products := []types.Product{
		{
			ProductType: "hoodie",
			Name:        "Guardian Hoodie",
			Price:       decimal.RequireFromString("65.00"),
			Description: "Heavyweight hoodie carrying the Guardian crest.",
			Sizes:       apparelSizes,
			Category:    "apparel",
			IsActive:    true,
		},
		{
			ProductType: "shirt",
			Name:        "Guardian Shirt",
			Price:       decimal.RequireFromString("35.00"),
			Description: "Cotton shirt with the mission insignia.",
			Sizes:       apparelSizes,
			Category:    "apparel",
			IsActive:    true,
		},
		{
			ProductType: "hat",
			Name:        "Guardian Hat",
			Price:       decimal.RequireFromString("30.00"),
			Description: "Embroidered cap, one size fits all.",
			Category:    "accessories",
			IsActive:    true,
		},
	}

	catalog := make(map[string]types.Product, len(products))
	for _, p := range products {
		p.Sizes = append([]string(nil), p.Sizes...)
		catalog[p.ProductType] = p
	}
	return catalog
}
