package types

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers (65.00 -> 65), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a merchandise catalog entry keyed by its product type.
type Product struct {
	// ID is the unique identifier of a stored product. Built-in catalog
	// entries carry an empty ID.
	ID string `json:"id" bson:"_id" db:"id"`

	// ProductType is the lower-case catalog key, e.g. "hoodie".
	ProductType string `json:"product_type" bson:"product_type" db:"product_type"`

	// Name is the display name of the product.
	Name string `json:"name" bson:"name" db:"name"`

	// Price is the unit price in the store currency.
	Price decimal.Decimal `json:"price" bson:"price" db:"price"`

	// Description is free-form marketing text.
	Description string `json:"description" bson:"description" db:"description"`

	// Sizes lists the orderable sizes. Empty means the product is one-size.
	Sizes []string `json:"sizes" bson:"sizes" db:"sizes"`

	// Category is the display grouping, e.g. "apparel".
	Category string `json:"category" bson:"category" db:"category"`

	// ImageURL optionally points at an uploaded product image.
	ImageURL *string `json:"image_url" bson:"image_url,omitempty" db:"image_url"`

	// IsActive reports whether the product takes part in the effective catalog.
	IsActive bool `json:"is_active" bson:"is_active" db:"is_active"`

	// CreatedAt is the timestamp when the product was stored.
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// HasSize reports whether size is one of the product's sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
