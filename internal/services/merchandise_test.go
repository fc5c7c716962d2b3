package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

func TestCatalogFallsBackToBuiltins(t *testing.T) {
	svc := NewMerchandiseService(&fakeProductRepo{})

	catalog, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	hoodie := catalog["hoodie"]
	assert.Equal(t, "Guardian Hoodie", hoodie.Name)
	assert.True(t, hoodie.Price.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, []string{"S", "M", "L", "XL", "XXL"}, hoodie.Sizes)
	assert.Equal(t, "apparel", hoodie.Category)

	hat := catalog["hat"]
	assert.Empty(t, hat.Sizes)
	assert.Equal(t, "accessories", hat.Category)

	// Callers may not mutate the shared fallback sizes.
	hoodie.Sizes[0] = "XS"
	again, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "S", again["hoodie"].Sizes[0])
}

func TestCatalogStoredProductsWin(t *testing.T) {
	ctx := context.Background()
	svc := NewMerchandiseService(&fakeProductRepo{})

	stored, err := svc.Create(ctx, types.Product{
		ProductType: " Hoodie ",
		Name:        "Limited Hoodie",
		Price:       decimal.RequireFromString("80.499"),
		Sizes:       []string{"M", " ", "L"},
		Category:    "apparel",
	})
	require.NoError(t, err)
	assert.Equal(t, "hoodie", stored.ProductType)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "80.5", stored.Price.String())
	assert.Equal(t, []string{"M", "L"}, stored.Sizes)

	_, err = svc.Create(ctx, types.Product{ProductType: "mug", Name: "Mug", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)

	catalog, err := svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 4)
	assert.Equal(t, "Limited Hoodie", catalog["hoodie"].Name)

	mug, err := svc.Get(ctx, "MUG")
	require.NoError(t, err)
	assert.Equal(t, "Mug", mug.Name)

	_, err = svc.Get(ctx, "scarf")
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := svc.ListStored(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mug", list[0].ProductType)

	require.NoError(t, svc.Delete(ctx, stored.ID))
	catalog, err = svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Guardian Hoodie", catalog["hoodie"].Name)
	assert.ErrorIs(t, svc.Delete(ctx, stored.ID), store.ErrNotFound)
}

func TestProductCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewMerchandiseService(&fakeProductRepo{})

	tests := []struct {
		name    string
		product types.Product
		field   string
	}{
		{"missing type", types.Product{Name: "Mug", Price: decimal.NewFromInt(1)}, "product_type"},
		{"missing name", types.Product{ProductType: "mug", Price: decimal.NewFromInt(1)}, "name"},
		{"zero price", types.Product{ProductType: "mug", Name: "Mug"}, "price"},
		{"negative price", types.Product{ProductType: "mug", Name: "Mug", Price: decimal.NewFromInt(-5)}, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.product)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := svc.Create(ctx, types.Product{ProductType: "mug", Name: "Mug", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, types.Product{ProductType: "MUG", Name: "Mug 2", Price: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, store.ErrDuplicateProduct)
}
