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

type orderFixture struct {
	svc    *OrderService
	repo   *fakeOrderRepo
	events *recordingPublisher
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	guardians := &fakeGuardianRepo{}
	guardianSvc, _ := newGuardianService(guardians, true)
	_, _, err := guardianSvc.Register(context.Background(), "alice@example.com", "")
	require.NoError(t, err)

	repo := &fakeOrderRepo{}
	events := &recordingPublisher{}
	return orderFixture{
		svc:    NewOrderService(repo, guardians, NewMerchandiseService(&fakeProductRepo{}), events),
		repo:   repo,
		events: events,
	}
}

func TestOrderCreateComputesTotals(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.Create(context.Background(), OrderRequest{
		ScrollID: "sb-0001",
		Items: []OrderLine{
			{ProductType: "Hoodie", Size: "l", Quantity: 2},
			{ProductType: "hat", Quantity: 1},
		},
		ShippingName: " Alice ",
		Notes:        "leave at door",
	})
	require.NoError(t, err)

	assert.Equal(t, "SB-0001", order.ScrollID)
	assert.Equal(t, "alice@example.com", order.Email)
	assert.Equal(t, types.OrderPending, order.Status)
	assert.Equal(t, "Alice", order.ShippingName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "hoodie", order.Items[0].ProductType)
	assert.Equal(t, "L", order.Items[0].Size)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(65)))
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(130)))
	assert.True(t, order.Items[1].Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, []string{EventOrderCreated}, f.events.eventTypes())
}

func TestOrderCreateUsesSuppliedEmail(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.Create(context.Background(), OrderRequest{
		ScrollID: "SB-0001",
		Email:    "Shipping@Example.com",
		Items:    []OrderLine{{ProductType: "hat", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "shipping@example.com", order.Email)
}

func TestOrderCreateIsAllOrNothing(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		lines []OrderLine
		field string
	}{
		{"no items", nil, "items"},
		{"unknown product", []OrderLine{{ProductType: "hat", Quantity: 1}, {ProductType: "scarf", Quantity: 1}}, "product_type"},
		{"zero quantity", []OrderLine{{ProductType: "hat", Quantity: 0}}, "quantity"},
		{"quantity too large", []OrderLine{{ProductType: "hat", Quantity: 100}}, "quantity"},
		{"missing size", []OrderLine{{ProductType: "shirt", Quantity: 1}}, "size"},
		{"unknown size", []OrderLine{{ProductType: "shirt", Size: "XXXL", Quantity: 1}}, "size"},
		{"size on one-size product", []OrderLine{{ProductType: "hat", Size: "M", Quantity: 1}}, "size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, OrderRequest{ScrollID: "SB-0001", Items: tt.lines})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.events.eventTypes())

	_, err := f.svc.Create(ctx, OrderRequest{ScrollID: "SB-0404", Items: []OrderLine{{ProductType: "hat", Quantity: 1}}})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrderStatusAndListing(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		order, err := f.svc.Create(ctx, OrderRequest{ScrollID: "SB-0001", Items: []OrderLine{{ProductType: "hat", Quantity: i + 1}}})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	updated, err := f.svc.UpdateStatus(ctx, ids[0], " Shipped ")
	require.NoError(t, err)
	assert.Equal(t, types.OrderShipped, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, ids[0], "lost")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.UpdateStatus(ctx, "missing", types.OrderCancelled)
	assert.ErrorIs(t, err, store.ErrNotFound)

	page, total, err := f.svc.List(ctx, OrderFilter{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)

	shipped, total, err := f.svc.List(ctx, OrderFilter{Status: types.OrderShipped, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, ids[0], shipped[0].ID)

	_, _, err = f.svc.List(ctx, OrderFilter{Status: "lost"})
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, f.svc.Delete(ctx, ids[1]))
	_, err = f.svc.Get(ctx, ids[1])
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Contains(t, f.events.eventTypes(), EventOrderStatusChanged)
}
