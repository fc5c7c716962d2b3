package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a merchandise order placed for a guardian.
type Order struct {
	// ID is the unique identifier of the order (UUID v4).
	ID string `json:"id" bson:"_id" db:"id"`

	// ScrollID identifies the guardian the order belongs to.
	ScrollID string `json:"scroll_id" bson:"scroll_id" db:"scroll_id"`

	// Email is the contact address for the order.
	Email string `json:"email" bson:"email" db:"email"`

	// Items are the priced order lines.
	Items []OrderItem `json:"items" bson:"items" db:"items"`

	// TotalAmount is the sum of the item subtotals.
	TotalAmount decimal.Decimal `json:"total_amount" bson:"total_amount" db:"total_amount"`

	ShippingName    string `json:"shipping_name" bson:"shipping_name" db:"shipping_name"`
	ShippingAddress string `json:"shipping_address" bson:"shipping_address" db:"shipping_address"`
	ShippingCity    string `json:"shipping_city" bson:"shipping_city" db:"shipping_city"`
	ShippingState   string `json:"shipping_state" bson:"shipping_state" db:"shipping_state"`
	ShippingZip     string `json:"shipping_zip" bson:"shipping_zip" db:"shipping_zip"`
	ShippingCountry string `json:"shipping_country" bson:"shipping_country" db:"shipping_country"`

	// Notes is free text supplied by the customer.
	Notes string `json:"notes" bson:"notes" db:"notes"`

	// Status is the fulfilment state; only administrators change it.
	Status OrderStatus `json:"status" bson:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// OrderItem is one priced line of an order.
type OrderItem struct {
	ProductType string          `json:"product_type" bson:"product_type"`
	Size        string          `json:"size,omitempty" bson:"size,omitempty"`
	Quantity    int             `json:"quantity" bson:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" bson:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal" bson:"subtotal"`
}
