package store

import "github.com/thesyncbridge/apiserver/types"

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status types.OrderStatus
	Offset int
	Limit  int
}
