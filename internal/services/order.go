package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

const (
	minOrderQuantity = 1
	maxOrderQuantity = 99
)

// OrderFilter narrows an order listing.
type OrderFilter = store.OrderFilter

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order types.Order) (types.Order, error)
	Get(ctx context.Context, id string) (types.Order, error)
	// List returns one page of orders, newest first, and the total matching count.
	List(ctx context.Context, filter OrderFilter) ([]types.Order, int, error)
	UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderRequest is the customer-supplied part of an order; prices are resolved
// from the effective catalog.
type OrderRequest struct {
	ScrollID        string
	Email           string
	Items           []OrderLine
	ShippingName    string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string
	Notes           string
}

type OrderLine struct {
	ProductType string
	Size        string
	Quantity    int
}

// OrderService encapsulates order placement and fulfilment.
type OrderService struct {
	repo        OrderRepository
	guardians   GuardianRepository
	merchandise *MerchandiseService
	events      EventPublisher
}

func NewOrderService(
	repo OrderRepository,
	guardians GuardianRepository,
	merchandise *MerchandiseService,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		repo:        repo,
		guardians:   guardians,
		merchandise: merchandise,
		events:      publisherOrNoop(events),
	}
}

// Create prices every line against the effective catalog and stores the
// order only when all lines are valid.
func (s *OrderService) Create(ctx context.Context, req OrderRequest) (types.Order, error) {
	scrollID := normalizeScrollID(req.ScrollID)
	if scrollID == "" {
		return types.Order{}, invalid("scroll_id", "scroll_id is required")
	}
	if len(req.Items) == 0 {
		return types.Order{}, invalid("items", "at least one item is required")
	}

	guardian, err := s.guardians.GetByScrollID(ctx, scrollID)
	if err != nil {
		return types.Order{}, err
	}

	email := guardian.Email
	if strings.TrimSpace(req.Email) != "" {
		if email, err = normalizeEmail(req.Email); err != nil {
			return types.Order{}, err
		}
	}

	catalog, err := s.merchandise.Catalog(ctx)
	if err != nil {
		return types.Order{}, err
	}

	items := make([]types.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for i, line := range req.Items {
		item, err := priceLine(catalog, line)
		if err != nil {
			return types.Order{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		total = total.Add(item.Subtotal)
		items = append(items, item)
	}

	created, err := s.repo.Create(ctx, types.Order{
		ScrollID:        guardian.ScrollID,
		Email:           email,
		Items:           items,
		TotalAmount:     total,
		ShippingName:    strings.TrimSpace(req.ShippingName),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		ShippingCity:    strings.TrimSpace(req.ShippingCity),
		ShippingState:   strings.TrimSpace(req.ShippingState),
		ShippingZip:     strings.TrimSpace(req.ShippingZip),
		ShippingCountry: strings.TrimSpace(req.ShippingCountry),
		Notes:           strings.TrimSpace(req.Notes),
		Status:          types.OrderPending,
	})
	if err != nil {
		return types.Order{}, err
	}
	s.events.Publish(ctx, EventOrderCreated, created)
	return created, nil
}

func priceLine(catalog map[string]types.Product, line OrderLine) (types.OrderItem, error) {
	productType := strings.ToLower(strings.TrimSpace(line.ProductType))
	product, ok := catalog[productType]
	if !ok {
		return types.OrderItem{}, invalid("product_type", fmt.Sprintf("unknown product type %q", line.ProductType))
	}
	if line.Quantity < minOrderQuantity || line.Quantity > maxOrderQuantity {
		return types.OrderItem{}, invalid("quantity", "quantity must be between 1 and 99")
	}

	size := strings.ToUpper(strings.TrimSpace(line.Size))
	if len(product.Sizes) > 0 {
		if !product.HasSize(size) {
			return types.OrderItem{}, invalid("size", fmt.Sprintf("size must be one of %s", strings.Join(product.Sizes, ", ")))
		}
	} else if size != "" {
		return types.OrderItem{}, invalid("size", fmt.Sprintf("%s does not come in sizes", product.Name))
	}

	return types.OrderItem{
		ProductType: productType,
		Size:        size,
		Quantity:    line.Quantity,
		UnitPrice:   product.Price,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (types.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]types.Order, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, invalid("status", fmt.Sprintf("unknown order status %q", filter.Status))
	}
	return s.repo.List(ctx, filter)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error) {
	status = types.OrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return types.Order{}, invalid("status", fmt.Sprintf("unknown order status %q", status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return types.Order{}, err
	}
	s.events.Publish(ctx, EventOrderStatusChanged, updated)
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
