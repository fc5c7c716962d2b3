package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

// memory backs every repository interface with mutex-guarded slices.
type memory struct {
	mu            sync.Mutex
	guardians     []types.Guardian
	transmissions []types.Transmission
	comments      []types.Comment
	products      []types.Product
	orders        []types.Order
	tick          time.Time
}

func newMemory() *memory {
	return &memory{tick: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memory) next() time.Time {
	m.tick = m.tick.Add(time.Second)
	return m.tick
}

type guardianRepo struct{ *memory }

func (r guardianRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.guardians)), nil
}

func (r guardianRepo) Create(ctx context.Context, g types.Guardian) (types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.guardians {
		if existing.Email == g.Email {
			return types.Guardian{}, store.ErrDuplicateEmail
		}
		if existing.ScrollID == g.ScrollID {
			return types.Guardian{}, store.ErrDuplicateScrollID
		}
	}
	g.ID = uuid.NewString()
	g.RegisteredAt = r.next()
	r.guardians = append(r.guardians, g)
	return g, nil
}

func (r guardianRepo) find(match func(types.Guardian) bool) (types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guardians {
		if match(g) {
			return g, nil
		}
	}
	return types.Guardian{}, store.ErrNotFound
}

func (r guardianRepo) GetByEmail(ctx context.Context, email string) (types.Guardian, error) {
	return r.find(func(g types.Guardian) bool { return g.Email == email })
}

func (r guardianRepo) GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error) {
	return r.find(func(g types.Guardian) bool { return g.ScrollID == scrollID })
}

func (r guardianRepo) List(ctx context.Context, limit int) ([]types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Guardian{}, r.guardians...), nil
}

type transmissionRepo struct{ *memory }

func (r transmissionRepo) Create(ctx context.Context, t types.Transmission) (types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = r.next()
	r.transmissions = append(r.transmissions, t)
	return t, nil
}

func (r transmissionRepo) Get(ctx context.Context, id string) (types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transmissions {
		if t.ID == id {
			return t, nil
		}
	}
	return types.Transmission{}, store.ErrNotFound
}

func (r transmissionRepo) List(ctx context.Context, limit int) ([]types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]types.Transmission{}, r.transmissions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayNumber != out[j].DayNumber {
			return out[i].DayNumber > out[j].DayNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r transmissionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.transmissions {
		if t.ID == id {
			r.transmissions = append(r.transmissions[:i], r.transmissions[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type commentRepo struct{ *memory }

func (r commentRepo) Create(ctx context.Context, c types.Comment) (types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = r.next()
	r.comments = append(r.comments, c)
	return c, nil
}

func (r commentRepo) Get(ctx context.Context, id string) (types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Comment{}, store.ErrNotFound
}

func (r commentRepo) ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []types.Comment{}
	for _, c := range r.comments {
		if c.TransmissionID == transmissionID && !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r commentRepo) ListAll(ctx context.Context, limit int) ([]types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []types.Comment{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		out = append(out, r.comments[i])
	}
	return out, nil
}

func (r commentRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].IsDeleted = true
			return nil
		}
	}
	return store.ErrNotFound
}

type productRepo struct{ *memory }

func (r productRepo) Create(ctx context.Context, p types.Product) (types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.IsActive && existing.ProductType == p.ProductType {
			return types.Product{}, store.ErrDuplicateProduct
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = r.next()
	r.products = append(r.products, p)
	return p, nil
}

func (r productRepo) ListActive(ctx context.Context) ([]types.Product, error) {
	return r.ListAll(ctx)
}

func (r productRepo) ListAll(ctx context.Context) ([]types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Product{}, r.products...), nil
}

func (r productRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type orderRepo struct{ *memory }

func (r orderRepo) Create(ctx context.Context, o types.Order) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = r.next()
	o.UpdatedAt = o.CreatedAt
	r.orders = append(r.orders, o)
	return o, nil
}

func (r orderRepo) Get(ctx context.Context, id string) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return types.Order{}, store.ErrNotFound
}

func (r orderRepo) List(ctx context.Context, filter services.OrderFilter) ([]types.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []types.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if filter.Status == "" || r.orders[i].Status == filter.Status {
			matched = append(matched, r.orders[i])
		}
	}
	total := len(matched)
	if filter.Offset >= total {
		return []types.Order{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r orderRepo) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = r.next()
			return r.orders[i], nil
		}
	}
	return types.Order{}, store.ErrNotFound
}

func (r orderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
