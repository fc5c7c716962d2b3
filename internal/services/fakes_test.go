package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

type fakeGuardianRepo struct {
	mu        sync.Mutex
	guardians []types.Guardian
	// collisions makes the next n Create calls fail with a scroll id conflict.
	collisions int
}

func (r *fakeGuardianRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.guardians)), nil
}

func (r *fakeGuardianRepo) Create(ctx context.Context, guardian types.Guardian) (types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collisions > 0 {
		r.collisions--
		return types.Guardian{}, store.ErrDuplicateScrollID
	}
	for _, g := range r.guardians {
		if g.Email == guardian.Email {
			return types.Guardian{}, store.ErrDuplicateEmail
		}
		if g.ScrollID == guardian.ScrollID {
			return types.Guardian{}, store.ErrDuplicateScrollID
		}
	}
	guardian.ID = uuid.NewString()
	guardian.RegisteredAt = time.Now().UTC()
	r.guardians = append(r.guardians, guardian)
	return guardian, nil
}

func (r *fakeGuardianRepo) GetByEmail(ctx context.Context, email string) (types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guardians {
		if g.Email == email {
			return g, nil
		}
	}
	return types.Guardian{}, store.ErrNotFound
}

func (r *fakeGuardianRepo) GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guardians {
		if g.ScrollID == scrollID {
			return g, nil
		}
	}
	return types.Guardian{}, store.ErrNotFound
}

func (r *fakeGuardianRepo) List(ctx context.Context, limit int) ([]types.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]types.Guardian(nil), r.guardians...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTransmissionRepo struct {
	mu            sync.Mutex
	transmissions map[string]types.Transmission
	clock         time.Time
}

func newFakeTransmissionRepo() *fakeTransmissionRepo {
	return &fakeTransmissionRepo{
		transmissions: map[string]types.Transmission{},
		clock:         time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeTransmissionRepo) Create(ctx context.Context, t types.Transmission) (types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Minute)
	t.ID = uuid.NewString()
	t.CreatedAt = r.clock
	r.transmissions[t.ID] = t
	return t, nil
}

func (r *fakeTransmissionRepo) Get(ctx context.Context, id string) (types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transmissions[id]
	if !ok {
		return types.Transmission{}, store.ErrNotFound
	}
	return t, nil
}

func (r *fakeTransmissionRepo) List(ctx context.Context, limit int) ([]types.Transmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Transmission, 0, len(r.transmissions))
	for _, t := range r.transmissions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
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

func (r *fakeTransmissionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transmissions[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.transmissions, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []types.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{clock: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, c types.Comment) (types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	c.ID = uuid.NewString()
	c.CreatedAt = r.clock
	r.comments = append(r.comments, c)
	return c, nil
}

func (r *fakeCommentRepo) Get(ctx context.Context, id string) (types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Comment{}, store.ErrNotFound
}

func (r *fakeCommentRepo) ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error) {
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

func (r *fakeCommentRepo) ListAll(ctx context.Context, limit int) ([]types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Comment, 0, len(r.comments))
	for i := len(r.comments) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.comments[i])
	}
	return out, nil
}

func (r *fakeCommentRepo) SoftDelete(ctx context.Context, id string) error {
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

type fakeProductRepo struct {
	mu       sync.Mutex
	products []types.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, p types.Product) (types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.IsActive && existing.ProductType == p.ProductType {
			return types.Product{}, store.ErrDuplicateProduct
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []types.Product{}
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		out = append(out, r.products[i])
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
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

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []types.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, o types.Order) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *fakeOrderRepo) Get(ctx context.Context, id string) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return types.Order{}, store.ErrNotFound
}

func (r *fakeOrderRepo) List(ctx context.Context, filter OrderFilter) ([]types.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []types.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if filter.Status == "" || r.orders[i].Status == filter.Status {
			matched = append(matched, r.orders[i])
		}
	}
	total := len(matched)
	if filter.Offset >= len(matched) {
		return []types.Order{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now().UTC()
			return r.orders[i], nil
		}
	}
	return types.Order{}, store.ErrNotFound
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
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

type recordedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
