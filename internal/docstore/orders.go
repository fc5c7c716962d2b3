package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository handles persistence for orders.
type OrderRepository struct {
	c *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{c: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, order types.Order) (types.Order, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.c.InsertOne(ctx, order); err != nil {
		return types.Order{}, err
	}
	return order, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (types.Order, error) {
	var order types.Order
	if err := r.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Order{}, store.ErrNotFound
		}
		return types.Order{}, err
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter store.OrderFilter) ([]types.Order, int, error) {
	query := bson.D{}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}

	total, err := r.c.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(max(filter.Offset, 0)))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cur, err := r.c.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	orders := make([]types.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, int(total), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order types.Order
	if err := r.c.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Order{}, store.ErrNotFound
		}
		return types.Order{}, err
	}
	return order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
