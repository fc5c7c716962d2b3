package docstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository handles persistence for stored catalog products.
type ProductRepository struct {
	c *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{c: db.Collection(productsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, product types.Product) (types.Product, error) {
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if product.Sizes == nil {
		product.Sizes = []string{}
	}

	if _, err := r.c.InsertOne(ctx, product); err != nil {
		if violatedIndex(err, activeProductIndex) {
			return types.Product{}, store.ErrDuplicateProduct
		}
		return types.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]types.Product, error) {
	return r.find(ctx, bson.D{{Key: "is_active", Value: true}})
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]types.Product, error) {
	return r.find(ctx, bson.D{})
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.D) ([]types.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := make([]types.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
