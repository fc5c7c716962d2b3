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

// TransmissionRepository handles persistence for transmissions.
type TransmissionRepository struct {
	c *mongo.Collection
}

func NewTransmissionRepository(db *mongo.Database) *TransmissionRepository {
	return &TransmissionRepository{c: db.Collection(transmissionsCollection)}
}

func (r *TransmissionRepository) Create(ctx context.Context, transmission types.Transmission) (types.Transmission, error) {
	transmission.ID = uuid.NewString()
	transmission.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.c.InsertOne(ctx, transmission); err != nil {
		return types.Transmission{}, err
	}
	return transmission, nil
}

func (r *TransmissionRepository) Get(ctx context.Context, id string) (types.Transmission, error) {
	var transmission types.Transmission
	if err := r.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&transmission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Transmission{}, store.ErrNotFound
		}
		return types.Transmission{}, err
	}
	return transmission, nil
}

func (r *TransmissionRepository) List(ctx context.Context, limit int) ([]types.Transmission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "day_number", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	transmissions := make([]types.Transmission, 0)
	if err := cur.All(ctx, &transmissions); err != nil {
		return nil, err
	}
	return transmissions, nil
}

func (r *TransmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
