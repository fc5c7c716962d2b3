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

// GuardianRepository handles persistence for guardians.
type GuardianRepository struct {
	c *mongo.Collection
}

func NewGuardianRepository(db *mongo.Database) *GuardianRepository {
	return &GuardianRepository{c: db.Collection(guardiansCollection)}
}

func (r *GuardianRepository) Count(ctx context.Context) (int64, error) {
	return r.c.CountDocuments(ctx, bson.D{})
}

func (r *GuardianRepository) Create(ctx context.Context, guardian types.Guardian) (types.Guardian, error) {
	guardian.ID = uuid.NewString()
	guardian.RegisteredAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.c.InsertOne(ctx, guardian); err != nil {
		switch {
		case violatedIndex(err, guardianScrollIDIndex):
			return types.Guardian{}, store.ErrDuplicateScrollID
		case violatedIndex(err, guardianEmailIndex):
			return types.Guardian{}, store.ErrDuplicateEmail
		}
		return types.Guardian{}, err
	}
	return guardian, nil
}

func (r *GuardianRepository) GetByEmail(ctx context.Context, email string) (types.Guardian, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *GuardianRepository) GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error) {
	return r.findOne(ctx, bson.D{{Key: "scroll_id", Value: scrollID}})
}

// List returns guardians in registration order.
func (r *GuardianRepository) List(ctx context.Context, limit int) ([]types.Guardian, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "registered_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	guardians := make([]types.Guardian, 0)
	if err := cur.All(ctx, &guardians); err != nil {
		return nil, err
	}
	return guardians, nil
}

func (r *GuardianRepository) findOne(ctx context.Context, filter bson.D) (types.Guardian, error) {
	var guardian types.Guardian
	if err := r.c.FindOne(ctx, filter).Decode(&guardian); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Guardian{}, store.ErrNotFound
		}
		return types.Guardian{}, err
	}
	return guardian, nil
}
