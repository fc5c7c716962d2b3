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

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	c *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{c: db.Collection(commentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = uuid.NewString()
	comment.IsDeleted = false
	comment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.c.InsertOne(ctx, comment); err != nil {
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Get(ctx context.Context, id string) (types.Comment, error) {
	var comment types.Comment
	if err := r.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Comment{}, store.ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error) {
	filter := bson.D{
		{Key: "transmission_id", Value: transmissionID},
		{Key: "is_deleted", Value: false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *CommentRepository) ListAll(ctx context.Context, limit int) ([]types.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.c.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_deleted", Value: true}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]types.Comment, error) {
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	comments := make([]types.Comment, 0)
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
