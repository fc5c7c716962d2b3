package docstore

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	guardianEmailIndex    = "uniq_guardians_email"
	guardianScrollIDIndex = "uniq_guardians_scroll_id"
	activeProductIndex    = "uniq_products_active_type"
)

// EnsureIndexes creates the indexes every repository relies on. It is
// idempotent and reports all failures together.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{guardiansCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(guardianEmailIndex),
			},
			{
				Keys:    bson.D{{Key: "scroll_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(guardianScrollIDIndex),
			},
			{
				Keys:    bson.D{{Key: "registered_at", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_guardians_registered_at"),
			},
		}},
		{transmissionsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "day_number", Value: -1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_transmissions_day_created"),
			},
		}},
		{commentsCollection, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "transmission_id", Value: 1},
					{Key: "is_deleted", Value: 1},
					{Key: "created_at", Value: 1},
				},
				Options: options.Index().SetName("idx_comments_transmission_deleted_created"),
			},
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_comments_created"),
			},
		}},
		{productsCollection, []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "product_type", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName(activeProductIndex).
					SetPartialFilterExpression(bson.D{{Key: "is_active", Value: true}}),
			},
		}},
		{ordersCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_orders_status_created"),
			},
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_orders_created"),
			},
		}},
	}

	var problems []string
	for _, set := range sets {
		coll := db.Collection(set.collection)
		for _, model := range set.models {
			name := *model.Options.Name
			if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
				if isOptionsConflictErr(err) {
					zap.L().Warn("index exists with different options",
						zap.String("collection", set.collection),
						zap.String("name", name),
						zap.Error(err))
					continue
				}
				problems = append(problems, set.collection+"("+name+"): "+err.Error())
				continue
			}
			zap.L().Debug("index ensured",
				zap.String("collection", set.collection),
				zap.String("name", name))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// isOptionsConflictErr matches servers that refuse to recreate an index whose
// key pattern exists under another name or with other options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "IndexOptionsConflict") || strings.Contains(s, "IndexKeySpecsConflict")
}
