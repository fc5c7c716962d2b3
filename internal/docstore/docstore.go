// Package docstore implements the repositories on MongoDB.
package docstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/thesyncbridge/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	guardiansCollection     = "guardians"
	transmissionsCollection = "transmissions"
	commentsCollection      = "comments"
	productsCollection      = "products"
	ordersCollection        = "orders"

	connectTimeout = 10 * time.Second
)

// Open connects to MongoDB with the decimal-aware registry and verifies the
// connection.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, nil, errors.New("mongo url is required")
	}
	if strings.TrimSpace(cfg.DBName) == "" {
		return nil, nil, errors.New("mongo database name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetRegistry(Registry()))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(cfg.DBName), nil
}

// isDuplicateKeyErr reports a unique index violation.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// violatedIndex reports whether a duplicate key error came from the named index.
func violatedIndex(err error, index string) bool {
	return isDuplicateKeyErr(err) && strings.Contains(err.Error(), index)
}
