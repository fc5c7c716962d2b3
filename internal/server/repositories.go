package server

import (
	"context"
	"database/sql"

	"github.com/thesyncbridge/apiserver/config"
	"github.com/thesyncbridge/apiserver/internal/db"
	"github.com/thesyncbridge/apiserver/internal/docstore"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// repositories is one store backend seen through the service interfaces.
type repositories struct {
	guardians     services.GuardianRepository
	transmissions services.TransmissionRepository
	comments      services.CommentRepository
	products      services.ProductRepository
	orders        services.OrderRepository
	close         func(ctx context.Context) error
}

func openRepositories(ctx context.Context, cfg config.Config) (*repositories, error) {
	if cfg.Store == config.StorePostgres {
		conn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return postgresRepositories(conn), nil
	}

	client, database, err := docstore.Open(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := docstore.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return mongoRepositories(client, database), nil
}

func postgresRepositories(conn *sql.DB) *repositories {
	return &repositories{
		guardians:     store.NewGuardianRepository(conn),
		transmissions: store.NewTransmissionRepository(conn),
		comments:      store.NewCommentRepository(conn),
		products:      store.NewProductRepository(conn),
		orders:        store.NewOrderRepository(conn),
		close: func(context.Context) error {
			return conn.Close()
		},
	}
}

func mongoRepositories(client *mongo.Client, database *mongo.Database) *repositories {
	return &repositories{
		guardians:     docstore.NewGuardianRepository(database),
		transmissions: docstore.NewTransmissionRepository(database),
		comments:      docstore.NewCommentRepository(database),
		products:      docstore.NewProductRepository(database),
		orders:        docstore.NewOrderRepository(database),
		close:         client.Disconnect,
	}
}
