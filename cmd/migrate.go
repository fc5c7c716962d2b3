/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thesyncbridge/apiserver/config"
	"github.com/thesyncbridge/apiserver/internal/db"
	"github.com/thesyncbridge/apiserver/internal/docstore"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare the configured store (postgres schema or mongo indexes)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if cfg.Store == config.StoreMongo {
			return ensureMongoIndexes(cmd.Context(), cfg.Mongo)
		}
		return db.Migrate(cfg.Database, true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if cfg.Store == config.StoreMongo {
			return fmt.Errorf("migrate down is only supported for the %s store", config.StorePostgres)
		}
		return db.Migrate(cfg.Database, false)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func ensureMongoIndexes(ctx context.Context, cfg config.MongoConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, database, err := docstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect mongo failed: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := docstore.EnsureIndexes(ctx, database); err != nil {
		return fmt.Errorf("ensure indexes failed: %w", err)
	}
	return nil
}
