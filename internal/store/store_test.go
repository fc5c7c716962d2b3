package store_test

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesyncbridge/apiserver/config"
	"github.com/thesyncbridge/apiserver/internal/db"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

// setupTestDB migrates the database named by PG_TEST_* and empties every table.
// Tests are skipped when PG_TEST_HOST is unset.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("PG_TEST_HOST")
	if host == "" {
		t.Skip("PG_TEST_HOST not set")
	}
	port, err := strconv.Atoi(os.Getenv("PG_TEST_PORT"))
	if err != nil {
		port = 5432
	}
	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     os.Getenv("PG_TEST_USER"),
		Password: os.Getenv("PG_TEST_PASSWORD"),
		DBName:   os.Getenv("PG_TEST_DB"),
	}

	require.NoError(t, db.Migrate(cfg, true))
	conn, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)

	_, err = conn.Exec(`TRUNCATE guardians, transmissions, comments, products, orders`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestGuardianRepository(t *testing.T) {
	conn := setupTestDB(t)
	repo := store.NewGuardianRepository(conn)
	ctx := context.Background()

	alice, err := repo.Create(ctx, types.Guardian{Email: "alice@example.com", ScrollID: "SB-0001", IsCertified: true})
	require.NoError(t, err)
	assert.NotEmpty(t, alice.ID)

	_, err = repo.Create(ctx, types.Guardian{Email: "bob@example.com", ScrollID: "SB-0001"})
	assert.ErrorIs(t, err, store.ErrDuplicateScrollID)

	_, err = repo.Create(ctx, types.Guardian{Email: "alice@example.com", ScrollID: "SB-0002"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	bob, err := repo.Create(ctx, types.Guardian{Email: "bob@example.com", ScrollID: "SB-0002", PasswordHash: "hash"})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	found, err := repo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = repo.GetByScrollID(ctx, "SB-9999")
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SB-0001", all[0].ScrollID)
}

func TestTransmissionAndCommentRepositories(t *testing.T) {
	conn := setupTestDB(t)
	transmissions := store.NewTransmissionRepository(conn)
	comments := store.NewCommentRepository(conn)
	ctx := context.Background()

	video := "https://example.com/v"
	day1, err := transmissions.Create(ctx, types.Transmission{Title: "one", Description: "d", DayNumber: 1})
	require.NoError(t, err)
	day5, err := transmissions.Create(ctx, types.Transmission{Title: "five", Description: "d", DayNumber: 5, VideoURL: &video})
	require.NoError(t, err)

	listed, err := transmissions.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, day5.ID, listed[0].ID)
	require.NotNil(t, listed[0].VideoURL)
	assert.Nil(t, listed[1].VideoURL)

	root, err := comments.Create(ctx, types.Comment{TransmissionID: day1.ID, ScrollID: "SB-0001", Content: "hello"})
	require.NoError(t, err)
	reply, err := comments.Create(ctx, types.Comment{TransmissionID: day1.ID, ScrollID: "SB-0002", Content: "hi", ParentID: &root.ID})
	require.NoError(t, err)

	require.NoError(t, comments.SoftDelete(ctx, root.ID))
	visible, err := comments.ListForTransmission(ctx, day1.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, reply.ID, visible[0].ID)
	require.NotNil(t, visible[0].ParentID)
	assert.Equal(t, root.ID, *visible[0].ParentID)

	all, err := comments.ListAll(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, comments.SoftDelete(ctx, "missing"), store.ErrNotFound)
	assert.ErrorIs(t, transmissions.Delete(ctx, "missing"), store.ErrNotFound)
	require.NoError(t, transmissions.Delete(ctx, day5.ID))
	_, err = transmissions.Get(ctx, day5.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductRepositoryActiveTypeIsUnique(t *testing.T) {
	conn := setupTestDB(t)
	repo := store.NewProductRepository(conn)
	ctx := context.Background()

	mug, err := repo.Create(ctx, types.Product{ProductType: "mug", Name: "Mug", Price: decimal.RequireFromString("12.50"), IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, types.Product{ProductType: "mug", Name: "Mug 2", Price: decimal.NewFromInt(1), IsActive: true})
	assert.ErrorIs(t, err, store.ErrDuplicateProduct)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].Price.Equal(decimal.RequireFromString("12.5")))
	assert.Empty(t, active[0].Sizes)

	require.NoError(t, repo.Delete(ctx, mug.ID))
	assert.ErrorIs(t, repo.Delete(ctx, mug.ID), store.ErrNotFound)
}

func TestOrderRepositoryPagingAndStatus(t *testing.T) {
	conn := setupTestDB(t)
	repo := store.NewOrderRepository(conn)
	ctx := context.Background()

	item := types.OrderItem{ProductType: "hat", Quantity: 2, UnitPrice: decimal.NewFromInt(30), Subtotal: decimal.NewFromInt(60)}
	var ids []string
	for i := 0; i < 3; i++ {
		order, err := repo.Create(ctx, types.Order{
			ScrollID:    "SB-0001",
			Email:       "alice@example.com",
			Items:       []types.OrderItem{item},
			TotalAmount: decimal.NewFromInt(60),
			Status:      types.OrderPending,
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	shipped, err := repo.UpdateStatus(ctx, ids[0], types.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, types.OrderShipped, shipped.Status)
	require.Len(t, shipped.Items, 1)
	assert.True(t, shipped.Items[0].Subtotal.Equal(decimal.NewFromInt(60)))

	page, total, err := repo.List(ctx, store.OrderFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	pending, total, err := repo.List(ctx, store.OrderFilter{Status: types.OrderPending, Offset: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, pending, 1)

	_, err = repo.UpdateStatus(ctx, "missing", types.OrderShipped)
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, ids[1]))
	_, err = repo.Get(ctx, ids[1])
	assert.ErrorIs(t, err, store.ErrNotFound)
}
