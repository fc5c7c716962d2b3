package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/types"
)

const orderColumns = `id, scroll_id, email, items, total_amount,
	shipping_name, shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
	notes, status, created_at, updated_at`

// OrderRepository handles persistence for merchandise orders.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order types.Order) (types.Order, error) {
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt

	items, err := json.Marshal(order.Items)
	if err != nil {
		return types.Order{}, err
	}

	const query = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.ScrollID,
		order.Email,
		string(items),
		order.TotalAmount,
		order.ShippingName,
		order.ShippingAddress,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingZip,
		order.ShippingCountry,
		order.Notes,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	); err != nil {
		return types.Order{}, err
	}
	return order, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (types.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Order{}, ErrNotFound
		}
		return types.Order{}, err
	}
	return order, nil
}

// List returns one page of orders, newest first, with the total count of matching orders.
func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]types.Order, int, error) {
	where := ""
	args := []any{}
	if filter.Status != "" {
		where = "WHERE status = $1"
		args = append(args, filter.Status)
	}

	var total int
	countQuery := "SELECT COUNT(1) FROM orders " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC OFFSET $%d",
		orderColumns, where, len(args)+1,
	)
	args = append(args, filter.Offset)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]types.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) (types.Order, error) {
	const query = `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id, status, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Order{}, ErrNotFound
		}
		return types.Order{}, err
	}
	return order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, `DELETE FROM orders WHERE id = $1`, id)
}

func scanOrder(row rowScanner) (types.Order, error) {
	var (
		order types.Order
		items []byte
	)
	if err := row.Scan(
		&order.ID,
		&order.ScrollID,
		&order.Email,
		&items,
		&order.TotalAmount,
		&order.ShippingName,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingZip,
		&order.ShippingCountry,
		&order.Notes,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return types.Order{}, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return types.Order{}, fmt.Errorf("decode order items: %w", err)
	}
	return order, nil
}
