package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/types"
)

const (
	productActiveTypeConstraint = "products_active_type_key"

	productColumns = `id, product_type, name, price, description, sizes, category, image_url, is_active, created_at`
)

// ProductRepository handles persistence for stored catalog products.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product types.Product) (types.Product, error) {
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()
	if product.Sizes == nil {
		product.Sizes = []string{}
	}

	sizes, err := json.Marshal(product.Sizes)
	if err != nil {
		return types.Product{}, err
	}

	const query = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.ProductType,
		product.Name,
		product.Price,
		product.Description,
		string(sizes),
		product.Category,
		product.ImageURL,
		product.IsActive,
		product.CreatedAt,
	); err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == productActiveTypeConstraint {
			return types.Product{}, ErrDuplicateProduct
		}
		return types.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]types.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]types.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, `DELETE FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) list(ctx context.Context, query string) ([]types.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]types.Product, 0)
	for rows.Next() {
		var (
			product types.Product
			sizes   []byte
		)
		if err := rows.Scan(
			&product.ID,
			&product.ProductType,
			&product.Name,
			&product.Price,
			&product.Description,
			&sizes,
			&product.Category,
			&product.ImageURL,
			&product.IsActive,
			&product.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sizes, &product.Sizes); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
