// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/dberr"
)

// PostgresProductRepository implements [ProductRepository] using pgx.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new PostgreSQL implementation of [ProductRepository].
func NewProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

const productColumns = `
	id, name, slug, description, price, category, imageurl, stock, createdat, updatedat`

/*
Create persists a new product record into the store.product table.

Parameters:
  - ctx: context.Context
  - product: *Product

Returns:
  - error: apperr.Conflict on duplicate slug, or storage failures
*/
func (repository *PostgresProductRepository) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO store.product (
			id, name, slug, description, price, category, imageurl, stock, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_product_repo_create")
	}

	return nil
}

/*
FindByID resolves a product by its primary key.

Parameters:
  - ctx: context.Context
  - id: string (UUIDv7)

Returns:
  - *Product: Hydrated catalog entry
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProductRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	query := "SELECT " + productColumns + " FROM store.product WHERE id = $1"

	product := &Product{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.ImageURL,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("postgres_product_repo_find_failed: %w", err)
	}

	return product, nil
}

/*
List returns a page of products, newest first.

Description: Optional category equality filter plus case-insensitive
substring search over name and description.

Parameters:
  - ctx: context.Context
  - search, category: string (either may be empty)
  - limit, offset: int

Returns:
  - []Product: Matching page
  - int: Total match count across all pages
  - error: Execution errors
*/
func (repository *PostgresProductRepository) List(ctx context.Context, search, category string, limit, offset int) ([]Product, int, error) {
	const query = `
		SELECT ` + productColumns + `, count(*) OVER() AS totalcount
		FROM store.product
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY createdat DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(ctx, query, search, category, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var products []Product
	var total int
	for rows.Next() {
		var product Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.Price,
			&product.Category,
			&product.ImageURL,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_product_repo_list_scan_failed: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_rows_failed: %w", err)
	}

	return products, total, nil
}

/*
Update persists the mutable catalog fields.

Parameters:
  - ctx: context.Context
  - product: *Product

Returns:
  - error: apperr.NotFound when the id does not exist, or update failures
*/
func (repository *PostgresProductRepository) Update(ctx context.Context, product *Product) error {
	const query = `
		UPDATE store.product
		SET name = $2, slug = $3, description = $4, price = $5,
		    category = $6, imageurl = $7, stock = $8, updatedat = $9
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.Stock,
		product.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_product_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

/*
Delete hard-deletes a product.

Description: Bag and wishlist rows referencing the product are deliberately
left behind; snapshot resolution skips them.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM store.product WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_product_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}
