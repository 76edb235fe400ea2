// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBagRepository implements [BagRepository] using pgx.
type PostgresBagRepository struct {
	pool *pgxpool.Pool
}

// NewBagRepository creates a new PostgreSQL implementation of [BagRepository].
func NewBagRepository(pool *pgxpool.Pool) *PostgresBagRepository {
	return &PostgresBagRepository{pool: pool}
}

/*
Get returns the user's bag entries in insertion order.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []BagItem: Bag entries (empty slice for an empty bag)
  - error: Execution errors
*/
func (repository *PostgresBagRepository) Get(ctx context.Context, userID string) ([]BagItem, error) {
	const query = `
		SELECT productid, quantity
		FROM users.bag_item
		WHERE userid = $1
		ORDER BY position`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_bag_repo_get_failed: %w", err)
	}
	defer rows.Close()

	items := []BagItem{}
	for rows.Next() {
		var item BagItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("postgres_bag_repo_get_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_bag_repo_get_rows_failed: %w", err)
	}

	return items, nil
}

/*
Replace overwrites the user's entire bag with the given entries.

Description: Delete-then-insert inside one transaction, preserving the
service's read-modify-write (last-write-wins) semantics while keeping the
bag internally consistent.

Parameters:
  - ctx: context.Context
  - userID: string
  - items: []BagItem

Returns:
  - error: Transaction failures
*/
func (repository *PostgresBagRepository) Replace(ctx context.Context, userID string, items []BagItem) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_bag_repo_replace_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	if _, err := transaction.Exec(ctx, "DELETE FROM users.bag_item WHERE userid = $1", userID); err != nil {
		return fmt.Errorf("postgres_bag_repo_replace_clear_failed: %w", err)
	}

	const insert = `
		INSERT INTO users.bag_item (userid, productid, quantity, position)
		VALUES ($1, $2, $3, $4)`

	for position, item := range items {
		if _, err := transaction.Exec(ctx, insert, userID, item.ProductID, item.Quantity, position); err != nil {
			return fmt.Errorf("postgres_bag_repo_replace_insert_failed: %w", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_bag_repo_replace_commit_failed: %w", err)
	}

	return nil
}

// # Wishlist Repository

// PostgresWishlistRepository implements [WishlistRepository] using pgx.
type PostgresWishlistRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository creates a new PostgreSQL implementation of [WishlistRepository].
func NewWishlistRepository(pool *pgxpool.Pool) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{pool: pool}
}

/*
Get returns the product ids on the user's wishlist in insertion order.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []string: Product ids (empty slice for an empty wishlist)
  - error: Execution errors
*/
func (repository *PostgresWishlistRepository) Get(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT productid
		FROM users.wishlist_item
		WHERE userid = $1
		ORDER BY position`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_wishlist_repo_get_failed: %w", err)
	}
	defer rows.Close()

	productIDs := []string{}
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("postgres_wishlist_repo_get_scan_failed: %w", err)
		}
		productIDs = append(productIDs, productID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_wishlist_repo_get_rows_failed: %w", err)
	}

	return productIDs, nil
}

/*
Replace overwrites the user's entire wishlist.

Parameters:
  - ctx: context.Context
  - userID: string
  - productIDs: []string

Returns:
  - error: Transaction failures
*/
func (repository *PostgresWishlistRepository) Replace(ctx context.Context, userID string, productIDs []string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_wishlist_repo_replace_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	if _, err := transaction.Exec(ctx, "DELETE FROM users.wishlist_item WHERE userid = $1", userID); err != nil {
		return fmt.Errorf("postgres_wishlist_repo_replace_clear_failed: %w", err)
	}

	const insert = `
		INSERT INTO users.wishlist_item (userid, productid, position)
		VALUES ($1, $2, $3)`

	for position, productID := range productIDs {
		if _, err := transaction.Exec(ctx, insert, userID, productID, position); err != nil {
			return fmt.Errorf("postgres_wishlist_repo_replace_insert_failed: %w", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_wishlist_repo_replace_commit_failed: %w", err)
	}

	return nil
}
