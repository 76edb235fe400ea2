// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"time"
)

// ProductRepository defines the persistence contract for catalog entries.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *Product) error

	// FindByID resolves a product by primary key. Returns apperr.NotFound
	// when the id does not exist.
	FindByID(ctx context.Context, id string) (*Product, error)

	// List returns a page of products, optionally filtered by category and
	// a free-text search over name and description, newest first.
	List(ctx context.Context, search, category string, limit, offset int) ([]Product, int, error)

	// Update persists the mutable catalog fields.
	Update(ctx context.Context, product *Product) error

	// Delete hard-deletes a product. Bag and wishlist rows referencing it
	// are left in place deliberately.
	Delete(ctx context.Context, id string) error
}

// BagRepository defines the persistence contract for shopping bags.
//
// # Concurrency
//
// Bag mutations are read-modify-write through Get + Replace with no
// optimistic concurrency token: concurrent mutations by the same user are
// last-write-wins.
type BagRepository interface {
	// Get returns the user's bag entries in insertion order. An empty bag
	// is ([]BagItem{}, nil), not an error.
	Get(ctx context.Context, userID string) ([]BagItem, error)

	// Replace overwrites the user's entire bag with the given entries.
	Replace(ctx context.Context, userID string, items []BagItem) error
}

// WishlistRepository defines the persistence contract for wishlists.
// Same read-modify-write model as [BagRepository].
type WishlistRepository interface {
	// Get returns the product ids on the user's wishlist in insertion order.
	Get(ctx context.Context, userID string) ([]string, error)

	// Replace overwrites the user's entire wishlist.
	Replace(ctx context.Context, userID string, productIDs []string) error
}

// ProductCache is the read-through cache in front of catalog lookups.
//
// A cache outage degrades to direct storage reads; it never fails a request.
type ProductCache interface {
	// Get returns the cached product, or (nil, nil) on a miss.
	Get(ctx context.Context, productID string) (*Product, error)

	// Set stores the product for the given TTL.
	Set(ctx context.Context, product *Product, ttl time.Duration) error

	// Invalidate drops the cached entry after a catalog mutation.
	Invalidate(ctx context.Context, productID string) error
}
