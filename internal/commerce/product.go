// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import "time"

// # Field Identifiers (JSON + validation)

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldStock       = "stock"
	FieldQuantity    = "quantity"
	FieldProductID   = "product_id"
	FieldMessage     = "message"
)

// Product is a catalog entry.
//
// Products are hard-deleted; bag and wishlist rows referencing a deleted
// product are tolerated and skipped at snapshot time rather than cleaned up.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
