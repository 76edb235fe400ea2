// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

// BagItem is one entry of a user's shopping bag.
//
// The invariant "at most one entry per product" is enforced both here (the
// service merges duplicates into the quantity) and by the storage primary
// key on (user_id, product_id).
type BagItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SnapshotItem is a bag entry resolved against the live catalog.
type SnapshotItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Subtotal float64  `json:"subtotal"`
}

// BagSnapshot is the checkout view of a bag.
//
// Entries whose product has been deleted since they were added are silently
// skipped. ActualPrice and Total are computed from the same resolved prices,
// so Discount is always zero until a pricing engine exists.
type BagSnapshot struct {
	Items       []SnapshotItem `json:"items"`
	Quantity    int            `json:"quantity"`
	Total       float64        `json:"total"`
	ActualPrice float64        `json:"actual_price"`
	Discount    float64        `json:"discount"`
}
