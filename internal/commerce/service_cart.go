// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"errors"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/validate"
)

// # Shopping Bag

/*
AddToBag puts one unit of a product into the user's bag.

Description: If the product is already in the bag its quantity is
incremented, otherwise a fresh entry with quantity 1 is appended. The
operation is deliberately not idempotent: two add calls mean quantity 2.

Parameters:
  - ctx: context.Context
  - userID, productID: string

Returns:
  - []BagItem: The updated bag
  - error: apperr.NotFound when the product does not exist, or storage errors
*/
func (service *Service) AddToBag(ctx context.Context, userID, productID string) ([]BagItem, error) {

	// The product must exist at add time.
	if _, err := service.resolveProduct(ctx, productID); err != nil {
		return nil, err
	}

	items, err := service.bagRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for index := range items {
		if items[index].ProductID == productID {
			items[index].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, BagItem{ProductID: productID, Quantity: 1})
	}

	if err := service.bagRepository.Replace(ctx, userID, items); err != nil {
		return nil, err
	}

	return items, nil
}

/*
UpdateBagItem sets the exact quantity of a bag entry.

Parameters:
  - ctx: context.Context
  - userID, productID: string
  - quantity: int (must be >= 1)

Returns:
  - []BagItem: The updated bag
  - error: Validation (quantity < 1), apperr.NotFound (product not in bag),
    or storage errors
*/
func (service *Service) UpdateBagItem(ctx context.Context, userID, productID string, quantity int) ([]BagItem, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldQuantity, quantity < 1, "Quantity must be at least 1")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	items, err := service.bagRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for index := range items {
		if items[index].ProductID == productID {
			items[index].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("Product in bag")
	}

	if err := service.bagRepository.Replace(ctx, userID, items); err != nil {
		return nil, err
	}

	return items, nil
}

/*
RemoveFromBag deletes a product's entry from the bag.

Description: Idempotent. Removing a product that is not in the bag is a
successful no-op.

Parameters:
  - ctx: context.Context
  - userID, productID: string

Returns:
  - []BagItem: The updated bag
  - error: Storage errors only
*/
func (service *Service) RemoveFromBag(ctx context.Context, userID, productID string) ([]BagItem, error) {
	items, err := service.bagRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := items[:0]
	removed := false
	for _, item := range items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		remaining = append(remaining, item)
	}

	if !removed {
		return items, nil
	}

	if err := service.bagRepository.Replace(ctx, userID, remaining); err != nil {
		return nil, err
	}

	return remaining, nil
}

/*
ClearBag empties the bag unconditionally.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: Storage errors
*/
func (service *Service) ClearBag(ctx context.Context, userID string) error {
	return service.bagRepository.Replace(ctx, userID, nil)
}

/*
BagSnapshot resolves the bag against the live catalog for checkout display.

Description: Each entry is resolved through the product cache; entries whose
product has been deleted are silently skipped and left in storage. Total and
ActualPrice are the same sum of price x quantity over surviving entries, so
Discount is always zero — there is no pricing engine.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *BagSnapshot: Resolved bag totals
  - error: Storage errors
*/
func (service *Service) BagSnapshot(ctx context.Context, userID string) (*BagSnapshot, error) {
	items, err := service.bagRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &BagSnapshot{Items: []SnapshotItem{}}
	for _, item := range items {
		product, err := service.resolveProduct(ctx, item.ProductID)
		if err != nil {
			// Deleted products are skipped, never surfaced or cleaned up.
			if isNotFound(err) {
				continue
			}
			return nil, err
		}

		subtotal := product.Price * float64(item.Quantity)
		snapshot.Items = append(snapshot.Items, SnapshotItem{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		snapshot.Quantity += item.Quantity
		snapshot.Total += subtotal
		snapshot.ActualPrice += subtotal
	}

	snapshot.Discount = snapshot.ActualPrice - snapshot.Total
	return snapshot, nil
}

// isNotFound reports whether err is a NOT_FOUND application error.
func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == "NOT_FOUND"
}
