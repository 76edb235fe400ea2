// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import "context"

// # Wishlist

/*
AddToWishlist puts a product on the user's wishlist.

Description: Membership is checked before insertion, so the wishlist never
holds duplicates; re-adding an already wished product is a no-op.

Parameters:
  - ctx: context.Context
  - userID, productID: string

Returns:
  - []string: Updated wishlist product ids
  - error: apperr.NotFound when the product does not exist, or storage errors
*/
func (service *Service) AddToWishlist(ctx context.Context, userID, productID string) ([]string, error) {
	if _, err := service.resolveProduct(ctx, productID); err != nil {
		return nil, err
	}

	productIDs, err := service.wishlistRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range productIDs {
		if existing == productID {
			return productIDs, nil
		}
	}

	productIDs = append(productIDs, productID)
	if err := service.wishlistRepository.Replace(ctx, userID, productIDs); err != nil {
		return nil, err
	}

	return productIDs, nil
}

/*
RemoveFromWishlist takes a product off the wishlist.

Description: Idempotent, mirroring [Service.RemoveFromBag].

Parameters:
  - ctx: context.Context
  - userID, productID: string

Returns:
  - []string: Updated wishlist product ids
  - error: Storage errors only
*/
func (service *Service) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]string, error) {
	productIDs, err := service.wishlistRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := productIDs[:0]
	removed := false
	for _, existing := range productIDs {
		if existing == productID {
			removed = true
			continue
		}
		remaining = append(remaining, existing)
	}

	if !removed {
		return productIDs, nil
	}

	if err := service.wishlistRepository.Replace(ctx, userID, remaining); err != nil {
		return nil, err
	}

	return remaining, nil
}

/*
Wishlist resolves the wishlist against the live catalog.

Description: Like bag snapshots, entries whose product has been deleted are
silently skipped.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []Product: Resolved wishlist products
  - error: Storage errors
*/
func (service *Service) Wishlist(ctx context.Context, userID string) ([]Product, error) {
	productIDs, err := service.wishlistRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := []Product{}
	for _, productID := range productIDs {
		product, err := service.resolveProduct(ctx, productID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
	}

	return products, nil
}
