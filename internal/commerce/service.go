// Copyright (c) 2026 TrendHive. All rights reserved.

/*
Package commerce implements the shopping side of TrendHive: the product
catalog, the per-user shopping bag, and the wishlist.

Architecture:

  - Service: Orchestrates catalog CRUD and bag/wishlist reconciliation.
  - Repositories: PostgreSQL persistence for products, bag rows, wishlist rows.
  - Cache: A Redis read-through cache in front of catalog lookups, shared by
    the public catalog endpoints and bag snapshot resolution.

Bag and wishlist mutations are read-modify-write with no optimistic
concurrency token: concurrent mutations by the same user are last-write-wins.
*/
package commerce

import (
	"context"
	"log/slog"

	"github.com/trendhive/trendhive/internal/platform/ctxutil"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
	"github.com/trendhive/trendhive/pkg/slug"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// Service implements the commerce use cases.
type Service struct {
	productRepository  ProductRepository
	bagRepository      BagRepository
	wishlistRepository WishlistRepository
	productCache       ProductCache
}

// NewService constructs a new commerce [Service] with its dependencies.
func NewService(
	productRepo ProductRepository,
	bagRepo BagRepository,
	wishlistRepo WishlistRepository,
	cache ProductCache,
) *Service {
	return &Service{
		productRepository:  productRepo,
		bagRepository:      bagRepo,
		wishlistRepository: wishlistRepo,
		productCache:       cache,
	}
}

// # Catalog

// ProductInput holds the writable catalog fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
}

func (input ProductInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Custom(FieldPrice, input.Price < 0, "Price must not be negative").
		Custom(FieldStock, input.Stock < 0, "Stock must not be negative")
	return validator.Err()
}

/*
CreateProduct adds a new entry to the catalog.

Parameters:
  - ctx: context.Context
  - input: ProductInput

Returns:
  - *Product: Created entry with generated id and slug
  - error: Validation, Conflict (duplicate slug), or storage errors
*/
func (service *Service) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &Product{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}

	if err := service.productRepository.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

/*
GetProduct resolves a catalog entry, preferring the cache.

Parameters:
  - ctx: context.Context
  - productID: string

Returns:
  - *Product: Catalog entry
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	return service.resolveProduct(ctx, productID)
}

/*
ListProducts returns a catalog page with optional search and category filter.

Parameters:
  - ctx: context.Context
  - search, category: string
  - params: pagination.Params

Returns:
  - []Product, int: Page and total match count
  - error: Storage errors
*/
func (service *Service) ListProducts(ctx context.Context, search, category string, params pagination.Params) ([]Product, int, error) {
	return service.productRepository.List(ctx, search, category, params.Limit, params.Offset())
}

/*
UpdateProduct edits a catalog entry and invalidates its cache slot.

Parameters:
  - ctx: context.Context
  - productID: string
  - input: ProductInput

Returns:
  - *Product: Updated entry
  - error: Validation, apperr.NotFound, or storage errors
*/
func (service *Service) UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := service.productRepository.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Slug = slug.From(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.ImageURL = input.ImageURL
	product.Stock = input.Stock

	if err := service.productRepository.Update(ctx, product); err != nil {
		return nil, err
	}

	service.invalidateCache(ctx, productID)
	return product, nil
}

/*
DeleteProduct hard-deletes a catalog entry and invalidates its cache slot.

Description: Bag and wishlist rows referencing the product stay behind;
snapshot resolution skips them from now on.

Parameters:
  - ctx: context.Context
  - productID: string

Returns:
  - error: apperr.NotFound or storage errors
*/
func (service *Service) DeleteProduct(ctx context.Context, productID string) error {
	if err := service.productRepository.Delete(ctx, productID); err != nil {
		return err
	}

	service.invalidateCache(ctx, productID)
	return nil
}

// resolveProduct serves a catalog lookup through the read-through cache.
// Cache errors degrade to direct storage reads.
func (service *Service) resolveProduct(ctx context.Context, productID string) (*Product, error) {
	cached, err := service.productCache.Get(ctx, productID)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("product_cache_read_failed", slog.Any("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := service.productRepository.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := service.productCache.Set(ctx, product, ProductCacheTTL); err != nil {
		ctxutil.GetLogger(ctx).Warn("product_cache_write_failed", slog.Any("error", err))
	}

	return product, nil
}

// invalidateCache drops a product's cache slot, logging failures.
func (service *Service) invalidateCache(ctx context.Context, productID string) {
	if err := service.productCache.Invalidate(ctx, productID); err != nil {
		ctxutil.GetLogger(ctx).Warn("product_cache_invalidate_failed", slog.Any("error", err))
	}
}
