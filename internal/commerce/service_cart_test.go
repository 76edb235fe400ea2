// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// # Test Doubles

type fakeProductRepository struct {
	products map[string]*Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[string]*Product)}
}

func (repo *fakeProductRepository) Create(_ context.Context, product *Product) error {
	clone := *product
	repo.products[product.ID] = &clone
	return nil
}

func (repo *fakeProductRepository) FindByID(_ context.Context, id string) (*Product, error) {
	product, ok := repo.products[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	clone := *product
	return &clone, nil
}

func (repo *fakeProductRepository) List(_ context.Context, _, _ string, limit, offset int) ([]Product, int, error) {
	var all []Product
	for _, product := range repo.products {
		all = append(all, *product)
	}
	total := len(all)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repo *fakeProductRepository) Update(_ context.Context, product *Product) error {
	if _, ok := repo.products[product.ID]; !ok {
		return apperr.NotFound("Product")
	}
	clone := *product
	repo.products[product.ID] = &clone
	return nil
}

func (repo *fakeProductRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.products[id]; !ok {
		return apperr.NotFound("Product")
	}
	delete(repo.products, id)
	return nil
}

type fakeBagRepository struct {
	bags map[string][]BagItem
}

func (repo *fakeBagRepository) Get(_ context.Context, userID string) ([]BagItem, error) {
	return append([]BagItem{}, repo.bags[userID]...), nil
}

func (repo *fakeBagRepository) Replace(_ context.Context, userID string, items []BagItem) error {
	repo.bags[userID] = append([]BagItem{}, items...)
	return nil
}

type fakeWishlistRepository struct {
	lists map[string][]string
}

func (repo *fakeWishlistRepository) Get(_ context.Context, userID string) ([]string, error) {
	return append([]string{}, repo.lists[userID]...), nil
}

func (repo *fakeWishlistRepository) Replace(_ context.Context, userID string, productIDs []string) error {
	repo.lists[userID] = append([]string{}, productIDs...)
	return nil
}

// noopCache always misses, so service logic is exercised against storage.
type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string) (*Product, error) { return nil, nil }

func (noopCache) Set(_ context.Context, _ *Product, _ time.Duration) error { return nil }

func (noopCache) Invalidate(_ context.Context, _ string) error { return nil }

func newTestCommerce() (*Service, *fakeProductRepository) {
	products := newFakeProductRepository()
	service := NewService(
		products,
		&fakeBagRepository{bags: make(map[string][]BagItem)},
		&fakeWishlistRepository{lists: make(map[string][]string)},
		noopCache{},
	)
	return service, products
}

func seedProduct(t *testing.T, repo *fakeProductRepository, name string, price float64) string {
	t.Helper()

	id := uuidv7.New()
	require.NoError(t, repo.Create(context.Background(), &Product{
		ID: id, Name: name, Price: price, Stock: 10,
	}))
	return id
}

const testUser = "user-1"

// # Bag Semantics

func TestAddToBag_TwiceMergesIntoQuantityTwo(t *testing.T) {
	service, products := newTestCommerce()
	productID := seedProduct(t, products, "Linen Shirt", 49.90)

	_, err := service.AddToBag(context.Background(), testUser, productID)
	require.NoError(t, err)

	items, err := service.AddToBag(context.Background(), testUser, productID)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToBag_UnknownProduct(t *testing.T) {
	service, _ := newTestCommerce()

	_, err := service.AddToBag(context.Background(), testUser, "missing-product")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestUpdateBagItem_QuantityBelowOneRejected(t *testing.T) {
	service, products := newTestCommerce()
	productID := seedProduct(t, products, "Linen Shirt", 49.90)

	_, err := service.AddToBag(context.Background(), testUser, productID)
	require.NoError(t, err)

	_, err = service.UpdateBagItem(context.Background(), testUser, productID, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Removal is DELETE, never quantity 0.
	items, err := service.UpdateBagItem(context.Background(), testUser, productID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateBagItem_NotInBag(t *testing.T) {
	service, products := newTestCommerce()
	productID := seedProduct(t, products, "Linen Shirt", 49.90)

	_, err := service.UpdateBagItem(context.Background(), testUser, productID, 2)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRemoveFromBag_AbsentProductIsNoOp(t *testing.T) {
	service, products := newTestCommerce()
	inBag := seedProduct(t, products, "Linen Shirt", 49.90)

	_, err := service.AddToBag(context.Background(), testUser, inBag)
	require.NoError(t, err)

	items, err := service.RemoveFromBag(context.Background(), testUser, "never-added")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inBag, items[0].ProductID)
}

func TestBagSnapshot_SkipsDeletedProductsAndDiscountIsZero(t *testing.T) {
	service, products := newTestCommerce()
	kept := seedProduct(t, products, "Linen Shirt", 40.00)
	doomed := seedProduct(t, products, "Discontinued Hat", 15.00)

	_, err := service.AddToBag(context.Background(), testUser, kept)
	require.NoError(t, err)
	_, err = service.AddToBag(context.Background(), testUser, kept)
	require.NoError(t, err)
	_, err = service.AddToBag(context.Background(), testUser, doomed)
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(context.Background(), doomed))

	snapshot, err := service.BagSnapshot(context.Background(), testUser)
	require.NoError(t, err)

	// The deleted product vanishes from the snapshot but its row survives.
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, kept, snapshot.Items[0].Product.ID)
	assert.Equal(t, 2, snapshot.Quantity)
	assert.InDelta(t, 80.00, snapshot.Total, 0.001)
	assert.InDelta(t, 0.0, snapshot.Discount, 0.001)

	rawBag, err := service.bagRepository.Get(context.Background(), testUser)
	require.NoError(t, err)
	assert.Len(t, rawBag, 2)
}

func TestClearBag(t *testing.T) {
	service, products := newTestCommerce()
	productID := seedProduct(t, products, "Linen Shirt", 49.90)

	_, err := service.AddToBag(context.Background(), testUser, productID)
	require.NoError(t, err)

	require.NoError(t, service.ClearBag(context.Background(), testUser))

	snapshot, err := service.BagSnapshot(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.Quantity)
}

// # Wishlist Semantics

func TestWishlist_NoDuplicatesAndIdempotentRemove(t *testing.T) {
	service, products := newTestCommerce()
	productID := seedProduct(t, products, "Linen Shirt", 49.90)

	first, err := service.AddToWishlist(context.Background(), testUser, productID)
	require.NoError(t, err)
	second, err := service.AddToWishlist(context.Background(), testUser, productID)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)

	remaining, err := service.RemoveFromWishlist(context.Background(), testUser, "never-added")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	remaining, err = service.RemoveFromWishlist(context.Background(), testUser, productID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestWishlist_ResolvesProductsAndSkipsDeleted(t *testing.T) {
	service, products := newTestCommerce()
	kept := seedProduct(t, products, "Linen Shirt", 49.90)
	doomed := seedProduct(t, products, "Discontinued Hat", 15.00)

	_, err := service.AddToWishlist(context.Background(), testUser, kept)
	require.NoError(t, err)
	_, err = service.AddToWishlist(context.Background(), testUser, doomed)
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(context.Background(), doomed))

	resolved, err := service.Wishlist(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, kept, resolved[0].ID)
}
