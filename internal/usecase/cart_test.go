package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-commerce/internal/domain/cart"
	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/repository/memory"
)

func newTestCartUseCase(t *testing.T) (*CartUseCase, *memory.ProductStore) {
	t.Helper()
	products := memory.NewProductStore()
	return NewCartUseCase(memory.NewCartStore(), products), products
}

func TestAddToCart_Success(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 10)
	ctx := context.Background()

	item, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)

	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	items, err := uc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddToCart_MergesExistingLine(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 10)
	ctx := context.Background()

	first, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	second, err := uc.AddToCart(ctx, "user-1", "prod-1", 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the same product merges into one line")
	assert.Equal(t, 5, second.Quantity)

	items, err := uc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 3)

	item, err := uc.AddToCart(context.Background(), "user-1", "prod-1", 4)

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Nil(t, item)
}

func TestAddToCart_MergeExceedingStock(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 3)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	_, err = uc.AddToCart(ctx, "user-1", "prod-1", 2)
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	uc, _ := newTestCartUseCase(t)

	item, err := uc.AddToCart(context.Background(), "user-1", "missing", 1)

	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.Nil(t, item)
}

func TestUpdateQuantity_Success(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 10)
	ctx := context.Background()

	item, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	updated, err := uc.UpdateQuantity(ctx, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestUpdateQuantity_InsufficientStock(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 5)
	ctx := context.Background()

	item, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(ctx, item.ID, 6)
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
}

func TestRemoveFromCart(t *testing.T) {
	uc, products := newTestCartUseCase(t)
	seedProduct(t, products, "prod-1", 5000, 10)
	ctx := context.Background()

	item, err := uc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFromCart(ctx, item.ID))

	items, err := uc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, uc.RemoveFromCart(ctx, item.ID), cart.ErrCartItemNotFound)
}
