package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/domain/product"
)

func TestProductStore_ReturnsCopies(t *testing.T) {
	store := NewProductStore()
	ctx := context.Background()

	p, err := product.New("prod-1", "Keyboard", "", 5000, 10)
	require.NoError(t, err)
	_, err = store.Save(ctx, p)
	require.NoError(t, err)

	// Mutating what Save and FindByID hand back must not leak into the store.
	p.StockQuantity = 0

	got, err := store.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)

	got.StockQuantity = 1
	again, err := store.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, again.StockQuantity)
}

func TestProductStore_FindAllSearch(t *testing.T) {
	store := NewProductStore()
	ctx := context.Background()

	for _, name := range []string{"Keyboard", "Mouse", "Keycap set"} {
		p, err := product.New("id-"+name, name, "", 100, 1)
		require.NoError(t, err)
		_, err = store.Save(ctx, p)
		require.NoError(t, err)
	}

	matched, err := store.FindAll(ctx, 1, 20, "key")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "search is a case-insensitive name substring")

	n, err := store.Count(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOrderStore_CopiesItems(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	o, err := order.New("order-1", "user-1", []order.Item{{ProductID: "prod-1", Quantity: 1, Price: 100}})
	require.NoError(t, err)
	_, err = store.Save(ctx, o)
	require.NoError(t, err)

	got, err := store.FindByID(ctx, "order-1")
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := store.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestOrderStore_FindByUserIDPagination(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		o, err := order.New(orderID(i), "user-1", []order.Item{{ProductID: "prod-1", Quantity: 1, Price: 100}})
		require.NoError(t, err)
		_, err = store.Save(ctx, o)
		require.NoError(t, err)
	}

	page, err := store.FindByUserID(ctx, "user-1", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	last, err := store.FindByUserID(ctx, "user-1", 3, 2)
	require.NoError(t, err)
	assert.Len(t, last, 1)

	none, err := store.FindByUserID(ctx, "user-2", 1, 2)
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := store.CountByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func orderID(n int) string {
	return string(rune('a'+n)) + "-order"
}
