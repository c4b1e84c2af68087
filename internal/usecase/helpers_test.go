package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/domain/user"
	"github.com/example/ec-commerce/internal/repository/memory"
)

func userID(n int) string {
	return fmt.Sprintf("user-%d", n)
}

func seedProduct(t *testing.T, store *memory.ProductStore, id string, price, stock int) {
	t.Helper()
	p, err := product.New(id, "Product "+id, "", price, stock)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), p)
	require.NoError(t, err)
}

func seedUser(t *testing.T, store *memory.UserStore, id string, balance int) {
	t.Helper()
	u, err := user.New(id, id+"@example.com", "hashed-password")
	require.NoError(t, err)
	if balance > 0 {
		require.NoError(t, u.ChargePoint(balance))
	}
	_, err = store.Save(context.Background(), u)
	require.NoError(t, err)
}
