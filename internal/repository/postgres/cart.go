package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-commerce/internal/domain/cart"
)

type CartStore struct {
	db *sql.DB
}

func NewCartStore(db *sql.DB) *CartStore {
	return &CartStore{db: db}
}

const cartColumns = `id, user_id, product_id, quantity, added_at`

func (s *CartStore) FindItemByID(ctx context.Context, id string) (*cart.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE id = $1`, id)
	return scanCartItem(row)
}

func (s *CartStore) FindItemByUserAndProduct(ctx context.Context, userID, productID string) (*cart.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	return scanCartItem(row)
}

func (s *CartStore) FindItemsByUserID(ctx context.Context, userID string) ([]*cart.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items
		 WHERE user_id = $1 ORDER BY added_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	out := make([]*cart.Item, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *CartStore) SaveItem(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (`+cartColumns+`)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, product_id) DO UPDATE SET
			quantity = EXCLUDED.quantity`,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}
	cp := *item
	return &cp, nil
}

func (s *CartStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func scanCartItem(row rowScanner) (*cart.Item, error) {
	var item cart.Item
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cart.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cart item: %w", err)
	}
	return &item, nil
}
