package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-commerce/internal/domain/order"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, user_id, status, total_amount, discount_amount, used_coupon_id, created_at, updated_at`

func (s *OrderStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	items, err := s.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (s *OrderStore) FindForUpdate(ctx context.Context, id string) (*order.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *OrderStore) FindByUserID(ctx context.Context, userID string, page, size int) ([]*order.Order, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		userID, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	out := make([]*order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := s.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

func (s *OrderStore) CountByUserID(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Save upserts the order row and rewrites its item rows in one transaction.
func (s *OrderStore) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			total_amount = EXCLUDED.total_amount,
			discount_amount = EXCLUDED.discount_amount,
			used_coupon_id = EXCLUDED.used_coupon_id,
			updated_at = EXCLUDED.updated_at`,
		o.ID, o.UserID, string(o.Status), o.TotalAmount, o.DiscountAmount, o.UsedCouponID, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return nil, fmt.Errorf("clear order items: %w", err)
	}
	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price)
			 VALUES ($1, $2, $3, $4)`,
			o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return nil, fmt.Errorf("save order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	return &cp, nil
}

func (s *OrderStore) loadItems(ctx context.Context, orderID string) ([]order.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, quantity, price FROM order_items
		 WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]order.Item, 0)
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var o order.Order
	var status string
	err := row.Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.DiscountAmount, &o.UsedCouponID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = order.Status(status)
	return &o, nil
}
