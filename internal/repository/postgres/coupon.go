package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-commerce/internal/domain/coupon"
)

type CouponStore struct {
	db *sql.DB
}

func NewCouponStore(db *sql.DB) *CouponStore {
	return &CouponStore{db: db}
}

func (s *CouponStore) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, discount_amount, issue_quantity, issued_quantity, valid_from, valid_to
		 FROM coupons WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.DiscountAmount, &c.IssueQuantity, &c.IssuedQuantity, &c.ValidFrom, &c.ValidTo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, coupon.ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan coupon: %w", err)
	}
	return &c, nil
}

func (s *CouponStore) FindForUpdate(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.FindByID(ctx, id)
}

func (s *CouponStore) Save(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coupons (id, name, discount_amount, issue_quantity, issued_quantity, valid_from, valid_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			discount_amount = EXCLUDED.discount_amount,
			issue_quantity = EXCLUDED.issue_quantity,
			issued_quantity = EXCLUDED.issued_quantity,
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to`,
		c.ID, c.Name, c.DiscountAmount, c.IssueQuantity, c.IssuedQuantity, c.ValidFrom, c.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("save coupon: %w", err)
	}
	cp := *c
	return &cp, nil
}

func (s *CouponStore) FindUserCouponByID(ctx context.Context, id string) (*coupon.UserCoupon, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, coupon_id, order_id, is_used, issued_at, used_at, expired_at
		 FROM user_coupons WHERE id = $1`, id)
	return scanUserCoupon(row)
}

func (s *CouponStore) FindUserCouponsByUserID(ctx context.Context, userID string) ([]*coupon.UserCoupon, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, coupon_id, order_id, is_used, issued_at, used_at, expired_at
		 FROM user_coupons WHERE user_id = $1
		 ORDER BY issued_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user coupons: %w", err)
	}
	defer rows.Close()

	out := make([]*coupon.UserCoupon, 0)
	for rows.Next() {
		uc, err := scanUserCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, uc)
	}
	return out, rows.Err()
}

func (s *CouponStore) SaveUserCoupon(ctx context.Context, uc *coupon.UserCoupon) (*coupon.UserCoupon, error) {
	var usedAt sql.NullTime
	if uc.UsedAt != nil {
		usedAt = sql.NullTime{Time: *uc.UsedAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_coupons (id, user_id, coupon_id, order_id, is_used, issued_at, used_at, expired_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			is_used = EXCLUDED.is_used,
			used_at = EXCLUDED.used_at`,
		uc.ID, uc.UserID, uc.CouponID, uc.OrderID, uc.IsUsed, uc.IssuedAt, usedAt, uc.ExpiredAt)
	if err != nil {
		return nil, fmt.Errorf("save user coupon: %w", err)
	}
	cp := *uc
	return &cp, nil
}

func scanUserCoupon(row rowScanner) (*coupon.UserCoupon, error) {
	var uc coupon.UserCoupon
	var usedAt sql.NullTime
	err := row.Scan(&uc.ID, &uc.UserID, &uc.CouponID, &uc.OrderID, &uc.IsUsed, &uc.IssuedAt, &usedAt, &uc.ExpiredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, coupon.ErrUserCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user coupon: %w", err)
	}
	if usedAt.Valid {
		uc.UsedAt = &usedAt.Time
	}
	return &uc, nil
}
