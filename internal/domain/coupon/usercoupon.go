package coupon

import (
	"errors"
	"time"
)

var (
	ErrUserCouponNotFound = errors.New("user coupon not found")
	ErrCouponAlreadyUsed  = errors.New("coupon has already been used")
	ErrCouponExpired      = errors.New("coupon has expired")
)

// UserCoupon is one issued unit of a coupon's quota, bound to a user. It is
// mutated exactly once, by Use, which binds it to an order.
type UserCoupon struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	CouponID  string     `json:"coupon_id"`
	OrderID   string     `json:"order_id,omitempty"`
	IsUsed    bool       `json:"is_used"`
	IssuedAt  time.Time  `json:"issued_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiredAt time.Time  `json:"expired_at"`
}

func NewUserCoupon(id, userID, couponID string, issuedAt, expiredAt time.Time) (*UserCoupon, error) {
	if id == "" || userID == "" || couponID == "" {
		return nil, ErrInvalidCoupon
	}
	if issuedAt.After(expiredAt) {
		return nil, ErrInvalidCoupon
	}
	return &UserCoupon{
		ID:        id,
		UserID:    userID,
		CouponID:  couponID,
		IssuedAt:  issuedAt,
		ExpiredAt: expiredAt,
	}, nil
}

// Use marks the coupon as spent against an order. A used or expired coupon
// cannot be used again.
func (uc *UserCoupon) Use(orderID string, now time.Time) error {
	if orderID == "" {
		return ErrInvalidCoupon
	}
	if uc.IsUsed {
		return ErrCouponAlreadyUsed
	}
	if uc.IsExpired(now) {
		return ErrCouponExpired
	}
	uc.IsUsed = true
	uc.UsedAt = &now
	uc.OrderID = orderID
	return nil
}

func (uc *UserCoupon) CanUse(now time.Time) bool {
	return !uc.IsUsed && !uc.IsExpired(now)
}

func (uc *UserCoupon) IsExpired(now time.Time) bool {
	return now.After(uc.ExpiredAt)
}
