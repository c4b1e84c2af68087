package coupon

import (
	"errors"
	"time"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrInvalidCoupon     = errors.New("invalid coupon")
	ErrCouponSoldOut     = errors.New("coupon is sold out")
	ErrNotIssuablePeriod = errors.New("coupon is outside its issuable period")
)

// Coupon is a quota-limited discount. IssuedQuantity only moves up, through
// Issue, and never past IssueQuantity. Callers must hold the coupon's lock
// while issuing.
type Coupon struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DiscountAmount int       `json:"discount_amount"`
	IssueQuantity  int       `json:"issue_quantity"`
	IssuedQuantity int       `json:"issued_quantity"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidTo        time.Time `json:"valid_to"`
}

func New(id, name string, discountAmount, issueQuantity int, validFrom, validTo time.Time) (*Coupon, error) {
	if id == "" || name == "" {
		return nil, ErrInvalidCoupon
	}
	if discountAmount <= 0 || issueQuantity <= 0 {
		return nil, ErrInvalidCoupon
	}
	if validFrom.After(validTo) {
		return nil, ErrInvalidCoupon
	}
	return &Coupon{
		ID:             id,
		Name:           name,
		DiscountAmount: discountAmount,
		IssueQuantity:  issueQuantity,
		ValidFrom:      validFrom,
		ValidTo:        validTo,
	}, nil
}

// Issue claims one unit of the quota. The period check and the quota check
// happen together with the increment so a concurrent caller cannot observe a
// stale remaining count.
func (c *Coupon) Issue(now time.Time) error {
	if !c.InIssuablePeriod(now) {
		return ErrNotIssuablePeriod
	}
	if !c.HasRemainingQuantity() {
		return ErrCouponSoldOut
	}
	c.IssuedQuantity++
	return nil
}

func (c *Coupon) HasRemainingQuantity() bool {
	return c.IssuedQuantity < c.IssueQuantity
}

func (c *Coupon) InIssuablePeriod(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidTo)
}
