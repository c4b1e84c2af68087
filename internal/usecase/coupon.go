package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-commerce/internal/domain/coupon"
	"github.com/example/ec-commerce/internal/lock"
	"github.com/example/ec-commerce/internal/repository"
)

// CouponUseCase issues quota-limited coupons. The quota check and the
// issued-count increment run as one step under the coupon's key lock; a
// check done outside the lock would be stale by the time the increment
// executed, which is exactly how over-issuing happens.
type CouponUseCase struct {
	coupons repository.CouponRepository
	locks   *lock.Manager
	now     func() time.Time
}

func NewCouponUseCase(coupons repository.CouponRepository, locks *lock.Manager) *CouponUseCase {
	return &CouponUseCase{coupons: coupons, locks: locks, now: time.Now}
}

// IssueCoupon claims one unit of the coupon's quota for the user. For N
// concurrent calls against a coupon with R remaining, exactly min(N, R)
// succeed; the rest fail with ErrCouponSoldOut.
func (uc *CouponUseCase) IssueCoupon(ctx context.Context, userID, couponID string) (*coupon.UserCoupon, error) {
	release := uc.locks.Acquire(couponKey(couponID))
	defer release()

	c, err := uc.coupons.FindForUpdate(ctx, couponID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := c.Issue(now); err != nil {
		return nil, err
	}
	if _, err := uc.coupons.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save coupon: %w", err)
	}

	userCoupon, err := coupon.NewUserCoupon(uuid.New().String(), userID, couponID, now, c.ValidTo)
	if err != nil {
		return nil, err
	}
	saved, err := uc.coupons.SaveUserCoupon(ctx, userCoupon)
	if err != nil {
		return nil, fmt.Errorf("save user coupon: %w", err)
	}
	return saved, nil
}

// GetUserCoupons lists the coupons issued to a user.
func (uc *CouponUseCase) GetUserCoupons(ctx context.Context, userID string) ([]*coupon.UserCoupon, error) {
	return uc.coupons.FindUserCouponsByUserID(ctx, userID)
}

func (uc *CouponUseCase) GetCoupon(ctx context.Context, couponID string) (*coupon.Coupon, error) {
	return uc.coupons.FindByID(ctx, couponID)
}
