package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/ec-commerce/internal/domain/coupon"
)

type CouponStore struct {
	mu          sync.RWMutex
	coupons     map[string]*coupon.Coupon
	userCoupons map[string]*coupon.UserCoupon
}

func NewCouponStore() *CouponStore {
	return &CouponStore{
		coupons:     make(map[string]*coupon.Coupon),
		userCoupons: make(map[string]*coupon.UserCoupon),
	}
}

func (s *CouponStore) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.coupons[id]
	if !ok {
		return nil, coupon.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *CouponStore) FindForUpdate(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.FindByID(ctx, id)
}

func (s *CouponStore) Save(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.coupons[c.ID] = &cp
	saved := cp
	return &saved, nil
}

func (s *CouponStore) FindUserCouponByID(ctx context.Context, id string) (*coupon.UserCoupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uc, ok := s.userCoupons[id]
	if !ok {
		return nil, coupon.ErrUserCouponNotFound
	}
	cp := *uc
	return &cp, nil
}

func (s *CouponStore) FindUserCouponsByUserID(ctx context.Context, userID string) ([]*coupon.UserCoupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*coupon.UserCoupon, 0)
	for _, uc := range s.userCoupons {
		if uc.UserID == userID {
			cp := *uc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].IssuedAt.Before(out[j].IssuedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *CouponStore) SaveUserCoupon(ctx context.Context, uc *coupon.UserCoupon) (*coupon.UserCoupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *uc
	s.userCoupons[uc.ID] = &cp
	saved := cp
	return &saved, nil
}
