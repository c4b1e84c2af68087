// Package repository defines the persistence ports consumed by the use cases.
//
// FindForUpdate is the lock-aware read: implementations backed by a
// transactional store take a row lock there, while the in-memory
// implementation relies on the caller already holding the key's lock from
// the lock manager.
package repository

import (
	"context"

	"github.com/example/ec-commerce/internal/domain/cart"
	"github.com/example/ec-commerce/internal/domain/coupon"
	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/domain/user"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindForUpdate(ctx context.Context, id string) (*product.Product, error)
	FindAll(ctx context.Context, page, size int, search string) ([]*product.Product, error)
	Count(ctx context.Context, search string) (int, error)
	FindTopSelling(ctx context.Context, limit int) ([]*product.Product, error)
	Save(ctx context.Context, p *product.Product) (*product.Product, error)
}

type CouponRepository interface {
	FindByID(ctx context.Context, id string) (*coupon.Coupon, error)
	FindForUpdate(ctx context.Context, id string) (*coupon.Coupon, error)
	Save(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error)

	FindUserCouponByID(ctx context.Context, id string) (*coupon.UserCoupon, error)
	FindUserCouponsByUserID(ctx context.Context, userID string) ([]*coupon.UserCoupon, error)
	SaveUserCoupon(ctx context.Context, uc *coupon.UserCoupon) (*coupon.UserCoupon, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*order.Order, error)
	FindForUpdate(ctx context.Context, id string) (*order.Order, error)
	FindByUserID(ctx context.Context, userID string, page, size int) ([]*order.Order, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	Save(ctx context.Context, o *order.Order) (*order.Order, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindForUpdate(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Save(ctx context.Context, u *user.User) (*user.User, error)
}

type CartRepository interface {
	FindItemByID(ctx context.Context, id string) (*cart.Item, error)
	FindItemsByUserID(ctx context.Context, userID string) ([]*cart.Item, error)
	FindItemByUserAndProduct(ctx context.Context, userID, productID string) (*cart.Item, error)
	SaveItem(ctx context.Context, item *cart.Item) (*cart.Item, error)
	DeleteItem(ctx context.Context, id string) error
}
