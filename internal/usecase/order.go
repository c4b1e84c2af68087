package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-commerce/internal/domain/coupon"
	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/lock"
	"github.com/example/ec-commerce/internal/repository"
)

// OrderItemInput is one requested (product, quantity) line.
type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderUseCase creates orders and walks them through their lifecycle. Stock
// movement always happens under the product's key lock, and multi-item
// orders take product locks in ascending ID order, one at a time.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	coupons  repository.CouponRepository
	locks    *lock.Manager
}

func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	coupons repository.CouponRepository,
	locks *lock.Manager,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		products: products,
		coupons:  coupons,
		locks:    locks,
	}
}

// CreateOrder decrements stock for every line item and persists a pending
// order. Items are processed in ascending product ID order so two orders
// sharing two products can never deadlock, and at most one product lock is
// held at a time.
//
// If a later item fails, the stock already taken for earlier items is
// restored before the error is returned, so a failed order never leaks
// stock.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, items []OrderItemInput, couponID string) (*order.Order, error) {
	if len(items) == 0 {
		return nil, order.ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidOrder
		}
	}

	sorted := make([]OrderItemInput, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	orderItems := make([]order.Item, 0, len(sorted))
	decremented := make([]order.Item, 0, len(sorted))

	for _, item := range sorted {
		p, err := uc.decreaseStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			uc.compensate(ctx, decremented)
			return nil, err
		}
		line := order.Item{ProductID: p.ID, Quantity: item.Quantity, Price: p.Price}
		orderItems = append(orderItems, line)
		decremented = append(decremented, line)
	}

	o, err := order.New(uuid.New().String(), userID, orderItems)
	if err != nil {
		uc.compensate(ctx, decremented)
		return nil, err
	}

	if couponID != "" {
		if err := uc.applyCoupon(ctx, o, userID, couponID); err != nil {
			uc.compensate(ctx, decremented)
			return nil, err
		}
	}

	saved, err := uc.orders.Save(ctx, o)
	if err != nil {
		uc.compensate(ctx, decremented)
		return nil, fmt.Errorf("save order: %w", err)
	}
	return saved, nil
}

// decreaseStock runs the locked check-and-decrement for a single product.
func (uc *OrderUseCase) decreaseStock(ctx context.Context, productID string, quantity int) (p *productRecord, err error) {
	release := uc.locks.Acquire(productKey(productID))
	defer release()

	prod, err := uc.products.FindForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := prod.DecreaseStock(quantity); err != nil {
		return nil, err
	}
	saved, err := uc.products.Save(ctx, prod)
	if err != nil {
		return nil, fmt.Errorf("save product %s: %w", productID, err)
	}
	return &productRecord{ID: saved.ID, Price: saved.Price}, nil
}

// compensate restores stock taken by earlier items of a failed order.
func (uc *OrderUseCase) compensate(ctx context.Context, taken []order.Item) {
	for _, item := range taken {
		release := uc.locks.Acquire(productKey(item.ProductID))
		prod, err := uc.products.FindForUpdate(ctx, item.ProductID)
		if err == nil {
			if err := prod.IncreaseStock(item.Quantity); err == nil {
				_, err = uc.products.Save(ctx, prod)
			}
		}
		release()
		if err != nil {
			log.Printf("[Order] failed to restore %d units of product %s: %v", item.Quantity, item.ProductID, err)
		}
	}
}

// applyCoupon marks the user's issued coupon as used against the order and
// applies its discount, capped by the order total.
func (uc *OrderUseCase) applyCoupon(ctx context.Context, o *order.Order, userID, couponID string) error {
	c, err := uc.coupons.FindByID(ctx, couponID)
	if err != nil {
		return err
	}

	release := uc.locks.Acquire(userCouponKey(userID, couponID))
	defer release()

	userCoupon, err := uc.findIssuedCoupon(ctx, userID, couponID)
	if err != nil {
		return err
	}
	if err := userCoupon.Use(o.ID, time.Now()); err != nil {
		return err
	}

	discount := c.DiscountAmount
	if discount > o.TotalAmount {
		discount = o.TotalAmount
	}
	if err := o.ApplyDiscount(discount, couponID); err != nil {
		return err
	}

	if _, err := uc.coupons.SaveUserCoupon(ctx, userCoupon); err != nil {
		return fmt.Errorf("save user coupon: %w", err)
	}
	return nil
}

func (uc *OrderUseCase) findIssuedCoupon(ctx context.Context, userID, couponID string) (*coupon.UserCoupon, error) {
	issued, err := uc.coupons.FindUserCouponsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, userCoupon := range issued {
		if userCoupon.CouponID == couponID && !userCoupon.IsUsed {
			return userCoupon, nil
		}
	}
	for _, userCoupon := range issued {
		if userCoupon.CouponID == couponID {
			return userCoupon, nil
		}
	}
	return nil, coupon.ErrUserCouponNotFound
}

// CancelOrder voids a pending order and restores its stock.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID string) (*order.Order, error) {
	release := uc.locks.Acquire(orderKey(orderID))
	defer release()

	o, err := uc.orders.FindForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	saved, err := uc.orders.Save(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	uc.compensate(ctx, o.Items)
	return saved, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return uc.orders.FindByID(ctx, orderID)
}

func (uc *OrderUseCase) GetOrders(ctx context.Context, userID string, page, size int) ([]*order.Order, error) {
	return uc.orders.FindByUserID(ctx, userID, page, size)
}

func (uc *OrderUseCase) GetOrderCount(ctx context.Context, userID string) (int, error) {
	return uc.orders.CountByUserID(ctx, userID)
}

// productRecord is the slice of product state order creation needs after the
// lock is released.
type productRecord struct {
	ID    string
	Price int
}
