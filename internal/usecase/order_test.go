package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-commerce/internal/domain/coupon"
	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/lock"
	"github.com/example/ec-commerce/internal/repository/memory"
)

type orderFixture struct {
	orders   *memory.OrderStore
	products *memory.ProductStore
	coupons  *memory.CouponStore
	uc       *OrderUseCase
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:   memory.NewOrderStore(),
		products: memory.NewProductStore(),
		coupons:  memory.NewCouponStore(),
	}
	f.uc = NewOrderUseCase(f.orders, f.products, f.coupons, lock.NewManager())
	return f
}

// ============================================
// CreateOrder Tests
// ============================================

func TestCreateOrder_Success(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	seedProduct(t, f.products, "prod-2", 3000, 5)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, 13000, o.TotalAmount)
	assert.Len(t, o.Items, 2)

	p1, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 8, p1.StockQuantity)
	assert.Equal(t, 2, p1.SoldQuantity)

	p2, err := f.products.FindByID(ctx, "prod-2")
	require.NoError(t, err)
	assert.Equal(t, 4, p2.StockQuantity)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newOrderFixture(t)

	o, err := f.uc.CreateOrder(context.Background(), "user-1", nil, "")

	assert.ErrorIs(t, err, order.ErrEmptyOrder)
	assert.Nil(t, o)
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	f := newOrderFixture(t)

	o, err := f.uc.CreateOrder(context.Background(), "user-1", []OrderItemInput{
		{ProductID: "missing", Quantity: 1},
	}, "")

	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.Nil(t, o)
}

func TestCreateOrder_OutOfStock(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 0)

	o, err := f.uc.CreateOrder(context.Background(), "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 1},
	}, "")

	assert.ErrorIs(t, err, product.ErrOutOfStock)
	assert.Nil(t, o)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 3)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 4},
	}, "")

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Nil(t, o)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.StockQuantity, "a failed order must not consume stock")
}

// A multi-item order that fails on the second product must restore the stock
// taken for the first.
func TestCreateOrder_CompensatesOnPartialFailure(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	seedProduct(t, f.products, "prod-2", 3000, 1)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 5},
	}, "")

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Nil(t, o)

	p1, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.StockQuantity, "stock taken for the first item must be restored")
	assert.Equal(t, 0, p1.SoldQuantity)

	p2, err := f.products.FindByID(ctx, "prod-2")
	require.NoError(t, err)
	assert.Equal(t, 1, p2.StockQuantity)
}

// 100 concurrent single-unit orders against a stock of 10: exactly 10 orders
// come into existence and stock lands on zero, never below.
func TestCreateOrder_ConcurrentStock(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	ctx := context.Background()

	const buyers = 100
	var succeeded, rejected int64

	var wg sync.WaitGroup
	wg.Add(buyers)
	for i := 0; i < buyers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := f.uc.CreateOrder(ctx, userID(n), []OrderItemInput{
				{ProductID: "prod-1", Quantity: 1},
			}, "")
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 10, succeeded)
	assert.EqualValues(t, 90, rejected)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, 10, p.SoldQuantity)
}

// Orders holding their items in opposite directions must not deadlock; the
// per-order ascending lock order makes the test terminate.
func TestCreateOrder_ConcurrentMultiItemNoDeadlock(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-a", 1000, 200)
	seedProduct(t, f.products, "prod-b", 2000, 200)
	ctx := context.Background()

	const buyers = 50
	var wg sync.WaitGroup
	wg.Add(buyers * 2)
	for i := 0; i < buyers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := f.uc.CreateOrder(ctx, userID(n), []OrderItemInput{
				{ProductID: "prod-a", Quantity: 1},
				{ProductID: "prod-b", Quantity: 1},
			}, "")
			assert.NoError(t, err)
		}(i)
		go func(n int) {
			defer wg.Done()
			_, err := f.uc.CreateOrder(ctx, userID(buyers+n), []OrderItemInput{
				{ProductID: "prod-b", Quantity: 1},
				{ProductID: "prod-a", Quantity: 1},
			}, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	pa, err := f.products.FindByID(ctx, "prod-a")
	require.NoError(t, err)
	assert.Equal(t, 100, pa.StockQuantity)

	pb, err := f.products.FindByID(ctx, "prod-b")
	require.NoError(t, err)
	assert.Equal(t, 100, pb.StockQuantity)
}

// ============================================
// Coupon Application Tests
// ============================================

func (f *orderFixture) seedIssuedCoupon(t *testing.T, userID, couponID string, discount int) {
	t.Helper()
	now := time.Now()
	ctx := context.Background()

	c, err := coupon.New(couponID, "Discount", discount, 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	_, err = f.coupons.Save(ctx, c)
	require.NoError(t, err)

	userCoupon, err := coupon.NewUserCoupon("uc-"+userID+"-"+couponID, userID, couponID, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = f.coupons.SaveUserCoupon(ctx, userCoupon)
	require.NoError(t, err)
}

func TestCreateOrder_WithCoupon(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	f.seedIssuedCoupon(t, "user-1", "coupon-1", 1000)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 2},
	}, "coupon-1")

	require.NoError(t, err)
	assert.Equal(t, 10000, o.TotalAmount)
	assert.Equal(t, 1000, o.DiscountAmount)
	assert.Equal(t, 9000, o.FinalAmount())
	assert.Equal(t, "coupon-1", o.UsedCouponID)

	coupons, err := f.coupons.FindUserCouponsByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.True(t, coupons[0].IsUsed)
	assert.Equal(t, o.ID, coupons[0].OrderID)
}

func TestCreateOrder_CouponDiscountCappedAtTotal(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 500, 10)
	f.seedIssuedCoupon(t, "user-1", "coupon-1", 1000)

	o, err := f.uc.CreateOrder(context.Background(), "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 1},
	}, "coupon-1")

	require.NoError(t, err)
	assert.Equal(t, 500, o.DiscountAmount)
	assert.Equal(t, 0, o.FinalAmount())
}

func TestCreateOrder_CouponNotIssued(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	f.seedIssuedCoupon(t, "someone-else", "coupon-1", 1000)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 1},
	}, "coupon-1")

	assert.ErrorIs(t, err, coupon.ErrUserCouponNotFound)
	assert.Nil(t, o)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity, "a failed coupon application must give the stock back")
}

// One issued coupon, two concurrent orders trying to spend it: exactly one
// order gets the discount.
func TestCreateOrder_CouponSingleUseUnderRace(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 100)
	f.seedIssuedCoupon(t, "user-1", "coupon-1", 1000)
	ctx := context.Background()

	const attempts = 10
	var succeeded, alreadyUsed int64

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
				{ProductID: "prod-1", Quantity: 1},
			}, "coupon-1")
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case assert.ErrorIs(t, err, coupon.ErrCouponAlreadyUsed):
				atomic.AddInt64(&alreadyUsed, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded)
	assert.EqualValues(t, attempts-1, alreadyUsed)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 99, p.StockQuantity, "failed attempts must return their stock")
}

// ============================================
// CancelOrder Tests
// ============================================

func TestCancelOrder_RestoresStock(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 3},
	}, "")
	require.NoError(t, err)

	cancelled, err := f.uc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)
	assert.Equal(t, 0, p.SoldQuantity)
}

func TestCancelOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t)

	o, err := f.uc.CancelOrder(context.Background(), "missing")

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Nil(t, o)
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 5000, 10)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
		{ProductID: "prod-1", Quantity: 1},
	}, "")
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	p, err := f.products.FindByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity, "a rejected cancel must not restore stock twice")
}

// ============================================
// Query Tests
// ============================================

func TestGetOrders_Pagination(t *testing.T) {
	f := newOrderFixture(t)
	seedProduct(t, f.products, "prod-1", 100, 100)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.uc.CreateOrder(ctx, "user-1", []OrderItemInput{
			{ProductID: "prod-1", Quantity: 1},
		}, "")
		require.NoError(t, err)
	}

	page1, err := f.uc.GetOrders(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := f.uc.GetOrders(ctx, "user-1", 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	total, err := f.uc.GetOrderCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}
