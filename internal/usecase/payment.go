package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/domain/user"
	"github.com/example/ec-commerce/internal/lock"
	"github.com/example/ec-commerce/internal/repository"
)

// PaymentCompleted is the record published after a successful payment.
type PaymentCompleted struct {
	OrderID          string    `json:"order_id"`
	UserID           string    `json:"user_id"`
	PaymentAmount    int       `json:"payment_amount"`
	RemainingBalance int       `json:"remaining_balance"`
	PaidAt           time.Time `json:"paid_at"`
}

// Notifier delivers a payment record to an external system. Delivery is
// best effort; the payment result does not depend on it.
type Notifier interface {
	PaymentCompleted(ctx context.Context, event PaymentCompleted) error
}

// OrderArchiver persists completed orders to cold storage, also best effort.
type OrderArchiver interface {
	Archive(ctx context.Context, o *order.Order) error
}

// PaymentResult is what a successful payment returns to the caller.
type PaymentResult struct {
	OrderID          string `json:"order_id"`
	UserID           string `json:"user_id"`
	PaymentAmount    int    `json:"payment_amount"`
	RemainingBalance int    `json:"remaining_balance"`
	NotificationSent bool   `json:"notification_sent"`
}

// PaymentUseCase charges balances and executes payments. Point movement
// happens under the account's key lock; the order's completion transition
// under the order's key lock.
type PaymentUseCase struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	locks    *lock.Manager
	notifier Notifier
	archiver OrderArchiver
}

func NewPaymentUseCase(
	users repository.UserRepository,
	orders repository.OrderRepository,
	locks *lock.Manager,
	notifier Notifier,
	archiver OrderArchiver,
) *PaymentUseCase {
	return &PaymentUseCase{
		users:    users,
		orders:   orders,
		locks:    locks,
		notifier: notifier,
		archiver: archiver,
	}
}

// GetBalance returns the user's current point balance.
func (uc *PaymentUseCase) GetBalance(ctx context.Context, userID string) (int, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.Point, nil
}

// ChargeBalance adds points to the user's account under the account lock.
func (uc *PaymentUseCase) ChargeBalance(ctx context.Context, userID string, amount int) (*user.User, error) {
	release := uc.locks.Acquire(accountKey(userID))
	defer release()

	u, err := uc.users.FindForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.ChargePoint(amount); err != nil {
		return nil, err
	}
	saved, err := uc.users.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}

// ExecutePayment deducts the order's final amount from the account and
// completes the order. The deduction and the status transition both happen
// while the account and order locks are held, so concurrent payments against
// one account serialize and the balance can never go negative.
//
// The external notification afterwards is best effort: a failure is logged
// and reported in the result, but the payment itself stands.
func (uc *PaymentUseCase) ExecutePayment(ctx context.Context, userID, orderID string) (*PaymentResult, error) {
	releaseAccount := uc.locks.Acquire(accountKey(userID))
	defer releaseAccount()
	releaseOrder := uc.locks.Acquire(orderKey(orderID))
	defer releaseOrder()

	u, err := uc.users.FindForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.FindForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Reject the transition before touching the balance, so a double payment
	// fails without deducting twice.
	if !o.CanTransitionTo(order.StatusCompleted) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", order.ErrInvalidStatus, o.Status, order.StatusCompleted)
	}

	paymentAmount := o.FinalAmount()
	if err := u.DeductPoint(paymentAmount); err != nil {
		return nil, err
	}
	if err := o.Complete(); err != nil {
		return nil, err
	}

	if _, err := uc.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	if _, err := uc.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	sent := uc.publishCompletion(ctx, u, o, paymentAmount)

	return &PaymentResult{
		OrderID:          orderID,
		UserID:           userID,
		PaymentAmount:    paymentAmount,
		RemainingBalance: u.Point,
		NotificationSent: sent,
	}, nil
}

// publishCompletion sends the payment record downstream and archives the
// order. Neither failure rolls back or fails the payment.
func (uc *PaymentUseCase) publishCompletion(ctx context.Context, u *user.User, o *order.Order, amount int) bool {
	sent := true
	if uc.notifier != nil {
		event := PaymentCompleted{
			OrderID:          o.ID,
			UserID:           u.ID,
			PaymentAmount:    amount,
			RemainingBalance: u.Point,
			PaidAt:           time.Now(),
		}
		if err := uc.notifier.PaymentCompleted(ctx, event); err != nil {
			log.Printf("[Payment] notification failed for order %s: %v", o.ID, err)
			sent = false
		}
	}
	if uc.archiver != nil {
		if err := uc.archiver.Archive(ctx, o); err != nil {
			log.Printf("[Payment] archive failed for order %s: %v", o.ID, err)
		}
	}
	return sent
}
