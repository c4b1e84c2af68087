package order

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order must have at least one item")
	ErrInvalidOrder   = errors.New("invalid order")
	ErrInvalidStatus  = errors.New("invalid order status transition")
	ErrInvalidDiscount = errors.New("discount cannot exceed the order total")
)

// validTransitions defines allowed state transitions. Completed and cancelled
// are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Item is one (product, quantity) line of an order. Price is the unit price
// captured at order time.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

type Order struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Items          []Item    `json:"items"`
	Status         Status    `json:"status"`
	TotalAmount    int       `json:"total_amount"`
	DiscountAmount int       `json:"discount_amount"`
	UsedCouponID   string    `json:"used_coupon_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func New(id, userID string, items []Item) (*Order, error) {
	if id == "" || userID == "" {
		return nil, ErrInvalidOrder
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	var total int
	for _, item := range items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, ErrInvalidOrder
		}
		total += item.Price * item.Quantity
	}
	now := time.Now()
	return &Order{
		ID:          id,
		UserID:      userID,
		Items:       items,
		Status:      StatusPending,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo checks if the order can move to the target status.
func (o *Order) CanTransitionTo(target Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// Complete finalizes the order after payment. Terminal states reject it.
func (o *Order) Complete() error {
	if !o.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, StatusCompleted)
	}
	o.Status = StatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel voids the order. Terminal states reject it.
func (o *Order) Cancel() error {
	if !o.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, StatusCancelled)
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// ApplyDiscount records a coupon against the order. The discount is validated
// against the total, never clamped silently.
func (o *Order) ApplyDiscount(amount int, couponID string) error {
	if amount < 0 || couponID == "" {
		return ErrInvalidOrder
	}
	if amount > o.TotalAmount {
		return ErrInvalidDiscount
	}
	o.DiscountAmount = amount
	o.UsedCouponID = couponID
	o.UpdatedAt = time.Now()
	return nil
}

// FinalAmount is what payment actually charges.
func (o *Order) FinalAmount() int {
	return o.TotalAmount - o.DiscountAmount
}

func (o *Order) IsCompleted() bool { return o.Status == StatusCompleted }
func (o *Order) IsCancelled() bool { return o.Status == StatusCancelled }
