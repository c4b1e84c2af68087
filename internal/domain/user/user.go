package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidUser         = errors.New("invalid user")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient point balance")
	ErrEmailTaken          = errors.New("email is already registered")
)

// User is an account with a point balance. Point never goes negative; both
// mutations must run under the account's lock so a charge racing a deduction
// cannot read a stale balance.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Point        int       `json:"point"`
	CreatedAt    time.Time `json:"created_at"`
}

func New(id, email, passwordHash string) (*User, error) {
	if id == "" || email == "" || passwordHash == "" {
		return nil, ErrInvalidUser
	}
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

// ChargePoint adds to the balance unconditionally.
func (u *User) ChargePoint(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	u.Point += amount
	return nil
}

// DeductPoint subtracts from the balance, failing rather than going negative.
func (u *User) DeductPoint(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !u.HasEnoughPoint(amount) {
		return ErrInsufficientBalance
	}
	u.Point -= amount
	return nil
}

func (u *User) HasEnoughPoint(amount int) bool {
	return u.Point >= amount
}
