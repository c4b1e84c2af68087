package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := New("user-1", "test@example.com", "hashed-password")
	require.NoError(t, err)
	return u
}

func TestNew_Success(t *testing.T) {
	u := newTestUser(t)

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "test@example.com", u.Email)
	assert.Equal(t, 0, u.Point, "a new account starts with an empty balance")
}

func TestNew_Invalid(t *testing.T) {
	for _, tt := range []struct {
		name, id, email, hash string
	}{
		{"empty id", "", "a@b.com", "h"},
		{"empty email", "user-1", "", "h"},
		{"empty hash", "user-1", "a@b.com", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(tt.id, tt.email, tt.hash)
			assert.ErrorIs(t, err, ErrInvalidUser)
			assert.Nil(t, u)
		})
	}
}

// ============================================
// Point Tests
// ============================================

func TestChargePoint_Success(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.ChargePoint(500000))
	assert.Equal(t, 500000, u.Point)

	require.NoError(t, u.ChargePoint(1))
	assert.Equal(t, 500001, u.Point)
}

func TestChargePoint_InvalidAmount(t *testing.T) {
	u := newTestUser(t)

	assert.ErrorIs(t, u.ChargePoint(0), ErrInvalidAmount)
	assert.ErrorIs(t, u.ChargePoint(-100), ErrInvalidAmount)
	assert.Equal(t, 0, u.Point)
}

func TestDeductPoint_Success(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.ChargePoint(1000))

	require.NoError(t, u.DeductPoint(400))
	assert.Equal(t, 600, u.Point)

	require.NoError(t, u.DeductPoint(600))
	assert.Equal(t, 0, u.Point)
}

func TestDeductPoint_Insufficient(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.ChargePoint(100))

	err := u.DeductPoint(101)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 100, u.Point, "a failed deduction must not touch the balance")
}

func TestDeductPoint_InvalidAmount(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.ChargePoint(100))

	assert.ErrorIs(t, u.DeductPoint(0), ErrInvalidAmount)
	assert.ErrorIs(t, u.DeductPoint(-1), ErrInvalidAmount)
}

func TestHasEnoughPoint(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.ChargePoint(100))

	assert.True(t, u.HasEnoughPoint(100))
	assert.False(t, u.HasEnoughPoint(101))
}
