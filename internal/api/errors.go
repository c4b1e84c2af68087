package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/ec-commerce/internal/domain/cart"
	"github.com/example/ec-commerce/internal/domain/coupon"
	"github.com/example/ec-commerce/internal/domain/order"
	"github.com/example/ec-commerce/internal/domain/product"
	"github.com/example/ec-commerce/internal/domain/user"
	"github.com/example/ec-commerce/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors onto HTTP statuses. Missing records are
// 404, rejected input is 400, and business rules that lost a race (sold out,
// not enough stock, not enough balance, coupon spent) are 409.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, coupon.ErrCouponNotFound),
		errors.Is(err, coupon.ErrUserCouponNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, cart.ErrCartItemNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, product.ErrOutOfStock),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, coupon.ErrCouponSoldOut),
		errors.Is(err, coupon.ErrCouponAlreadyUsed),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrNotIssuablePeriod),
		errors.Is(err, user.ErrInsufficientBalance),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, order.ErrInvalidStatus):
		respondJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, product.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, coupon.ErrInvalidCoupon),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, order.ErrInvalidDiscount),
		errors.Is(err, user.ErrInvalidUser),
		errors.Is(err, user.ErrInvalidAmount),
		errors.Is(err, cart.ErrInvalidCartItem):
		respondJSONError(w, err.Error(), http.StatusBadRequest)

	default:
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
