package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/ec-commerce/internal/api/middleware"
	"github.com/example/ec-commerce/internal/usecase"
)

type Handlers struct {
	products *usecase.ProductUseCase
	carts    *usecase.CartUseCase
	orders   *usecase.OrderUseCase
	coupons  *usecase.CouponUseCase
	payments *usecase.PaymentUseCase
}

func NewHandlers(
	products *usecase.ProductUseCase,
	carts *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	coupons *usecase.CouponUseCase,
	payments *usecase.PaymentUseCase,
) *Handlers {
	return &Handlers{
		products: products,
		carts:    carts,
		orders:   orders,
		coupons:  coupons,
		payments: payments,
	}
}

// Product handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		Price         int    `json:"price"`
		StockQuantity int    `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.products.CreateProduct(r.Context(), req.Name, req.Description, req.Price, req.StockQuantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 20)
	search := r.URL.Query().Get("search")

	products, err := h.products.GetProducts(r.Context(), page, size, search)
	if err != nil {
		respondError(w, err)
		return
	}
	total, err := h.products.GetProductCount(r.Context(), search)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"page":     page,
		"size":     size,
		"total":    total,
	})
}

func (h *Handlers) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetTopProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Cart handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.carts.GetCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.carts.AddToCart(r.Context(), middleware.GetUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.carts.UpdateQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.RemoveFromCart(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Order handlers

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items    []usecase.OrderItemInput `json:"items"`
		CouponID string                   `json:"coupon_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), middleware.GetUserID(r.Context()), req.Items, req.CouponID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 20)

	orders, err := h.orders.GetOrders(r.Context(), userID, page, size)
	if err != nil {
		respondError(w, err)
		return
	}
	total, err := h.orders.GetOrderCount(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"page":   page,
		"size":   size,
		"total":  total,
	})
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if o.UserID != middleware.GetUserID(r.Context()) {
		respondJSONError(w, "forbidden", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	if o.UserID != middleware.GetUserID(r.Context()) {
		respondJSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	cancelled, err := h.orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cancelled)
}

// Coupon handlers

func (h *Handlers) GetCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.GetCoupon(r.Context(), chi.URLParam(r, "couponID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	userCoupon, err := h.coupons.IssueCoupon(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "couponID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, userCoupon)
}

func (h *Handlers) GetMyCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.GetUserCoupons(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

// Balance and payment handlers

func (h *Handlers) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	balance, err := h.payments.GetBalance(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user_id": userID, "balance": balance})
}

func (h *Handlers) ChargeBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.payments.ChargeBalance(r.Context(), middleware.GetUserID(r.Context()), req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user_id": u.ID, "balance": u.Point})
}

func (h *Handlers) ExecutePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.payments.ExecutePayment(r.Context(), middleware.GetUserID(r.Context()), req.OrderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
